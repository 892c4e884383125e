package taskgate

import "testing"

func TestClassifyRouteTable(t *testing.T) {
	c := newClassifier(defaultConfig().Routes.Rules)

	tests := []struct {
		path string
		want RouteClass
	}{
		{"/", RoutePublic},
		{"/about", RoutePublic},
		{"/dashboard", RouteProtected},
		{"/dashboard/settings", RouteProtected},
		{"/tasks", RouteProtected},
		{"/tasks/42", RouteProtected},
		{"/login", RouteAuthOnly},
		{"/login/", RouteAuthOnly},
		{"/signup", RouteAuthOnly},
		{"/logi", RoutePublic},
		{"/dashboar", RoutePublic},
		{"", RoutePublic},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	c := newClassifier([]RouteRule{
		{Prefix: "/app/login", Class: RouteAuthOnly},
		{Prefix: "/app", Class: RouteProtected},
	})

	if got := c.Classify("/app/login"); got != RouteAuthOnly {
		t.Fatalf("expected first rule to win, got %v", got)
	}
	if got := c.Classify("/app/home"); got != RouteProtected {
		t.Fatalf("expected fallthrough to second rule, got %v", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := newClassifier(defaultConfig().Routes.Rules)

	first := c.Classify("/dashboard/x")
	for i := 0; i < 100; i++ {
		if got := c.Classify("/dashboard/x"); got != first {
			t.Fatalf("classification changed between calls: %v vs %v", first, got)
		}
	}
}

func TestValidateRulesRejectsOverlap(t *testing.T) {
	tests := []struct {
		name    string
		rules   []RouteRule
		wantErr bool
	}{
		{
			name:  "disjoint prefixes",
			rules: defaultConfig().Routes.Rules,
		},
		{
			name: "protected prefix nested under auth-only",
			rules: []RouteRule{
				{Prefix: "/login", Class: RouteAuthOnly},
				{Prefix: "/login/admin", Class: RouteProtected},
			},
			wantErr: true,
		},
		{
			name: "auth-only prefix nested under protected",
			rules: []RouteRule{
				{Prefix: "/dashboard", Class: RouteProtected},
				{Prefix: "/dashboard/login", Class: RouteAuthOnly},
			},
			wantErr: true,
		},
		{
			name: "empty prefix rejected",
			rules: []RouteRule{
				{Prefix: "", Class: RouteProtected},
			},
			wantErr: true,
		},
		{
			name: "relative prefix rejected",
			rules: []RouteRule{
				{Prefix: "dashboard", Class: RouteProtected},
			},
			wantErr: true,
		},
		{
			name: "nested same-class prefixes allowed",
			rules: []RouteRule{
				{Prefix: "/dashboard", Class: RouteProtected},
				{Prefix: "/dashboard/admin", Class: RouteProtected},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRules(tt.rules)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

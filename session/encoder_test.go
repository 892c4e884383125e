package session

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := &Session{
		Subject:   "user-42",
		Email:     "carol@example.com",
		CreatedAt: 1700000000,
		ExpiresAt: 1700003600,
	}

	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if encoded[0] != sessionFormatVersionV1 {
		t.Fatalf("version byte = %d, want %d", encoded[0], sessionFormatVersionV1)
	}

	out, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestEncodeRejectsOversizedFields(t *testing.T) {
	long := string(bytes.Repeat([]byte{'a'}, 256))

	if _, err := Encode(&Session{Subject: long}); err == nil {
		t.Fatal("expected oversized subject to be rejected")
	}
	if _, err := Encode(&Session{Email: long}); err == nil {
		t.Fatal("expected oversized email to be rejected")
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	valid, err := Encode(&Session{Subject: "u", Email: "e@x", CreatedAt: 1, ExpiresAt: 2})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"unknown version", append([]byte{99}, valid[1:]...)},
		{"truncated header", valid[:1]},
		{"truncated subject", valid[:2]},
		{"truncated timestamps", valid[:len(valid)-4]},
		{"trailing garbage", append(append([]byte{}, valid...), 0xde, 0xad)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); err == nil {
				t.Fatal("expected decode error, got nil")
			}
		})
	}
}

// FuzzSessionDecode exercises the binary session decoder with arbitrary inputs.
// Goal: no panics, no unexpected nil dereferences, graceful error handling.
func FuzzSessionDecode(f *testing.F) {
	encoded, err := Encode(&Session{
		Subject:   "user-fuzz",
		Email:     "fuzz@example.com",
		CreatedAt: 1700000000,
		ExpiresAt: 1700003600,
	})
	if err == nil {
		f.Add(encoded)
	}

	// Empty and short inputs.
	f.Add([]byte{})
	f.Add([]byte{0})
	f.Add([]byte{1})
	f.Add([]byte{255, 255, 255})

	// Truncated at various offsets.
	if len(encoded) > 5 {
		f.Add(encoded[:5])
	}
	if len(encoded) > 15 {
		f.Add(encoded[:15])
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must not panic. Errors are expected for malformed input.
		s, err := Decode(data)
		if err != nil {
			return
		}

		// If decode succeeded, re-encode must reproduce the input exactly.
		re, err := Encode(s)
		if err != nil {
			t.Fatalf("re-encode of decoded session failed: %v", err)
		}
		if !bytes.Equal(re, data) {
			t.Fatalf("re-encode mismatch: %x vs %x", re, data)
		}
	})
}

package internaldefs

import (
	taskgate "github.com/tasknest/taskgate"
)

// CounterDef defines a public type used by taskgate APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   taskgate.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by taskgate APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   taskgate.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication gate.
var CounterDefs = []CounterDef{
	{ID: taskgate.MetricGateAllow, Name: "taskgate_gate_allow_total", Help: "Evaluations that allowed the request."},
	{ID: taskgate.MetricGateRedirectLogin, Name: "taskgate_gate_redirect_login_total", Help: "Evaluations redirected to the login page."},
	{ID: taskgate.MetricGateRedirectDashboard, Name: "taskgate_gate_redirect_dashboard_total", Help: "Evaluations redirected to the dashboard."},
	{ID: taskgate.MetricResolveFailure, Name: "taskgate_session_resolve_failure_total", Help: "Session resolutions that failed and were treated as unauthenticated."},
}

// HistogramDefs is an exported constant or variable used by the authentication gate.
var HistogramDefs = []HistogramDef{
	{ID: taskgate.MetricEvaluateLatency, Name: "taskgate_evaluate_latency_seconds", Help: "Evaluate latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication gate.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication gate.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	copy(out[:], raw)
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	out := raw
	for i := 1; i < len(out); i++ {
		out[i] += out[i-1]
	}
	return out
}

package taskgate

import (
	"sync/atomic"
	"time"
)

// MetricID defines a public type used by taskgate APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricGateAllow is an exported constant or variable used by the authentication gate.
	MetricGateAllow MetricID = iota
	// MetricGateRedirectLogin is an exported constant or variable used by the authentication gate.
	MetricGateRedirectLogin
	// MetricGateRedirectDashboard is an exported constant or variable used by the authentication gate.
	MetricGateRedirectDashboard
	// MetricResolveFailure is an exported constant or variable used by the authentication gate.
	MetricResolveFailure
	// MetricEvaluateLatency is an exported constant or variable used by the authentication gate.
	MetricEvaluateLatency
	metricIDCount
)

const histBucketCount = 8

// Upper bounds in milliseconds for the first seven latency buckets; anything
// slower lands in the +Inf bucket.
var latencyBoundsMs = [histBucketCount - 1]int64{5, 10, 25, 50, 100, 250, 500}

// paddedCounter occupies a full cache line so hot counters on different IDs
// never false-share.
type paddedCounter struct {
	value uint64
	_     [56]byte
}

func (c *paddedCounter) add()         { atomic.AddUint64(&c.value, 1) }
func (c *paddedCounter) load() uint64 { return atomic.LoadUint64(&c.value) }

type latencyHistogram struct {
	buckets [histBucketCount]uint64
}

func (h *latencyHistogram) record(d time.Duration) {
	atomic.AddUint64(&h.buckets[bucketIndex(d)], 1)
}

func (h *latencyHistogram) copyOut() []uint64 {
	out := make([]uint64, histBucketCount)
	for i := range h.buckets {
		out[i] = atomic.LoadUint64(&h.buckets[i])
	}
	return out
}

// Metrics holds lock-free atomic counters and an optional evaluate-latency
// histogram. When disabled, all operations are no-ops.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	evalLatency   latencyHistogram
}

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled describes the enabled operation and its observable behavior.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled describes the latencyenabled operation and its observable behavior.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].add()
}

// Observe describes the observe operation and its observable behavior.
//
// Observe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricEvaluateLatency {
		return
	}
	m.evalLatency.record(d)
}

// Value describes the value operation and its observable behavior.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return m.counters[id].load()
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Counters:   map[MetricID]uint64{},
		Histograms: map[MetricID][]uint64{},
	}
	if m == nil || !m.enabled {
		return s
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = m.counters[id].load()
	}
	if m.enableLatency {
		s.Histograms[MetricEvaluateLatency] = m.evalLatency.copyOut()
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()
	for i, bound := range latencyBoundsMs {
		if ms <= bound {
			return i
		}
	}
	return histBucketCount - 1
}

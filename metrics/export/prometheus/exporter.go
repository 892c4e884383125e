package prometheus

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	taskgate "github.com/tasknest/taskgate"
	"github.com/tasknest/taskgate/metrics/export/internaldefs"
)

type metricsSource interface {
	MetricsSnapshot() taskgate.MetricsSnapshot
	AuditDropped() uint64
}

// PrometheusExporter renders taskgate metrics in Prometheus text exposition format.
type PrometheusExporter struct {
	source metricsSource
}

// NewPrometheusExporter creates a Prometheus exporter that reads from the given [taskgate.Gate].
func NewPrometheusExporter(gate *taskgate.Gate) *PrometheusExporter {
	return &PrometheusExporter{source: gate}
}

// NewPrometheusExporterFromSource creates a Prometheus exporter from a custom
// metrics source.
func NewPrometheusExporterFromSource(source metricsSource) *PrometheusExporter {
	return &PrometheusExporter{source: source}
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (p *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(p.Render()))
	})
}

// Render writes the current metrics in Prometheus text exposition format.
func (p *PrometheusExporter) Render() string {
	if p == nil || p.source == nil {
		return ""
	}

	snapshot := p.source.MetricsSnapshot()
	dropped := p.source.AuditDropped()
	if len(snapshot.Counters) == 0 && len(snapshot.Histograms) == 0 && dropped == 0 {
		return ""
	}

	out := exposition{buf: bytes.NewBuffer(make([]byte, 0, 4096))}

	for _, def := range internaldefs.CounterDefs {
		out.counter(def.Name, def.Help, snapshot.Counters[def.ID])
	}
	for _, def := range internaldefs.HistogramDefs {
		buckets := internaldefs.NormalizeBuckets(snapshot.Histograms[def.ID])
		out.histogram(def.Name, def.Help, internaldefs.CumulativeBuckets(buckets))
	}
	out.counter("taskgate_audit_dropped_total", "Dropped audit events due to dispatcher backpressure.", dropped)

	return out.buf.String()
}

type exposition struct {
	buf *bytes.Buffer
}

var helpEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

func (e exposition) header(name, help, kind string) {
	fmt.Fprintf(e.buf, "# HELP %s %s\n# TYPE %s %s\n", name, helpEscaper.Replace(help), name, kind)
}

func (e exposition) counter(name, help string, value uint64) {
	e.header(name, help, "counter")
	fmt.Fprintf(e.buf, "%s %d\n", name, value)
}

func (e exposition) histogram(name, help string, cumulative [8]uint64) {
	e.header(name, help, "histogram")
	for i, le := range internaldefs.HistogramBounds {
		fmt.Fprintf(e.buf, "%s_bucket{le=%q} %d\n", name, le, cumulative[i])
	}
	fmt.Fprintf(e.buf, "%s_count %d\n", name, cumulative[len(cumulative)-1])
	// Core snapshots carry bucket counts only, so the sum stays at zero.
	fmt.Fprintf(e.buf, "%s_sum 0\n", name)
}

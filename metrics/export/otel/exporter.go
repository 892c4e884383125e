package otel

import (
	"context"
	"errors"
	"fmt"

	taskgate "github.com/tasknest/taskgate"
	"github.com/tasknest/taskgate/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() taskgate.MetricsSnapshot
	AuditDropped() uint64
}

// histogramInstruments holds the per-bucket gauges backing one core histogram.
// The observable metric API has no histogram instrument that accepts
// pre-aggregated bucket counts, so each bucket is exported as its own gauge.
type histogramInstruments struct {
	buckets [8]metric.Int64ObservableGauge
	count   metric.Int64ObservableGauge
}

type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
	counters     map[taskgate.MetricID]metric.Int64ObservableCounter
	histograms   map[taskgate.MetricID]histogramInstruments
	auditDropped metric.Int64ObservableCounter
	observables  []metric.Observable
}

func NewOTelExporter(meter metric.Meter, gate *taskgate.Gate) (*OTelExporter, error) {
	return NewOTelExporterFromSource(meter, gate)
}

func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	exporter := &OTelExporter{
		source:     source,
		counters:   make(map[taskgate.MetricID]metric.Int64ObservableCounter, len(internaldefs.CounterDefs)),
		histograms: make(map[taskgate.MetricID]histogramInstruments, len(internaldefs.HistogramDefs)),
	}

	if err := exporter.buildInstruments(meter); err != nil {
		return nil, err
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		exporter.observe(observer)
		return nil
	}, exporter.observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	exporter.registration = registration

	return exporter, nil
}

func (e *OTelExporter) buildInstruments(meter metric.Meter) error {
	for _, def := range internaldefs.CounterDefs {
		ins, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
		if err != nil {
			return fmt.Errorf("create observable counter %s: %w", def.Name, err)
		}
		e.counters[def.ID] = ins
		e.observables = append(e.observables, ins)
	}

	for _, def := range internaldefs.HistogramDefs {
		h, err := e.buildHistogram(meter, def.Name)
		if err != nil {
			return err
		}
		e.histograms[def.ID] = h
	}

	dropped, err := meter.Int64ObservableCounter(
		"taskgate_audit_dropped_total",
		metric.WithDescription("Dropped audit events due to dispatcher backpressure."),
	)
	if err != nil {
		return fmt.Errorf("create audit dropped counter: %w", err)
	}
	e.auditDropped = dropped
	e.observables = append(e.observables, dropped)

	return nil
}

func (e *OTelExporter) buildHistogram(meter metric.Meter, name string) (histogramInstruments, error) {
	var h histogramInstruments

	for i, suffix := range internaldefs.HistogramBoundSuffix {
		bucketName := name + "_bucket_le_" + suffix
		ins, err := meter.Int64ObservableGauge(bucketName, metric.WithDescription("Cumulative histogram bucket count."))
		if err != nil {
			return h, fmt.Errorf("create histogram bucket gauge %s: %w", bucketName, err)
		}
		h.buckets[i] = ins
		e.observables = append(e.observables, ins)
	}

	count, err := meter.Int64ObservableGauge(name+"_count", metric.WithDescription("Histogram total sample count."))
	if err != nil {
		return h, fmt.Errorf("create histogram count gauge %s_count: %w", name, err)
	}
	h.count = count
	e.observables = append(e.observables, count)

	return h, nil
}

func (e *OTelExporter) observe(observer metric.Observer) {
	snapshot := e.source.MetricsSnapshot()

	for id, ins := range e.counters {
		observer.ObserveInt64(ins, int64(snapshot.Counters[id]))
	}
	for id, h := range e.histograms {
		cumulative := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(snapshot.Histograms[id]))
		for i := range cumulative {
			observer.ObserveInt64(h.buckets[i], int64(cumulative[i]))
		}
		observer.ObserveInt64(h.count, int64(cumulative[len(cumulative)-1]))
	}
	observer.ObserveInt64(e.auditDropped, int64(e.source.AuditDropped()))
}

func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}

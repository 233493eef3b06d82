// SPDX-License-Identifier: MIT

// Package metrics records eigenface pipeline measurements in a private
// prometheus registry.
package metrics

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/katalvlaran/eigenface/pca"
)

// Result label values of eigenface_recognitions_total.
const (
	ResultKnown   = "known"
	ResultUnknown = "unknown"
)

// Metrics owns the registry and the eigenface collectors. It implements
// pca.Observer.
type Metrics struct {
	registry *prometheus.Registry

	StageDuration *prometheus.HistogramVec // label: stage
	Recognitions  *prometheus.CounterVec   // label: result
	MatchDistance prometheus.Histogram
}

var _ pca.Observer = (*Metrics)(nil)

// New builds the registry with Go runtime and process collectors and the
// eigenface metrics.
func New(service string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}
	m.StageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eigenface_stage_duration_seconds",
		Help:    "Duration of each PCA pipeline stage in seconds",
		Buckets: prometheus.ExponentialBuckets(1e-5, 4, 12),
	}, []string{"stage"})
	m.Recognitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "eigenface_recognitions_total",
		Help: "Recognitions by outcome",
	}, []string{"result"})
	m.MatchDistance = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "eigenface_match_distance",
		Help:    "Eigenspace distance of the nearest training image",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})
	reg.MustRegister(m.StageDuration, m.Recognitions, m.MatchDistance)

	slog.Debug("metrics registry initialized", "service", service)

	return m
}

// Registry exposes the registry as a Gatherer.
func (m *Metrics) Registry() prometheus.Gatherer { return m.registry }

// ObserveStage implements pca.Observer.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveRecognition implements pca.Observer.
func (m *Metrics) ObserveRecognition(known bool, distance float64) {
	result := ResultUnknown
	if known {
		result = ResultKnown
	}
	m.Recognitions.WithLabelValues(result).Inc()
	m.MatchDistance.Observe(distance)
}

// WriteTextfile dumps every metric in the text exposition format, for the
// node_exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}

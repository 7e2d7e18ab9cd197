// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "decks"

var _ Recorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	reg            *prom.Registry
	renderDuration *prom.HistogramVec
	renders        *prom.CounterVec
	topicOutcomes  *prom.CounterVec
	upToDate       prom.Counter
	runDuration    prom.Gauge
	workers        prom.Gauge
}

// NewPrometheusRecorder creates the collectors and registers them with reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	p := &PrometheusRecorder{
		reg: reg,
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of external render invocations",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"variant", "format"}),
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "External render invocations by result",
		}, []string{"variant", "format", "result"}),
		topicOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "topic_outcomes_total",
			Help:      "Topic build outcomes",
		}, []string{"outcome"}),
		upToDate: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "topics_up_to_date_total",
			Help:      "Topics skipped because every artifact was fresh",
		}),
		runDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall clock duration of the last build run",
		}),
		workers: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Worker pool size of the last build run",
		}),
	}

	reg.MustRegister(p.renderDuration, p.renders, p.topicOutcomes, p.upToDate, p.runDuration, p.workers)

	return p
}

// ObserveRender implements Recorder.
func (p *PrometheusRecorder) ObserveRender(variant, format string, result RenderResult, d time.Duration) {
	p.renders.WithLabelValues(variant, format, string(result)).Inc()

	if result != RenderCancelled {
		p.renderDuration.WithLabelValues(variant, format).Observe(d.Seconds())
	}
}

// IncTopicOutcome implements Recorder.
func (p *PrometheusRecorder) IncTopicOutcome(outcome string) {
	p.topicOutcomes.WithLabelValues(outcome).Inc()
}

// IncUpToDate implements Recorder.
func (p *PrometheusRecorder) IncUpToDate() {
	p.upToDate.Inc()
}

// ObserveRunDuration implements Recorder.
func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Set(d.Seconds())
}

// SetWorkers implements Recorder.
func (p *PrometheusRecorder) SetWorkers(n int) {
	p.workers.Set(float64(n))
}

// WriteTextfile writes the registry in the text exposition format to path, atomically,
// for the node-exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package markers

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// unsetLabel is the label value of an optional field that was never set.
const unsetLabel = "unset"

// Metrics holds Prometheus collectors for declared and invoked test cases.
// A nil *Metrics records nothing.
type Metrics struct {
	declaredTotal    prometheus.Counter
	invocationsTotal *prometheus.CounterVec
	duration         prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered by an earlier call are reused, so several
// packages of one test binary can share a registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		declaredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qatoolbox_requirements_declared_total",
			Help: "Test case requirements declared",
		}),
		invocationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qatoolbox_requirement_invocations_total",
			Help: "Invocations of decorated test functions",
		}, []string{"priority", "component"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "qatoolbox_requirement_duration_seconds",
			Help:    "Duration of decorated test functions",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	var err error
	if m.declaredTotal, err = register(reg, m.declaredTotal); err != nil {
		return nil, err
	}
	if m.invocationsTotal, err = register(reg, m.invocationsTotal); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) declared() {
	if m == nil {
		return
	}
	m.declaredTotal.Inc()
}

func (m *Metrics) observe(meta Metadata, start time.Time) {
	if m == nil {
		return
	}
	m.invocationsTotal.WithLabelValues(labelValue(meta.Priority), labelValue(meta.Component)).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}

func labelValue(s *string) string {
	if s == nil {
		return unsetLabel
	}
	return *s
}

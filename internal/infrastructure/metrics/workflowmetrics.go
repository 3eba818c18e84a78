// Package metrics exposes engine counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caseguard/caseguard/internal/domain/workflow"
)

// WorkflowMetrics owns its registry so that several engines (and tests) can
// coexist in one process.
type WorkflowMetrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	matchCount      *prometheus.CounterVec
	transitionCount *prometheus.CounterVec
	escalationCount *prometheus.CounterVec
}

func NewWorkflowMetrics(namespace string) *WorkflowMetrics {
	m := &WorkflowMetrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "requests_total",
				Help:      "Workflow requests by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "request_duration_seconds",
				Help:      "Workflow request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		matchCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "rule_matches_total",
				Help:      "Rule evaluation outcomes",
			},
			[]string{"outcome"},
		),
		transitionCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sla",
				Name:      "transitions_total",
				Help:      "SLA state transitions emitted",
			},
			[]string{"transition"},
		),
		escalationCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "escalations_total",
				Help:      "Escalation attempts by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		m.requestCount,
		m.requestDuration,
		m.matchCount,
		m.transitionCount,
		m.escalationCount,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *WorkflowMetrics) ObserveRequest(action, outcome string, elapsed time.Duration) {
	m.requestCount.WithLabelValues(action, outcome).Inc()
	m.requestDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (m *WorkflowMetrics) RecordMatch(outcome workflow.MatchOutcome) {
	m.matchCount.WithLabelValues(string(outcome)).Inc()
}

func (m *WorkflowMetrics) RecordTransition(transition workflow.Transition) {
	if transition == workflow.TransitionNone {
		return
	}
	m.transitionCount.WithLabelValues(string(transition)).Inc()
}

func (m *WorkflowMetrics) RecordEscalation(outcome string) {
	m.escalationCount.WithLabelValues(outcome).Inc()
}

func (m *WorkflowMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

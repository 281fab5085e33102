package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "route_planner"

// PlannerMetrics records pipeline outcomes and external call latency.
type PlannerMetrics struct {
	plans         *prometheus.CounterVec
	planDuration  prometheus.Histogram
	externalCalls *prometheus.HistogramVec
}

// NewPlannerMetrics registers the planner collectors on reg.
func NewPlannerMetrics(reg prometheus.Registerer) *PlannerMetrics {
	f := promauto.With(reg)
	return &PlannerMetrics{
		plans: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_total",
			Help:      "Pipeline runs by terminal stage and failure kind (empty on success).",
		}, []string{"stage", "failure"}),
		planDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_duration_seconds",
			Help:      "Wall time of one pipeline run.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
		externalCalls: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_call_duration_seconds",
			Help:      "Latency of calls to external collaborators.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collaborator", "result"}),
	}
}

// ObservePlan records one finished run.
func (m *PlannerMetrics) ObservePlan(stage, failure string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.plans.WithLabelValues(stage, failure).Inc()
	m.planDuration.Observe(elapsed.Seconds())
}

// ObserveCall records one external call. result is "ok", "not_found" or "error".
func (m *PlannerMetrics) ObserveCall(collaborator, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.externalCalls.WithLabelValues(collaborator, result).Observe(elapsed.Seconds())
}

// Package metrics wires the module's Prometheus instrumentation: one
// struct of vectors per subsystem, lazily built behind sync.Once exactly
// the way the teacher's observability package builds its module/swap/
// payout registries.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type coreMetrics struct {
	evaluatorApplications *prometheus.CounterVec
	evaluatorRejections   *prometheus.CounterVec

	rewardFundBalance *prometheus.GaugeVec
	pendingQueueDepth *prometheus.GaugeVec

	housekeepingPassSeconds *prometheus.HistogramVec
}

var (
	coreOnce     sync.Once
	coreRegistry *coreMetrics
)

// Core returns the lazily-initialised core metrics registry.
func Core() *coreMetrics {
	coreOnce.Do(func() {
		coreRegistry = &coreMetrics{
			evaluatorApplications: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "corechain",
				Subsystem: "eval",
				Name:      "applications_total",
				Help:      "Total operations successfully applied, segmented by operation type.",
			}, []string{"operation"}),
			evaluatorRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "corechain",
				Subsystem: "eval",
				Name:      "rejections_total",
				Help:      "Total operations rejected before any state mutation, segmented by operation type and reason.",
			}, []string{"operation", "reason"}),
			rewardFundBalance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "corechain",
				Subsystem: "reward",
				Name:      "fund_balance",
				Help:      "Current LIQUID balance of each reward fund.",
			}, []string{"fund"}),
			pendingQueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "corechain",
				Subsystem: "housekeeping",
				Name:      "pending_queue_depth",
				Help:      "Number of rows awaiting a deferred housekeeping step, segmented by queue.",
			}, []string{"queue"}),
			housekeepingPassSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "corechain",
				Subsystem: "housekeeping",
				Name:      "pass_duration_seconds",
				Help:      "Wall-clock duration of a full housekeeping.Run pass.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"step"}),
		}
		prometheus.MustRegister(
			coreRegistry.evaluatorApplications,
			coreRegistry.evaluatorRejections,
			coreRegistry.rewardFundBalance,
			coreRegistry.pendingQueueDepth,
			coreRegistry.housekeepingPassSeconds,
		)
	})
	return coreRegistry
}

// ObserveApplication records a successfully-applied operation.
func (m *coreMetrics) ObserveApplication(operation string) {
	m.evaluatorApplications.WithLabelValues(operation).Inc()
}

// ObserveRejection records an operation that failed validation.
func (m *coreMetrics) ObserveRejection(operation, reason string) {
	m.evaluatorRejections.WithLabelValues(operation, reason).Inc()
}

// SetRewardFundBalance records a reward fund's current LIQUID balance.
func (m *coreMetrics) SetRewardFundBalance(fund string, liquidAmount float64) {
	m.rewardFundBalance.WithLabelValues(fund).Set(liquidAmount)
}

// SetPendingQueueDepth records the current size of a housekeeping queue.
func (m *coreMetrics) SetPendingQueueDepth(queue string, depth float64) {
	m.pendingQueueDepth.WithLabelValues(queue).Set(depth)
}

// ObserveHousekeepingStep records one step's duration within a pass.
func (m *coreMetrics) ObserveHousekeepingStep(step string, seconds float64) {
	m.housekeepingPassSeconds.WithLabelValues(step).Observe(seconds)
}

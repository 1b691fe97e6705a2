package parclust

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    refineCounter   prometheus.Counter
//	    shiftHistogram  prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordIteration(shift float64) {
//	    p.refineCounter.Inc()
//	    p.shiftHistogram.Observe(shift)
//	}
type MetricsCollector interface {
	// RecordSeeding is called after the seeding phase.
	// duration is the total time taken, err is nil if successful.
	RecordSeeding(duration time.Duration, err error)

	// RecordIteration is called after each Lloyd iteration with the
	// convergence metric (maximum per-trial centroid shift).
	RecordIteration(shift float64)

	// RecordRefine is called after the refinement phase.
	// iterations is the number of Lloyd iterations executed.
	RecordRefine(iterations int, duration time.Duration, err error)

	// RecordCost is called after each cost evaluation.
	RecordCost(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSeeding(time.Duration, error)    {}
func (NoopMetricsCollector) RecordIteration(float64)               {}
func (NoopMetricsCollector) RecordRefine(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCost(time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SeedingCount      atomic.Int64
	SeedingErrors     atomic.Int64
	SeedingTotalNanos atomic.Int64
	IterationCount    atomic.Int64
	RefineCount       atomic.Int64
	RefineErrors      atomic.Int64
	RefineTotalNanos  atomic.Int64
	CostCount         atomic.Int64
	CostErrors        atomic.Int64
}

// RecordSeeding implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeeding(duration time.Duration, err error) {
	b.SeedingCount.Add(1)
	b.SeedingTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SeedingErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(float64) {
	b.IterationCount.Add(1)
}

// RecordRefine implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRefine(iterations int, duration time.Duration, err error) {
	b.RefineCount.Add(1)
	b.RefineTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RefineErrors.Add(1)
	}
}

// RecordCost implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCost(duration time.Duration, err error) {
	b.CostCount.Add(1)
	if err != nil {
		b.CostErrors.Add(1)
	}
}

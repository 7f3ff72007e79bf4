package observability

import (
	"context"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
// All collectors are safe for concurrent use, so the hooks may be shared by
// parallel batch workers.
type Metrics struct {
	TablesBuilt    prometheus.Counter
	DrawsIngested  prometheus.Counter
	DrawsSkipped   prometheus.Counter
	Selections     *prometheus.CounterVec
	SelectionScore prometheus.Histogram
	Combinations   prometheus.Counter
	TableStates    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TablesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "markov_tables_built_total",
			Help: "Total number of transition tables built",
		}),
		DrawsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "markov_draws_ingested_total",
			Help: "Total number of historical draws aggregated into tables",
		}),
		DrawsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "markov_draws_skipped_total",
			Help: "Total number of invalid records skipped while building tables",
		}),
		Selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "markov_selections_total",
			Help: "Numbers appended during generation, by selection mode",
		}, []string{"mode"}),
		SelectionScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "markov_selection_score",
			Help:    "Score of numbers picked by evidence",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		Combinations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "markov_combinations_generated_total",
			Help: "Total number of combinations generated",
		}),
		TableStates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "markov_table_states",
			Help: "Number of distinct keys per transition level in the last built table",
		}, []string{"level"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.TablesBuilt,
			m.DrawsIngested,
			m.DrawsSkipped,
			m.Selections,
			m.SelectionScore,
			m.Combinations,
			m.TableStates,
		)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTableBuilt: func(_ context.Context, e *domain.TableEvent) {
			m.TablesBuilt.Inc()
			m.DrawsIngested.Add(float64(e.Draws))
			m.DrawsSkipped.Add(float64(e.Skipped))
			m.TableStates.WithLabelValues("direct").Set(float64(e.DirectKeys))
			m.TableStates.WithLabelValues("position").Set(float64(e.PositionKeys))
			m.TableStates.WithLabelValues("combination").Set(float64(e.CombinationKeys))
		},
		OnSelect: func(_ context.Context, e *domain.SelectionEvent) {
			if e.Fallback {
				m.Selections.WithLabelValues("fallback").Inc()
				return
			}
			m.Selections.WithLabelValues("evidence").Inc()
			m.SelectionScore.Observe(e.Score)
		},
		OnCombination: func(_ context.Context, _ *domain.CombinationEvent) {
			m.Combinations.Inc()
		},
	}
}

// Chain merges hook sets so several observers see every event, in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTableBuilt: func(ctx context.Context, e *domain.TableEvent) {
			for _, h := range hooks {
				if h.OnTableBuilt != nil {
					h.OnTableBuilt(ctx, e)
				}
			}
		},
		OnSelect: func(ctx context.Context, e *domain.SelectionEvent) {
			for _, h := range hooks {
				if h.OnSelect != nil {
					h.OnSelect(ctx, e)
				}
			}
		},
		OnCombination: func(ctx context.Context, e *domain.CombinationEvent) {
			for _, h := range hooks {
				if h.OnCombination != nil {
					h.OnCombination(ctx, e)
				}
			}
		},
	}
}

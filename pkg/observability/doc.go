/*
Package observability provides tools for monitoring the markov model.

Metrics exposes Prometheus collectors and translates model lifecycle events
(table built, number selected, combination completed) into metric updates.
Wire it through domain.LifecycleHooks:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	model, err := markov.New(records, markov.WithHooks(m.Hooks()))
*/
package observability

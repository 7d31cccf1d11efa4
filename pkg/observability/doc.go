/*
Package observability turns engine lifecycle hooks into Prometheus metrics and
structured log lines.

Both are plain domain.LifecycleHooks values, so they compose with any other
hooks through LifecycleHooks.Merge:

	metrics := observability.NewMetrics()
	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))
	eng := tendril.New(tendril.WithLifecycleHooks(hooks))
	http.Handle("/metrics", metrics.Handler())
*/
package observability

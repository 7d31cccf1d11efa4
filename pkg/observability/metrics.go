package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tendril"

// Metrics holds the engine collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	rebuilds        *prometheus.CounterVec
	rebuildDuration prometheus.Histogram
	generators      prometheus.Gauge
	edges           prometheus.Gauge
	ticks           prometheus.Counter
	tickErrors      prometheus.Counter
	tickDuration    prometheus.Histogram
	frame           prometheus.Gauge
	anomalies       *prometheus.CounterVec
}

// NewMetrics creates and registers the engine collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rebuilds_total",
			Help:      "Rebuild attempts by result.",
		}, []string{"result"}),
		rebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Time spent building a graph.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		generators: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generators",
			Help:      "Generators in the running graph.",
		}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "edges",
			Help:      "Wiring edges in the running graph.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Frames stepped.",
		}),
		tickErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tick_errors_total",
			Help:      "Frames that returned an error.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent stepping one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		frame: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frame",
			Help:      "Number of the last stepped frame.",
		}),
		anomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anomalies_total",
			Help:      "Port value anomalies by kind.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		m.rebuilds, m.rebuildDuration, m.generators, m.edges,
		m.ticks, m.tickErrors, m.tickDuration, m.frame, m.anomalies,
	)
	return m
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRebuild: func(_ context.Context, e *domain.RebuildEvent) {
			if e.Err != nil {
				m.rebuilds.WithLabelValues("error").Inc()
				return
			}
			m.rebuilds.WithLabelValues("ok").Inc()
			m.rebuildDuration.Observe(e.Duration.Seconds())
			m.generators.Set(float64(e.Generators))
			m.edges.Set(float64(e.Edges))
		},
		OnTick: func(_ context.Context, e *domain.TickEvent) {
			m.ticks.Inc()
			if e.Err != nil {
				m.tickErrors.Inc()
			}
			m.tickDuration.Observe(e.Duration.Seconds())
			m.frame.Set(float64(e.Frame))
		},
		OnAnomaly: func(_ context.Context, e *domain.AnomalyEvent) {
			m.anomalies.WithLabelValues(string(e.Kind)).Inc()
		},
	}
}

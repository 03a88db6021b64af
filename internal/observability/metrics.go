package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for fetching and computing odds.
type Metrics struct {
	CacheLookups   *prometheus.CounterVec   // labels: result={hit,miss}
	UpstreamFetch  *prometheus.CounterVec   // labels: source, outcome={success,error}
	FetchDuration  *prometheus.HistogramVec // labels: source
	OddsComputed   prometheus.Counter
	MatchedYears   prometheus.Histogram
	CachedSeries   prometheus.Gauge
	InflightShared prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "cache_lookups_total",
			Help:      "Series cache lookups by result.",
		}, []string{"result"}),
		UpstreamFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "upstream_fetches_total",
			Help:      "Upstream historical data requests by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_odds",
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Duration of upstream historical data requests.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		}, []string{"source"}),
		OddsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "odds_computed_total",
			Help:      "Total odds reports computed.",
		}),
		MatchedYears: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_odds",
			Name:      "matched_years",
			Help:      "Number of historical years matched per odds report.",
			Buckets:   []float64{0, 1, 5, 10, 20, 30, 40, 50},
		}),
		CachedSeries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_odds",
			Name:      "cached_series",
			Help:      "Number of coordinates held in the series cache.",
		}),
		InflightShared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "inflight_shared_total",
			Help:      "Fetches that joined an in-flight request instead of calling upstream.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CacheLookups,
		m.UpstreamFetch,
		m.FetchDuration,
		m.OddsComputed,
		m.MatchedYears,
		m.CachedSeries,
		m.InflightShared,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Load pipeline metrics.
	RecordsDecoded  prometheus.Counter
	RowsSkipped     prometheus.Counter
	RecordsExcluded prometheus.Counter
	FetchFailures   prometheus.Counter

	Loads        *prometheus.CounterVec // labels: source={remote,fallback}
	LoadDuration prometheus.Histogram

	CountriesAggregated prometheus.Gauge
	FallbackActive      prometheus.Gauge

	// Interaction metrics.
	SelectionChanges   prometheus.Counter
	SelectionMisses    prometheus.Counter
	HoverNotifications prometheus.Counter

	// Websocket fan-out metrics.
	WSClients prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covidmap",
			Name:      "records_decoded_total",
			Help:      "Total dataset rows decoded into records.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covidmap",
			Name:      "rows_skipped_total",
			Help:      "Total damaged or empty dataset rows dropped during decoding.",
		}),
		RecordsExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covidmap",
			Name:      "records_excluded_total",
			Help:      "Total records excluded from aggregation for missing location or iso_code.",
		}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covidmap",
			Name:      "fetch_failures_total",
			Help:      "Total remote loads abandoned for a fetch or decode failure.",
		}),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covidmap",
			Name:      "loads_total",
			Help:      "Completed dataset loads by source.",
		}, []string{"source"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "covidmap",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete fetch-decode-aggregate cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		CountriesAggregated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "covidmap",
			Name:      "countries_aggregated",
			Help:      "Countries in the current snapshot.",
		}),
		FallbackActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "covidmap",
			Name:      "fallback_active",
			Help:      "1 when the current snapshot came from the embedded sample, 0 otherwise.",
		}),
		SelectionChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covidmap",
			Name:      "selection_changes_total",
			Help:      "Total successful country selections.",
		}),
		SelectionMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covidmap",
			Name:      "selection_misses_total",
			Help:      "Total selection requests naming an unknown country.",
		}),
		HoverNotifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covidmap",
			Name:      "hover_notifications_total",
			Help:      "Total hover highlights that survived the debounce delay.",
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "covidmap",
			Name:      "ws_clients",
			Help:      "Currently connected websocket clients.",
		}),
	}

	prometheus.MustRegister(
		m.RecordsDecoded,
		m.RowsSkipped,
		m.RecordsExcluded,
		m.FetchFailures,
		m.Loads,
		m.LoadDuration,
		m.CountriesAggregated,
		m.FallbackActive,
		m.SelectionChanges,
		m.SelectionMisses,
		m.HoverNotifications,
		m.WSClients,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsDecoded:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "covidmap", Name: "records_decoded_total"}),
		RowsSkipped:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "covidmap", Name: "rows_skipped_total"}),
		RecordsExcluded:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "covidmap", Name: "records_excluded_total"}),
		FetchFailures:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "covidmap", Name: "fetch_failures_total"}),
		Loads:               prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "covidmap", Name: "loads_total"}, []string{"source"}),
		LoadDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "covidmap", Name: "load_duration_seconds"}),
		CountriesAggregated: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "covidmap", Name: "countries_aggregated"}),
		FallbackActive:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "covidmap", Name: "fallback_active"}),
		SelectionChanges:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "covidmap", Name: "selection_changes_total"}),
		SelectionMisses:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "covidmap", Name: "selection_misses_total"}),
		HoverNotifications:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "covidmap", Name: "hover_notifications_total"}),
		WSClients:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "covidmap", Name: "ws_clients"}),
	}
}

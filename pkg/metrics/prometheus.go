package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	UpdatesReceived prometheus.Counter
	ReportsSent     prometheus.Counter
	ReportsEdited   prometheus.Counter
	FlightsFound    prometheus.Counter
	LookupTime      prometheus.Histogram
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		UpdatesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_received_total",
			Help:      "The total number of webhook updates received",
		}),
		ReportsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_sent_total",
			Help:      "The total number of flight reports sent",
		}),
		ReportsEdited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_edited_total",
			Help:      "The total number of live reports edited in place",
		}),
		FlightsFound: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_found_total",
			Help:      "The total number of flights returned by area searches",
		}),
		LookupTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flight_lookup_time_seconds",
			Help:      "Time taken to run one search-and-detail lookup",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

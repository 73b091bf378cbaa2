package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// RegistererGatherer is a registry that can also be scraped.
type RegistererGatherer interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// Recorder counts and times provider requests. It satisfies algolia.Recorder.
type Recorder struct {
	registry RegistererGatherer
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	status   *prometheus.CounterVec
}

// New builds a Recorder on a fresh registry that also exposes process and Go
// runtime collectors.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "indexdeck",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of provider API requests",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "indexdeck",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Length of time per provider API request",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"endpoint"}),
		status: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "indexdeck",
			Subsystem: "api",
			Name:      "responses_total",
			Help:      "Provider API responses by HTTP status code",
		}, []string{"endpoint", "code"}),
	}
	r.registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
		r.total,
		r.duration,
		r.status,
	)
	return r
}

// ObserveRequest records one completed request. A zero status means no
// response arrived.
func (r *Recorder) ObserveRequest(endpoint string, status int, elapsed time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	r.total.WithLabelValues(endpoint, outcome).Inc()
	r.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	if status > 0 {
		r.status.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	}
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() RegistererGatherer {
	return r.registry
}

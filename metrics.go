package tlq

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics instruments the request pipeline. Disabled (nil) unless the
// caller opts in with WithMetrics.
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	retriesTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tlq_client_requests_total",
				Help: "Total number of TLQ operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		retriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tlq_client_retries_total",
				Help: "Total number of retried attempts",
			},
			[]string{"operation"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tlq_client_request_duration_seconds",
				Help:    "TLQ operation duration in seconds, including retries",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
	}
}

func (m *metrics) observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = errorOutcome(err)
	}
	m.requestsTotal.WithLabelValues(operation, outcome).Inc()
	m.requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *metrics) retry(operation string) {
	if m == nil {
		return
	}
	m.retriesTotal.WithLabelValues(operation).Inc()
}

func errorOutcome(err error) string {
	switch err.(type) {
	case *ConnectionError:
		return "connection"
	case *TimeoutError:
		return "timeout"
	case *ServerError:
		return "server"
	}
	return "error"
}

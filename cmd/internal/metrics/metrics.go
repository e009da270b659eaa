package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clubcal"

// Feed outcomes recorded by FeedRequests.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

type Metrics struct {
	FeedRequests    *prometheus.CounterVec
	FeedEvents      prometheus.Histogram
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FeedRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "feed",
				Name:      "requests_total",
				Help:      "Calendar feed requests by outcome",
			},
			[]string{"outcome"},
		),
		FeedEvents: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "feed",
				Name:      "events",
				Help:      "Number of events in each rendered feed",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *Metrics) ObserveFeed(outcome string, events int) {
	m.FeedRequests.WithLabelValues(outcome).Inc()
	if outcome == OutcomeFound {
		m.FeedEvents.Observe(float64(events))
	}
}

// Middleware times every request, labelled by the route pattern rather
// than the raw path so feed tokens do not leak into label values.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			m.RequestDuration.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

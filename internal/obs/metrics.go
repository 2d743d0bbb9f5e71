package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AlexKimmel/CrptLite/internal/crpt"
)

type Metrics struct {
	SubmissionsTotal *prometheus.CounterVec
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  prometheus.Histogram
	LimiterWait      prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SubmissionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crptlite_submissions_total",
				Help: "Total document submissions by outcome",
			},
			[]string{"outcome"},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crptlite_requests_total",
				Help: "Total HTTP requests sent to the registry",
			},
			[]string{"code"},
		),
		RequestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "crptlite_request_duration_seconds",
				Help:    "Registry request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		LimiterWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "crptlite_limiter_wait_seconds",
				Help:    "Time submissions spent blocked in the rate gate",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(m.SubmissionsTotal, m.RequestsTotal, m.RequestDuration, m.LimiterWait)
	return m
}

// Hooks adapts the metrics to the submitter's callback wiring.
func (m *Metrics) Hooks() crpt.Hooks {
	return crpt.Hooks{
		OnWait: func(d time.Duration) {
			m.LimiterWait.Observe(d.Seconds())
		},
		OnResult: func(outcome string, d time.Duration) {
			m.SubmissionsTotal.WithLabelValues(outcome).Inc()
		},
	}
}

// Middleware records per-request metrics on the outbound client.
func (m *Metrics) Middleware() crpt.Middleware {
	return func(next crpt.Doer) crpt.Doer {
		return crpt.DoerFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(r)

			code := "error"
			if resp != nil {
				code = strconv.Itoa(resp.StatusCode)
			}
			m.RequestDuration.Observe(time.Since(start).Seconds())
			m.RequestsTotal.WithLabelValues(code).Inc()
			return resp, err
		})
	}
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Backend counts /search outcomes and times page fetches.
type Backend struct {
	Searches      *prometheus.CounterVec
	FetchDuration prometheus.Histogram
}

func NewBackend(reg prometheus.Registerer) *Backend {
	m := &Backend{
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitesearch_backend_searches_total",
			Help: "Search requests handled by the backend, by outcome.",
		}, []string{"status"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sitesearch_backend_fetch_duration_seconds",
			Help:    "Time spent fetching the target page.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Searches, m.FetchDuration)
	}
	return m
}

func (m *Backend) IncSearch(status string) {
	if m == nil || m.Searches == nil {
		return
	}
	m.Searches.WithLabelValues(status).Inc()
}

func (m *Backend) ObserveFetch(d time.Duration) {
	if m == nil || m.FetchDuration == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// Web counts form submissions by outcome.
type Web struct {
	Submissions *prometheus.CounterVec
}

func NewWeb(reg prometheus.Registerer) *Web {
	m := &Web{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitesearch_web_submissions_total",
			Help: "Search form submissions, by outcome.",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Submissions)
	}
	return m
}

func (m *Web) IncSubmission(outcome string) {
	if m == nil || m.Submissions == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

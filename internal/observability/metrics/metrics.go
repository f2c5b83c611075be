package metrics

import "github.com/prometheus/client_golang/prometheus"

// APIMetrics exposes counters/histograms for backend calls made by the client.
type APIMetrics struct {
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	sessionExpired prometheus.Counter
}

func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	m := &APIMetrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citasalud",
			Subsystem: "api",
			Name:      "request_total",
			Help:      "Total backend requests issued by the client",
		}, []string{"route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "citasalud",
			Subsystem: "api",
			Name:      "request_latency_seconds",
			Help:      "Latency of backend requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		sessionExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "citasalud",
			Subsystem: "api",
			Name:      "session_expired_total",
			Help:      "Requests rejected with 401 forcing a session clear",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestTotal, m.requestLatency, m.sessionExpired)
	return m
}

func (m *APIMetrics) ObserveRequest(route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(route, status).Inc()
	m.requestLatency.WithLabelValues(route).Observe(seconds)
}

func (m *APIMetrics) ObserveSessionExpired() {
	if m == nil {
		return
	}
	m.sessionExpired.Inc()
}

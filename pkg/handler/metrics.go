package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	flowEngage  = "engage"
	flowCapture = "capture"

	outcomeSuccess        = "success"
	outcomeMissingToken   = "missing_token"
	outcomeProviderError  = "provider_error"
	outcomeUnidentifiable = "unidentifiable"
	outcomeError          = "error"
)

// Metrics counts sign-in attempts by flow and outcome.
type Metrics struct {
	logins *prometheus.CounterVec
}

// NewMetrics registers the sign-in counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		logins: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "janrain",
			Name:      "logins_total",
			Help:      "Sign-in attempts by flow and outcome.",
		}, []string{"flow", "outcome"}),
	}
}

func (m *Metrics) login(flow, outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(flow, outcome).Inc()
}

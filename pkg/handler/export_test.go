package handler

import "github.com/prometheus/client_golang/prometheus"

var SafeRedirect = safeRedirect

// Counter exposes a single sign-in counter to tests.
func (m *Metrics) Counter(flow, outcome string) prometheus.Counter {
	return m.logins.WithLabelValues(flow, outcome)
}

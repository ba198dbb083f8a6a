package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// ProviderMetrics counts outbound payment provider calls by operation and HTTP status.
type ProviderMetrics struct {
	calls *prometheus.CounterVec
}

// NewProviderMetrics registers the provider metrics on the provided registerer.
func NewProviderMetrics(reg prometheus.Registerer) *ProviderMetrics {
	if reg == nil {
		return &ProviderMetrics{}
	}
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_provider_calls_total",
		Help: "Payment provider calls by operation and status; status 0 is a transport failure.",
	}, []string{"operation", "status"})
	reg.MustRegister(calls)
	return &ProviderMetrics{calls: calls}
}

// Observe records one provider call.
func (p *ProviderMetrics) Observe(operation string, status int) {
	if p == nil || p.calls == nil {
		return
	}
	p.calls.WithLabelValues(normalizeLabel(operation), strconv.Itoa(status)).Inc()
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// RetrievalMetrics tracks dashboard contract loads. Failures are otherwise
// invisible to the client, who sees an empty list either way.
type RetrievalMetrics struct {
	loads   *prometheus.CounterVec
	dropped prometheus.Counter
}

// NewRetrievalMetrics registers the retrieval metrics on the provided registerer.
func NewRetrievalMetrics(reg prometheus.Registerer) *RetrievalMetrics {
	if reg == nil {
		return &RetrievalMetrics{}
	}
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contract_retrieval_total",
		Help: "Dashboard contract loads by outcome.",
	}, []string{"outcome"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contract_retrieval_stale_dropped",
		Help: "Contract load results discarded because a newer load was issued.",
	})
	reg.MustRegister(loads, dropped)
	return &RetrievalMetrics{loads: loads, dropped: dropped}
}

func (r *RetrievalMetrics) IncSuccess() {
	r.inc("success")
}

func (r *RetrievalMetrics) IncFailure() {
	r.inc("failure")
}

// IncStale counts a result that arrived after a newer load superseded it.
func (r *RetrievalMetrics) IncStale() {
	if r == nil || r.dropped == nil {
		return
	}
	r.dropped.Inc()
}

func (r *RetrievalMetrics) inc(outcome string) {
	if r == nil || r.loads == nil {
		return
	}
	r.loads.WithLabelValues(outcome).Inc()
}

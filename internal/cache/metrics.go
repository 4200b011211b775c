package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes coordinator counters. A nil *Metrics disables collection,
// which keeps tests free of registry bookkeeping.
type Metrics struct {
	hits          *prometheus.CounterVec
	misses        prometheus.Counter
	fetches       prometheus.Counter
	dedupJoins    prometheus.Counter
	invalidations prometheus.Counter
	retries       prometheus.Counter
	cancellations prometheus.Counter
}

// NewMetrics registers coordinator counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "casa_cache_hits_total",
			Help: "Cache reads served from a cached value, by freshness.",
		}, []string{"state"}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casa_cache_misses_total",
			Help: "Cache reads that had to wait for a fetch.",
		}),
		fetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casa_cache_fetches_total",
			Help: "Fetches started against the backend.",
		}),
		dedupJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casa_cache_dedup_joins_total",
			Help: "Reads that joined an already in-flight fetch.",
		}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casa_cache_invalidations_total",
			Help: "Cache entries invalidated by mutations.",
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casa_cache_fetch_retries_total",
			Help: "Read fetch attempts beyond the first.",
		}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casa_cache_cancellations_total",
			Help: "Reads abandoned by caller cancellation.",
		}),
	}
	reg.MustRegister(m.hits, m.misses, m.fetches, m.dedupJoins, m.invalidations, m.retries, m.cancellations)
	return m
}

func (m *Metrics) hit(state string) {
	if m != nil {
		m.hits.WithLabelValues(state).Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *Metrics) fetch() {
	if m != nil {
		m.fetches.Inc()
	}
}

func (m *Metrics) dedupJoin() {
	if m != nil {
		m.dedupJoins.Inc()
	}
}

func (m *Metrics) invalidation() {
	if m != nil {
		m.invalidations.Inc()
	}
}

func (m *Metrics) retry() {
	if m != nil {
		m.retries.Inc()
	}
}

func (m *Metrics) cancellation() {
	if m != nil {
		m.cancellations.Inc()
	}
}

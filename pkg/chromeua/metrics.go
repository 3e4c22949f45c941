package chromeua

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments a ChromeUA. A nil *Metrics is valid and records nothing.
type Metrics struct {
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheEvictions  prometheus.Counter
	updates         *prometheus.CounterVec
	synthesisErrors prometheus.Counter
	agents          prometheus.Gauge
}

// NewMetrics registers the collectors with reg. A nil reg uses the default
// Prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		// cacheHits counts header requests served from the memo cache
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "chromeua_cache_hits_total",
			Help: "Total number of header requests served from cache",
		}),
		// cacheMisses counts header requests that synthesized a new result
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "chromeua_cache_misses_total",
			Help: "Total number of header requests that missed the cache",
		}),
		cacheEvictions: f.NewCounter(prometheus.CounterOpts{
			Name: "chromeua_cache_evictions_total",
			Help: "Total number of cached header sets evicted for capacity",
		}),
		// updates counts registry updates by outcome
		updates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chromeua_updates_total",
			Help: "Total number of registry updates by outcome",
		}, []string{"outcome"}),
		synthesisErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "chromeua_synthesis_errors_total",
			Help: "Total number of failed header synthesis attempts",
		}),
		agents: f.NewGauge(prometheus.GaugeOpts{
			Name: "chromeua_agents",
			Help: "Number of agents in the committed registry",
		}),
	}
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *Metrics) cacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

func (m *Metrics) cacheEvict() {
	if m != nil {
		m.cacheEvictions.Inc()
	}
}

func (m *Metrics) updated(ok bool) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if ok {
		outcome = "committed"
	}
	m.updates.WithLabelValues(outcome).Inc()
}

func (m *Metrics) synthesisFailed() {
	if m != nil {
		m.synthesisErrors.Inc()
	}
}

func (m *Metrics) setAgents(n int) {
	if m != nil {
		m.agents.Set(float64(n))
	}
}

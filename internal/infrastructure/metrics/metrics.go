// Package metrics exposes combat counters for the sandbox's /metrics endpoint.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Combat holds the match metrics. Labels are attack names only, which are
// bounded by the loaded move sets.
type Combat struct {
	attacks      *prometheus.CounterVec
	hits         *prometheus.CounterVec
	damage       prometheus.Counter
	kos          prometheus.Counter
	tickDuration prometheus.Histogram
}

// NewCombat registers the combat metrics on reg
func NewCombat(reg prometheus.Registerer) *Combat {
	f := promauto.With(reg)
	return &Combat{
		attacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brawl_attacks_activated_total",
			Help: "Attacks started, by attack name",
		}, []string{"attack"}),
		hits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brawl_hits_landed_total",
			Help: "Hits resolved, by attack name",
		}, []string{"attack"}),
		damage: f.NewCounter(prometheus.CounterOpts{
			Name: "brawl_damage_dealt_total",
			Help: "Damage credited to struck fighters",
		}),
		kos: f.NewCounter(prometheus.CounterOpts{
			Name: "brawl_kos_total",
			Help: "Fighters knocked out of the blast zone",
		}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "brawl_tick_duration_seconds",
			Help:    "Time spent in one simulation tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.0166},
		}),
	}
}

// AttackActivated counts an attack start
func (c *Combat) AttackActivated(attack string) {
	c.attacks.WithLabelValues(attack).Inc()
}

// HitLanded counts a resolved hit and the damage it credited
func (c *Combat) HitLanded(attack string, damage float64) {
	c.hits.WithLabelValues(attack).Inc()
	if damage > 0 {
		c.damage.Add(damage)
	}
}

// KO counts a knockout
func (c *Combat) KO() {
	c.kos.Inc()
}

// ObserveTick records one tick's duration
func (c *Combat) ObserveTick(d time.Duration) {
	c.tickDuration.Observe(d.Seconds())
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

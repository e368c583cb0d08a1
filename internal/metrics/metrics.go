// Package metrics exposes Prometheus counters for coordinate conversions,
// name lookups and site catalogue reloads.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-astro/internal/coord"
)

// Collector bundles the ls-astro Prometheus metrics. It implements
// coord.LegObserver and resolver.LookupObserver.
type Collector struct {
	gatherer prometheus.Gatherer

	Conversions         *prometheus.CounterVec
	ConversionDurations *prometheus.HistogramVec
	ConversionLegs      *prometheus.CounterVec

	Lookups         *prometheus.CounterVec
	LookupDurations *prometheus.HistogramVec

	Sites       prometheus.Gauge
	SiteReloads *prometheus.CounterVec
}

// NewCollector registers the metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	conversions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lsastro_conversions_total",
		Help: "Coordinate conversions, labeled by input frame, output frame and result.",
	}, []string{"from", "to", "result"}), "lsastro_conversions_total")
	if err != nil {
		return nil, err
	}
	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lsastro_conversion_duration_seconds",
		Help:    "Coordinate conversion latency in seconds.",
		Buckets: []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3},
	}, []string{"from", "to"}), "lsastro_conversion_duration_seconds")
	if err != nil {
		return nil, err
	}
	legs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lsastro_conversion_legs_total",
		Help: "Frame-to-frame legs walked by conversions.",
	}, []string{"from", "to"}), "lsastro_conversion_legs_total")
	if err != nil {
		return nil, err
	}

	lookups, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lsastro_resolver_lookups_total",
		Help: "Source name lookups, labeled by resolver and result.",
	}, []string{"resolver", "result"}), "lsastro_resolver_lookups_total")
	if err != nil {
		return nil, err
	}
	lookupDurations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lsastro_resolver_lookup_duration_seconds",
		Help:    "Source name lookup latency in seconds.",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"resolver"}), "lsastro_resolver_lookup_duration_seconds")
	if err != nil {
		return nil, err
	}

	sites, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lsastro_sites",
		Help: "Current number of registered telescope locations.",
	}), "lsastro_sites")
	if err != nil {
		return nil, err
	}
	reloads, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lsastro_site_reloads_total",
		Help: "Site catalogue reloads, labeled by result.",
	}, []string{"result"}), "lsastro_site_reloads_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:            gatherer,
		Conversions:         conversions,
		ConversionDurations: durations,
		ConversionLegs:      legs,
		Lookups:             lookups,
		LookupDurations:     lookupDurations,
		Sites:               sites,
		SiteReloads:         reloads,
	}, nil
}

// Options returns the conversion options that feed this collector.
func (c *Collector) Options() []coord.Option {
	if c == nil {
		return nil
	}
	return []coord.Option{coord.WithLegObserver(c)}
}

// ObserveLeg implements coord.LegObserver.
func (c *Collector) ObserveLeg(from, to coord.Mode) {
	if c == nil || c.ConversionLegs == nil {
		return
	}
	c.ConversionLegs.WithLabelValues(from.String(), to.String()).Inc()
}

// ObserveConversion records one completed conversion.
func (c *Collector) ObserveConversion(from, to coord.Mode, err error, d time.Duration) {
	if c == nil {
		return
	}
	if c.Conversions != nil {
		c.Conversions.WithLabelValues(from.String(), to.String(), result(err)).Inc()
	}
	if c.ConversionDurations != nil {
		c.ConversionDurations.WithLabelValues(from.String(), to.String()).Observe(d.Seconds())
	}
}

// ObserveLookup implements resolver.LookupObserver.
func (c *Collector) ObserveLookup(resolver string, err error, d time.Duration) {
	if c == nil {
		return
	}
	if c.Lookups != nil {
		c.Lookups.WithLabelValues(resolver, result(err)).Inc()
	}
	if c.LookupDurations != nil {
		c.LookupDurations.WithLabelValues(resolver).Observe(d.Seconds())
	}
}

// ObserveReload records a site catalogue reload and the registry size after
// it.
func (c *Collector) ObserveReload(sites int, err error) {
	if c == nil {
		return
	}
	if c.SiteReloads != nil {
		c.SiteReloads.WithLabelValues(result(err)).Inc()
	}
	c.SetSites(sites)
}

// SetSites sets the registered location gauge.
func (c *Collector) SetSites(n int) {
	if c == nil || c.Sites == nil {
		return
	}
	c.Sites.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

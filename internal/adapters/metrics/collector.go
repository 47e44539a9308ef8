// Package metrics records cache activity in a private Prometheus registry.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

// Namespace prefixes every metric name.
const Namespace = "shelf"

var _ ports.Metrics = (*Collector)(nil)

// Collector implements ports.Metrics.
type Collector struct {
	registry *prometheus.Registry

	retrievals      *prometheus.CounterVec
	lockUnavailable *prometheus.CounterVec
	sweeps          prometheus.Counter
	sweptEntries    prometheus.Counter
	cacheEntries    prometheus.Gauge
	cacheBytes      prometheus.Gauge
}

// NewCollector creates a Collector with all metrics registered.
func NewCollector() (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		retrievals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "library",
			Name:      "retrievals_total",
			Help:      "Library retrievals by cache outcome.",
		}, []string{"outcome"}),
		lockUnavailable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "lock_unavailable_total",
			Help:      "Cache locks that could not be obtained, by mode.",
		}, []string{"mode"}),
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "sweeps_total",
			Help:      "Completed cleanup passes.",
		}),
		sweptEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "swept_entries_total",
			Help:      "Cache entries deleted by cleanup.",
		}),
		cacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Entries currently in the cache.",
		}),
		cacheBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "bytes",
			Help:      "Bytes of library data currently in the cache.",
		}),
	}

	for _, collector := range []prometheus.Collector{
		c.retrievals, c.lockUnavailable, c.sweeps, c.sweptEntries, c.cacheEntries, c.cacheBytes,
	} {
		if err := c.registry.Register(collector); err != nil {
			return nil, zerr.Wrap(err, "failed to register metric")
		}
	}

	return c, nil
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRetrieval counts a retrieval and how it was satisfied.
func (c *Collector) ObserveRetrieval(outcome ports.CacheOutcome) {
	c.retrievals.WithLabelValues(string(outcome)).Inc()
}

// ObserveLockUnavailable counts a lock that could not be obtained.
func (c *Collector) ObserveLockUnavailable(mode string) {
	c.lockUnavailable.WithLabelValues(mode).Inc()
}

// ObserveSweep counts one cleanup pass and the entries it deleted.
func (c *Collector) ObserveSweep(deleted int) {
	c.sweeps.Inc()
	c.sweptEntries.Add(float64(deleted))
}

// SetCacheSize records the current size of the cache.
func (c *Collector) SetCacheSize(entries int, bytes int64) {
	c.cacheEntries.Set(float64(entries))
	c.cacheBytes.Set(float64(bytes))
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return zerr.Wrap(err, "failed to gather metrics")
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return zerr.Wrap(err, fmt.Sprintf("failed to write metric %s", family.GetName()))
		}
	}
	return nil
}

// Package atlasmetrics exports glyph cache statistics to Prometheus.
package atlasmetrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/glyphcache"
)

// StatsSource provides cache statistics. *glyphcache.Cache implements it.
type StatsSource interface {
	Stats() glyphcache.Stats
}

// PageSource optionally provides per-page statistics.
type PageSource interface {
	PageInfos() []atlas.PageInfo
}

// Collector reads a StatsSource on every scrape.
type Collector struct {
	src StatsSource

	hits        *prometheus.Desc
	misses      *prometheus.Desc
	fallbacks   *prometheus.Desc
	entries     *prometheus.Desc
	pages       *prometheus.Desc
	utilization *prometheus.Desc
	placed      *prometheus.Desc
}

// NewCollector creates a collector for src with metric names prefixed by
// namespace.
func NewCollector(namespace string, src StatsSource) *Collector {
	desc := func(subsystem, name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, labels, nil)
	}
	return &Collector{
		src:         src,
		hits:        desc("glyph_cache", "hits_total", "Total number of glyph lookups answered from the cache"),
		misses:      desc("glyph_cache", "misses_total", "Total number of glyph lookups that loaded a glyph"),
		fallbacks:   desc("glyph_cache", "fallbacks_total", "Total number of glyph lookups answered with the fallback glyph"),
		entries:     desc("glyph_cache", "entries", "Number of cached code points"),
		pages:       desc("atlas", "pages", "Number of atlas pages"),
		utilization: desc("atlas", "page_utilization_ratio", "Fraction of an atlas page covered by glyphs", "page"),
		placed:      desc("atlas", "page_glyphs", "Number of glyphs placed in an atlas page", "page"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.fallbacks
	ch <- c.entries
	ch <- c.pages
	if _, ok := c.src.(PageSource); ok {
		ch <- c.utilization
		ch <- c.placed
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.src == nil {
		return
	}

	st := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(st.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(st.Misses))
	ch <- prometheus.MustNewConstMetric(c.fallbacks, prometheus.CounterValue, float64(st.Fallbacks))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(st.Entries))
	ch <- prometheus.MustNewConstMetric(c.pages, prometheus.GaugeValue, float64(st.Pages))

	ps, ok := c.src.(PageSource)
	if !ok {
		return
	}
	for _, info := range ps.PageInfos() {
		page := strconv.Itoa(info.Index)
		ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, info.Utilization, page)
		ch <- prometheus.MustNewConstMetric(c.placed, prometheus.GaugeValue, float64(info.Placed), page)
	}
}

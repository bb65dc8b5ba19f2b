package metric

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/microdog-go/internal/core/domain"
)

// Collector reports the loaded token record. The record is immutable, so
// values are read at scrape time without locking.
type Collector struct {
	rec     *domain.TokenRecord
	buckets int

	info    *prometheus.Desc
	entries *prometheus.Desc
	skipped *prometheus.Desc
	hashes  *prometheus.Desc
}

// NewCollector creates a collector for rec. buckets is the number of
// distinct request hashes in its lookup index.
func NewCollector(rec *domain.TokenRecord, buckets int) *Collector {
	return &Collector{
		rec:     rec,
		buckets: buckets,
		info: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "token", "info"),
			"Identity of the emulated device",
			[]string{"serial", "mfg_serial", "algorithm"}, nil,
		),
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "token", "convert_entries"),
			"Entries in the loaded convert table",
			nil, nil,
		),
		skipped: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "token", "skipped_entries"),
			"Malformed convert entries dropped at load",
			nil, nil,
		),
		hashes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "token", "index_buckets"),
			"Distinct request hashes in the lookup index",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.info
	ch <- c.entries
	ch <- c.skipped
	ch <- c.hashes
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.info, prometheus.GaugeValue, 1,
		fmt.Sprintf("%04X", c.rec.Serial()),
		fmt.Sprintf("%04X", c.rec.MfgSerial()),
		c.rec.Algorithm().String(),
	)
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.rec.Len()))
	ch <- prometheus.MustNewConstMetric(c.skipped, prometheus.GaugeValue, float64(c.rec.Skipped()))
	ch <- prometheus.MustNewConstMetric(c.hashes, prometheus.GaugeValue, float64(c.buckets))
}

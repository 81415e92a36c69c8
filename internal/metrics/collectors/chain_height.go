package collectors

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/minichain/minichain/internal/chain"
)

type ChainHeightCollector struct {
	ledger *chain.Ledger
	height *prometheus.Desc
}

func NewChainHeightCollector(ledger *chain.Ledger) *ChainHeightCollector {
	return &ChainHeightCollector{
		ledger: ledger,
		height: prometheus.NewDesc(
			prometheus.BuildFQName("minichain", "chain", "height"),
			"Number of blocks in the chain, genesis included",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
	}
}

func (c *ChainHeightCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.height
}

func (c *ChainHeightCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(c.ledger.Height()))
}

func init() {
	RegisterCollectorFactory(func(ledger *chain.Ledger) prometheus.Collector {
		return NewChainHeightCollector(ledger)
	})
}

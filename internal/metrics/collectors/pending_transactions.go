package collectors

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/minichain/minichain/internal/chain"
)

type PendingTransactionsCollector struct {
	ledger  *chain.Ledger
	pending *prometheus.Desc
}

func NewPendingTransactionsCollector(ledger *chain.Ledger) *PendingTransactionsCollector {
	return &PendingTransactionsCollector{
		ledger: ledger,
		pending: prometheus.NewDesc(
			prometheus.BuildFQName("minichain", "pool", "pending_transactions"),
			"Number of transactions waiting for the next block",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
	}
}

func (c *PendingTransactionsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pending
}

func (c *PendingTransactionsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(len(c.ledger.PendingTransactions())))
}

func init() {
	RegisterCollectorFactory(func(ledger *chain.Ledger) prometheus.Collector {
		return NewPendingTransactionsCollector(ledger)
	})
}

package collectors

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/minichain/minichain/internal/chain"
)

type TotalTransactionCountCollector struct {
	ledger       *chain.Ledger
	totalTxCount *prometheus.Desc
}

func NewTotalTransactionCountCollector(ledger *chain.Ledger) *TotalTransactionCountCollector {
	return &TotalTransactionCountCollector{
		ledger: ledger,
		totalTxCount: prometheus.NewDesc(
			prometheus.BuildFQName("minichain", "transactions", "total_count"),
			"Total number of transactions sealed into the chain",
			nil,
			prometheus.Labels{"source": "ledger"},
		),
	}
}

func (c *TotalTransactionCountCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalTxCount
}

func (c *TotalTransactionCountCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.totalTxCount, prometheus.CounterValue, float64(c.ledger.TransactionCount()))
}

func init() {
	RegisterCollectorFactory(func(ledger *chain.Ledger) prometheus.Collector {
		return NewTotalTransactionCountCollector(ledger)
	})
}

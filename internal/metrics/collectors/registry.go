package collectors

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/minichain/minichain/internal/chain"
)

// CollectorFactory creates a collector bound to a ledger.
type CollectorFactory func(ledger *chain.Ledger) prometheus.Collector

type Registry struct {
	factories []CollectorFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make([]CollectorFactory, 0),
	}
}

func (r *Registry) Register(factory CollectorFactory) {
	r.factories = append(r.factories, factory)
}

// CreateCollectors instantiates all registered collectors for ledger.
func (r *Registry) CreateCollectors(ledger *chain.Ledger) ([]prometheus.Collector, error) {
	if ledger == nil {
		return nil, errors.New("ledger is nil")
	}

	collectors := make([]prometheus.Collector, 0, len(r.factories))
	for _, factory := range r.factories {
		collectors = append(collectors, factory(ledger))
	}
	return collectors, nil
}

var DefaultRegistry = NewRegistry()

func RegisterCollectorFactory(factory CollectorFactory) {
	DefaultRegistry.Register(factory)
}

package metrics

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minichain/minichain/internal/chain"
	"github.com/minichain/minichain/internal/metrics/collectors"
)

// CreateMetricsServer registers the chain collectors for ledger and
// starts a Prometheus metrics server on addr. The returned server is
// already serving; shutting it down is the caller's responsibility.
func CreateMetricsServer(ledger *chain.Ledger, addr string) (*http.Server, error) {
	chainCollectors, err := collectors.DefaultRegistry.CreateCollectors(ledger)
	if err != nil {
		return nil, fmt.Errorf("failed to create collectors: %w", err)
	}

	// A per-server registry so repeated starts in one process never
	// trip duplicate registration.
	registry := prometheus.NewRegistry()
	registry.MustRegister(chainCollectors...)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server terminated", "error", err)
		}
	}()

	return server, nil
}

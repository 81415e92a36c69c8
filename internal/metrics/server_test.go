package metrics_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/minichain/minichain/internal/chain"
	"github.com/minichain/minichain/internal/metrics"
)

func TestCreateMetricsServer(t *testing.T) {
	t.Run("StartServer", func(t *testing.T) {
		lgr := chain.NewLedger(0)
		lgr.AddTransaction(chain.Transaction{Sender: "A", Receiver: "B", Amount: 100})
		_, err := lgr.MinePendingTransactions(context.Background(), "miner1", nil)
		require.NoError(t, err)

		server, err := metrics.CreateMetricsServer(lgr, "127.0.0.1:2112")
		require.NoError(t, err)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, server.Shutdown(ctx))
		}()

		time.Sleep(100 * time.Millisecond)

		resp, err := http.Get("http://127.0.0.1:2112/metrics")
		require.NoError(t, err, "Failed to connect to metrics server")
		defer resp.Body.Close()
		require.Equal(t, 200, resp.StatusCode, "Expected status code 200")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), `minichain_chain_height{source="ledger"} 2`)
		require.Contains(t, string(body), `minichain_pool_pending_transactions{source="ledger"} 1`)
		require.Contains(t, string(body), `minichain_transactions_total_count{source="ledger"} 1`)
	})

	t.Run("WhenNilLedger", func(t *testing.T) {
		_, err := metrics.CreateMetricsServer(nil, "127.0.0.1:2112")
		require.Error(t, err)
	})

	t.Run("WhenInvalidAddress", func(t *testing.T) {
		_, err := metrics.CreateMetricsServer(chain.NewLedger(0), "invalid-address😆")
		require.Error(t, err)
	})

	t.Run("WhenInvalidPort", func(t *testing.T) {
		_, err := metrics.CreateMetricsServer(chain.NewLedger(0), "localhost:99999")
		require.Error(t, err)
	})

	t.Run("ValidPort", func(t *testing.T) {
		server, err := metrics.CreateMetricsServer(chain.NewLedger(0), "localhost:12345")
		require.NoError(t, err)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, server.Shutdown(ctx))
		}()
	})
}

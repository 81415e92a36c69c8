package minichain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/minichain/minichain/internal/chain"
	"github.com/minichain/minichain/internal/config"
	"github.com/minichain/minichain/internal/metrics"
)

var MineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine blocks over an in-memory ledger",
	Long:  `mine seals blocks continuously (or --count times) over a fresh in-memory ledger, crediting each block reward to the miner address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chainCfg := config.LoadChainConfigFromCLI()
		if err := chainCfg.Validate(); err != nil {
			return fmt.Errorf("invalid chain configuration: %w", err)
		}
		metricsCfg := config.LoadMetricsConfigFromCLI()
		if err := metricsCfg.Validate(); err != nil {
			return fmt.Errorf("invalid metrics configuration: %w", err)
		}
		count := viper.GetUint("count")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		lgr := chain.NewLedger(chainCfg.Difficulty)

		var server *http.Server
		if metricsCfg.Enabled {
			var err error
			server, err = metrics.CreateMetricsServer(lgr, metricsCfg.Addr)
			if err != nil {
				return fmt.Errorf("failed to start metrics server: %w", err)
			}
			slog.Info("Prometheus metrics server started", "addr", metricsCfg.Addr)
		}

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		var eg errgroup.Group
		eg.Go(func() error {
			defer cancel()
			return mineLoop(runCtx, lgr, chainCfg.Miner, count)
		})
		if server != nil {
			eg.Go(func() error {
				<-runCtx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				return server.Shutdown(shutdownCtx)
			})
		}

		if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// mineLoop seals blocks until count is reached (count 0 means forever)
// or ctx is cancelled.
func mineLoop(ctx context.Context, lgr *chain.Ledger, miner string, count uint) error {
	for sealed := uint(0); count == 0 || sealed < count; sealed++ {
		bar := sealingBar()
		block, err := lgr.MinePendingTransactions(ctx, miner, func(attempts uint64) {
			if barErr := bar.Set64(int64(attempts)); barErr != nil {
				slog.Warn("Failed to update progress bar", "error", barErr)
			}
		})
		if barErr := bar.Finish(); barErr != nil {
			slog.Warn("Failed to finish progress bar", "error", barErr)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				slog.Info("Mining interrupted")
				return err
			}
			return fmt.Errorf("failed to mine block: %w", err)
		}
		slog.Info("Chain extended", "height", lgr.Height(), "hash", block.Hash)
	}
	return nil
}

func sealingBar() *progressbar.ProgressBar {
	return progressbar.NewOptions64(-1,
		progressbar.OptionSetDescription("Sealing block..."),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("hash"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func init() {
	MineCmd.Flags().UintP("count", "n", 0, "number of blocks to mine (0 = until interrupted)")
	MineCmd.Flags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	MineCmd.Flags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")
	if err := viper.BindPFlags(MineCmd.Flags()); err != nil {
		slog.Error("Failed to bind MineCmd flags", "error", err)
	}
}

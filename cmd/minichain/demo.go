package minichain

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minichain/minichain/internal/chain"
	"github.com/minichain/minichain/internal/config"
	"github.com/minichain/minichain/internal/output"
)

var DemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the sample two-block scenario",
	Long:  `demo submits two transfers, mines a block after each and prints the resulting balances, the chain verdict and the chain itself.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chainCfg := config.LoadChainConfigFromCLI()
		if err := chainCfg.Validate(); err != nil {
			return fmt.Errorf("invalid chain configuration: %w", err)
		}

		lgr := chain.NewLedger(chainCfg.Difficulty)

		lgr.AddTransaction(chain.Transaction{Sender: "A", Receiver: "B", Amount: 100})
		slog.Info("Mining block", "height", lgr.Height())
		if _, err := lgr.MinePendingTransactions(cmd.Context(), chainCfg.Miner, nil); err != nil {
			return fmt.Errorf("failed to mine block: %w", err)
		}

		lgr.AddTransaction(chain.Transaction{Sender: "C", Receiver: "D", Amount: 10})
		slog.Info("Mining block", "height", lgr.Height())
		if _, err := lgr.MinePendingTransactions(cmd.Context(), chainCfg.Miner, nil); err != nil {
			return fmt.Errorf("failed to mine block: %w", err)
		}

		stdout := cmd.OutOrStdout()
		for _, address := range []string{"A", "B", "C", "D", chainCfg.Miner} {
			fmt.Fprintf(stdout, "balance %s: %d\n", address, lgr.Balance(address))
		}

		if err := lgr.Validate(); err != nil {
			return fmt.Errorf("chain is invalid: %w", err)
		}
		fmt.Fprintf(stdout, "chain valid (%d blocks)\n", lgr.Height())

		writer, closeWriter, err := newChainWriter(cmd)
		if err != nil {
			return err
		}
		defer closeWriter()

		return writer.WriteChain(lgr.Blocks())
	},
}

// newChainWriter builds the chain writer selected by --format, writing
// to --out when set and to the command's stdout otherwise. The format is
// checked before the output file is created so a bad format never leaves
// an empty file behind.
func newChainWriter(cmd *cobra.Command) (output.ChainWriter, func(), error) {
	var newWriter func(io.Writer) output.ChainWriter
	switch format := viper.GetString("format"); format {
	case "json":
		newWriter = func(w io.Writer) output.ChainWriter { return output.NewJSONWriter(w) }
	case "tsv":
		newWriter = func(w io.Writer) output.ChainWriter { return output.NewTSVWriter(w) }
	default:
		return nil, nil, fmt.Errorf("unknown output format: %s", format)
	}

	var w io.Writer = cmd.OutOrStdout()
	closeWriter := func() {}

	if out := viper.GetString("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		w = f
		closeWriter = func() {
			if err := f.Close(); err != nil {
				slog.Warn("Failed to close output file", "error", err)
			}
		}
	}

	return newWriter(w), closeWriter, nil
}

func init() {
	DemoCmd.Flags().StringP("format", "f", "json", "chain dump format (json|tsv)")
	DemoCmd.Flags().StringP("out", "o", "", "write the chain dump to a file instead of stdout")
	if err := viper.BindPFlags(DemoCmd.Flags()); err != nil {
		slog.Error("Failed to bind DemoCmd flags", "error", err)
	}
}

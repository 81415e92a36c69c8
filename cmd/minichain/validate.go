package minichain

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/minichain/minichain/internal/chain"
	"github.com/minichain/minichain/internal/output"
)

var ValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a chain dump",
	Long:  `validate reads a JSON chain dump (genesis first), recomputes every block hash and checks predecessor linkage. Reads stdin when no file is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open chain dump: %w", err)
			}
			defer f.Close()
			r = f
		}

		blocks, err := output.DecodeChain(r)
		if err != nil {
			return fmt.Errorf("failed to read chain: %w", err)
		}

		if err := chain.ValidateChain(blocks); err != nil {
			return fmt.Errorf("chain is invalid: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "chain valid (%d blocks)\n", len(blocks))
		return nil
	},
}

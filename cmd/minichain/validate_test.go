package minichain_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minichain/minichain/cmd/minichain"
	"github.com/minichain/minichain/internal/chain"
	"github.com/minichain/minichain/internal/output"
)

// writeChainDump mines two blocks and writes the chain dump to a temp
// file, returning its path and the blocks for tampering.
func writeChainDump(t *testing.T, tamper func(blocks []*chain.Block)) string {
	t.Helper()

	lgr := chain.NewLedger(1)
	lgr.AddTransaction(chain.Transaction{Sender: "A", Receiver: "B", Amount: 100})
	_, err := lgr.MinePendingTransactions(context.Background(), "miner1", nil)
	require.NoError(t, err)
	_, err = lgr.MinePendingTransactions(context.Background(), "miner2", nil)
	require.NoError(t, err)

	blocks := lgr.Blocks()
	if tamper != nil {
		tamper(blocks)
	}

	path := filepath.Join(t.TempDir(), "chain.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, output.NewJSONWriter(f).WriteChain(blocks))

	return path
}

func TestValidateCmd(t *testing.T) {
	path := writeChainDump(t, nil)

	out, err := executeCommand(minichain.RootCmd, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "chain valid (3 blocks)")
}

func TestValidateCmdTamperedDump(t *testing.T) {
	path := writeChainDump(t, func(blocks []*chain.Block) {
		blocks[1].Transactions[0].Amount = 1_000_000
	})

	_, err := executeCommand(minichain.RootCmd, "validate", path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "chain is invalid")
	assert.ErrorContains(t, err, "block 1")
}

func TestValidateCmdNullRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.json")
	require.NoError(t, os.WriteFile(path, []byte(`[null]`), 0644))

	_, err := executeCommand(minichain.RootCmd, "validate", path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "record 0 is null")
}

func TestValidateCmdMissingFile(t *testing.T) {
	_, err := executeCommand(minichain.RootCmd, "validate", "no-such-file.json")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to open chain dump")
}

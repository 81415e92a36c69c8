package output_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minichain/minichain/internal/chain"
	"github.com/minichain/minichain/internal/output"
)

func minedChain(t *testing.T) []*chain.Block {
	t.Helper()

	lgr := chain.NewLedger(1)
	lgr.AddTransaction(chain.Transaction{Sender: "A", Receiver: "B", Amount: 100})
	_, err := lgr.MinePendingTransactions(context.Background(), "miner1", nil)
	require.NoError(t, err)

	return lgr.Blocks()
}

func TestJSONRoundTrip(t *testing.T) {
	blocks := minedChain(t)

	var buf bytes.Buffer
	require.NoError(t, output.NewJSONWriter(&buf).WriteChain(blocks))

	decoded, err := output.DecodeChain(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, len(blocks))

	for i := range blocks {
		assert.Equal(t, *blocks[i], *decoded[i])
	}
	assert.NoError(t, chain.ValidateChain(decoded), "a decoded dump revalidates")
}

func TestJSONCoinbaseOmitsSender(t *testing.T) {
	blocks := []*chain.Block{
		chain.NewBlock("deadbeef", []chain.Transaction{chain.NewRewardTransaction("miner1")}, 0),
	}

	var buf bytes.Buffer
	require.NoError(t, output.NewJSONWriter(&buf).WriteChain(blocks))
	assert.NotContains(t, buf.String(), `"sender"`)
	assert.Contains(t, buf.String(), `"receiver": "miner1"`)
}

func TestDecodeChainRejectsBadInput(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, err := output.DecodeChain(strings.NewReader(`[]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chain dump is empty")
	})

	t.Run("NullRecord", func(t *testing.T) {
		_, err := output.DecodeChain(strings.NewReader(`[null]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record 0 is null")
	})

	t.Run("NullRecordPastGenesis", func(t *testing.T) {
		genesis := chain.NewGenesisBlock()
		var buf bytes.Buffer
		require.NoError(t, output.NewJSONWriter(&buf).WriteChain([]*chain.Block{genesis}))
		dump := strings.TrimRight(strings.TrimSpace(buf.String()), "]") + ", null]"

		_, err := output.DecodeChain(strings.NewReader(dump))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record 1 is null")
	})

	t.Run("NotJSON", func(t *testing.T) {
		_, err := output.DecodeChain(strings.NewReader(`not json`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode chain")
	})

	t.Run("MissingGenesis", func(t *testing.T) {
		genesis := chain.NewGenesisBlock()
		var buf bytes.Buffer
		require.NoError(t, output.NewJSONWriter(&buf).WriteChain([]*chain.Block{
			chain.NewBlock(genesis.Hash, nil, 1),
		}))

		_, err := output.DecodeChain(&buf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a genesis block")
	})
}

func TestTSVWriter(t *testing.T) {
	blocks := minedChain(t)

	var buf bytes.Buffer
	require.NoError(t, output.NewTSVWriter(&buf).WriteChain(blocks))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(blocks))
	assert.True(t, strings.HasPrefix(lines[0], "0\t"))
	assert.True(t, strings.HasPrefix(lines[1], "1\t"))
	assert.Contains(t, lines[1], blocks[1].Hash)
}

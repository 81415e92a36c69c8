package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/minichain/minichain/internal/chain"
)

// TSVWriter renders one block per line: the block height followed by the
// compact JSON record, tab-separated.
type TSVWriter struct {
	w *bufio.Writer
}

func NewTSVWriter(w io.Writer) *TSVWriter {
	return &TSVWriter{w: bufio.NewWriter(w)}
}

func (t *TSVWriter) WriteChain(blocks []*chain.Block) error {
	for height, block := range blocks {
		data, err := json.Marshal(block)
		if err != nil {
			return fmt.Errorf("failed to marshal block %d: %w", height, err)
		}
		if _, err := fmt.Fprintf(t.w, "%d\t%s\n", height, data); err != nil {
			return fmt.Errorf("failed to write block %d: %w", height, err)
		}
	}

	if err := t.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush TSV output: %w", err)
	}
	return nil
}

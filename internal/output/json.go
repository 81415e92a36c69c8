package output

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/minichain/minichain/internal/chain"
)

// JSONWriter renders the chain as an indented JSON array of block
// records.
type JSONWriter struct {
	w io.Writer
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

func (j *JSONWriter) WriteChain(blocks []*chain.Block) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(blocks); err != nil {
		return errors.WithMessage(err, "failed to encode chain")
	}
	return nil
}

// DecodeChain reads a JSON chain dump as produced by JSONWriter. The dump
// must be non-empty and start with a genesis record; block integrity is
// not checked here, that is the caller's job via chain.ValidateChain.
func DecodeChain(r io.Reader) ([]*chain.Block, error) {
	var blocks []*chain.Block
	if err := json.NewDecoder(r).Decode(&blocks); err != nil {
		return nil, errors.WithMessage(err, "failed to decode chain")
	}
	if len(blocks) == 0 {
		return nil, errors.New("chain dump is empty")
	}
	for i, block := range blocks {
		if block == nil {
			return nil, errors.Errorf("record %d is null", i)
		}
	}
	if blocks[0].PreviousHash != chain.GenesisPreviousHash {
		return nil, errors.Errorf("first record is not a genesis block (previous_hash %q)", blocks[0].PreviousHash)
	}
	return blocks, nil
}

package output

import (
	"github.com/minichain/minichain/internal/chain"
)

// ChainWriter renders an ordered chain of blocks, genesis first, to some
// sink. Writers serialize the full block record: previous hash,
// timestamp, nonce, stored hash and the transaction list.
type ChainWriter interface {
	WriteChain(blocks []*chain.Block) error
}

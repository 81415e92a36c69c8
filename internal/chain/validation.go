package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrHashMismatch marks a block whose stored hash no longer matches
	// the hash recomputed from its fields.
	ErrHashMismatch = errors.New("stored hash does not match recomputed hash")

	// ErrBrokenLink marks a block whose previous hash does not match its
	// predecessor's stored hash.
	ErrBrokenLink = errors.New("previous hash does not match predecessor")
)

// ValidationError reports the first integrity violation found during a
// chain walk and the index of the offending block.
type ValidationError struct {
	Index int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("block %d: %s", e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate walks the chain from the block after genesis and checks that
// every block's stored hash matches its recomputed value and that every
// block links to its predecessor. It stops at the first violation; a nil
// return means the whole chain is consistent. The genesis block has no
// predecessor and is not re-validated.
func (l *Ledger) Validate() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ValidateChain(l.chain)
}

// IsValid is the boolean form of Validate.
func (l *Ledger) IsValid() bool { return l.Validate() == nil }

// ValidateChain checks an ordered sequence of blocks, genesis first, for
// the two chain invariants. It is used directly when validating a chain
// that was decoded from an external dump rather than mined in process.
func ValidateChain(blocks []*Block) error {
	for i := 1; i < len(blocks); i++ {
		current, previous := blocks[i], blocks[i-1]
		if current.Hash != current.ComputeHash() {
			return &ValidationError{Index: i, Err: ErrHashMismatch}
		}
		if current.PreviousHash != previous.Hash {
			return &ValidationError{Index: i, Err: ErrBrokenLink}
		}
	}
	return nil
}

package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// GenesisPreviousHash is the sentinel predecessor hash of the genesis block.
const GenesisPreviousHash = "0"

// checkCancelEvery is how often Seal polls its context and reports
// progress, in hash attempts.
const checkCancelEvery = 1024

// ProgressFunc receives the running number of hash attempts during a
// proof-of-work search. It is informational only and must not influence
// the search itself.
type ProgressFunc func(attempts uint64)

// Block is an ordered batch of transactions sealed into the chain by
// proof-of-work. Hash is a cache of ComputeHash over the other four
// fields; any mutation of those fields must be followed by a recompute
// before the block is observed by another component.
type Block struct {
	PreviousHash string        `json:"previous_hash"`
	Timestamp    int64         `json:"timestamp"`
	Nonce        uint64        `json:"nonce"`
	Hash         string        `json:"hash"`
	Transactions []Transaction `json:"transactions"`
}

// NewBlock constructs a block with nonce 0 and its identity hash
// computed immediately.
func NewBlock(previousHash string, transactions []Transaction, timestamp int64) *Block {
	b := &Block{
		PreviousHash: previousHash,
		Timestamp:    timestamp,
		Transactions: transactions,
	}
	b.Hash = b.ComputeHash()
	return b
}

// NewGenesisBlock returns the fixed first block every chain starts with.
func NewGenesisBlock() *Block {
	return NewBlock(GenesisPreviousHash, []Transaction{}, 0)
}

// ComputeHash derives the block identity: SHA-256 over the previous
// hash, the decimal timestamp, the decimal nonce and the serialized
// transaction list, in that order, as lowercase hex. Independent
// implementations composing the same bytes produce the same digest.
func (b *Block) ComputeHash() string {
	data := make([]byte, 0, 128)
	data = append(data, b.PreviousHash...)
	data = strconv.AppendInt(data, b.Timestamp, 10)
	data = strconv.AppendUint(data, b.Nonce, 10)
	data = append(data, '[')
	for i, tx := range b.Transactions {
		if i > 0 {
			data = append(data, ", "...)
		}
		data = tx.appendRepr(data)
	}
	data = append(data, ']')

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// MeetsDifficulty reports whether the stored hash starts with difficulty
// '0' characters.
func (b *Block) MeetsDifficulty(difficulty int) bool {
	if difficulty > len(b.Hash) {
		return false
	}
	for i := 0; i < difficulty; i++ {
		if b.Hash[i] != '0' {
			return false
		}
	}
	return true
}

// Seal performs the proof-of-work search: increment the nonce and
// recompute the hash until the first difficulty characters are all '0'.
// Difficulty 0 accepts the current hash without touching the nonce.
//
// The search has no upper bound on attempts; the context is polled
// between attempts so a caller can abort a search that is not going to
// finish. progress, when non-nil, is invoked periodically with the
// attempt count and has no effect on the resulting hash.
func (b *Block) Seal(ctx context.Context, difficulty int, progress ProgressFunc) error {
	target := strings.Repeat("0", difficulty)
	start := time.Now()

	var attempts uint64
	for !strings.HasPrefix(b.Hash, target) {
		if attempts%checkCancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if progress != nil && attempts > 0 {
				progress(attempts)
			}
		}
		b.Nonce++
		b.Hash = b.ComputeHash()
		attempts++
	}

	slog.Debug("Block sealed",
		"hash", b.Hash,
		"nonce", b.Nonce,
		"attempts", attempts,
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

package chain

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// BlockReward is the fixed amount credited to a miner for sealing a
// block. There is no fee market; the reward is unconditional.
const BlockReward = 1

// DefaultDifficulty is the number of leading zero hex characters a
// sealed block hash must carry unless the caller chooses otherwise.
const DefaultDifficulty = 2

// Ledger owns the block chain and the pool of pending transactions.
// The chain is append-only and always starts with the genesis block.
//
// All methods are safe for concurrent use. Mining is exclusive: a second
// MinePendingTransactions call blocks until the first completes.
// Transactions submitted while a seal is in progress are deferred to the
// next block rather than racing into the one under construction.
type Ledger struct {
	mu         sync.Mutex
	chain      []*Block
	pending    []Transaction
	difficulty int

	// mineMu is held for the whole duration of a mine, including the
	// blocking seal, while mu stays free for pool submissions.
	mineMu sync.Mutex
}

// NewLedger returns a ledger containing only the genesis block, with an
// empty pending pool.
func NewLedger(difficulty int) *Ledger {
	return &Ledger{
		chain:      []*Block{NewGenesisBlock()},
		difficulty: difficulty,
	}
}

// Difficulty returns the proof-of-work difficulty blocks are sealed at.
func (l *Ledger) Difficulty() int { return l.difficulty }

// AddTransaction appends tx to the pending pool. No balance, duplicate
// or signature checks are performed at this layer.
func (l *Ledger) AddTransaction(tx Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, tx)
}

// PendingTransactions returns a copy of the pending pool in submission
// order.
func (l *Ledger) PendingTransactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.pending)
}

// Blocks returns the chain in order, genesis first.
func (l *Ledger) Blocks() []*Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.chain)
}

// Height returns the number of blocks in the chain, genesis included.
func (l *Ledger) Height() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.chain)
}

// TransactionCount returns the number of transactions sealed into the
// chain.
func (l *Ledger) TransactionCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int
	for _, b := range l.chain {
		n += len(b.Transactions)
	}
	return n
}

// LastBlock returns the most recent block. The chain always contains at
// least the genesis block, so this never fails.
func (l *Ledger) LastBlock() *Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chain[len(l.chain)-1]
}

// AddBlock appends an already-constructed block without checking linkage
// or proof-of-work. Callers wanting integrity mine through
// MinePendingTransactions or run Validate afterwards.
func (l *Ledger) AddBlock(b *Block) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.chain = append(l.chain, b)
}

// MinePendingTransactions snapshots the pending pool, seals a new block
// over it at the ledger difficulty and appends the block to the chain.
// The snapshotted transactions are then replaced in the pool by a single
// reward transaction for minerAddress; transactions submitted while the
// seal was running stay queued for the next block.
//
// Sealing blocks the calling goroutine until a qualifying nonce is found
// or ctx is cancelled. On cancellation the ledger is left unchanged.
func (l *Ledger) MinePendingTransactions(ctx context.Context, minerAddress string, progress ProgressFunc) (*Block, error) {
	l.mineMu.Lock()
	defer l.mineMu.Unlock()

	l.mu.Lock()
	snapshot := slices.Clone(l.pending)
	previousHash := l.chain[len(l.chain)-1].Hash
	l.mu.Unlock()

	block := NewBlock(previousHash, snapshot, time.Now().Unix())

	start := time.Now()
	if err := block.Seal(ctx, l.difficulty, progress); err != nil {
		return nil, err
	}
	slog.Info("Block mined",
		"hash", block.Hash,
		"nonce", block.Nonce,
		"transactions", len(block.Transactions),
		"duration", time.Since(start).Round(time.Millisecond))

	l.mu.Lock()
	l.chain = append(l.chain, block)
	deferred := l.pending[len(snapshot):]
	l.pending = append([]Transaction{NewRewardTransaction(minerAddress)}, deferred...)
	l.mu.Unlock()

	return block, nil
}

// Balance scans every block in chain order and returns the net amount
// for address: debits where it is the sender, credits where it is the
// receiver. Coinbase transfers have no sender and never debit anyone.
// Unknown addresses yield 0.
func (l *Ledger) Balance(address string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var balance int64
	for _, block := range l.chain {
		for _, tx := range block.Transactions {
			if !tx.IsCoinbase() && tx.Sender == address {
				balance -= tx.Amount
			}
			if tx.Receiver == address {
				balance += tx.Amount
			}
		}
	}
	return balance
}

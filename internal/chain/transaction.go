package chain

import "strconv"

// Transaction is an immutable record of a value transfer between two
// addresses. An empty Sender marks a coinbase transfer, i.e. value minted
// by the ledger itself as a mining reward.
type Transaction struct {
	Sender   string `json:"sender,omitempty"`
	Receiver string `json:"receiver"`
	Amount   int64  `json:"amount"`
}

// NewRewardTransaction returns the fixed block reward credited to the
// miner of a freshly sealed block.
func NewRewardTransaction(minerAddress string) Transaction {
	return Transaction{Receiver: minerAddress, Amount: BlockReward}
}

// IsCoinbase reports whether the transaction has no sender.
func (t Transaction) IsCoinbase() bool { return t.Sender == "" }

// appendRepr appends the canonical field-dictionary form of the
// transaction, e.g. {'sender': 'A', 'receiver': 'B', 'amount': 100}.
// Field order is fixed and a coinbase sender serializes as None. Block
// hashes are computed over this exact byte sequence, so it must not
// change across versions.
func (t Transaction) appendRepr(b []byte) []byte {
	b = append(b, "{'sender': "...)
	if t.IsCoinbase() {
		b = append(b, "None"...)
	} else {
		b = appendQuoted(b, t.Sender)
	}
	b = append(b, ", 'receiver': "...)
	b = appendQuoted(b, t.Receiver)
	b = append(b, ", 'amount': "...)
	b = strconv.AppendInt(b, t.Amount, 10)
	return append(b, '}')
}

// appendQuoted single-quotes s without escaping. The canonical form
// assumes quote-free identifiers; addresses containing a quote character
// would hash differently from an implementation that escapes them.
func appendQuoted(b []byte, s string) []byte {
	b = append(b, '\'')
	b = append(b, s...)
	return append(b, '\'')
}

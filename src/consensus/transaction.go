package consensus

import (
	"fmt"
	"sort"
)

// Transaction is the unit of gossip. Only its identifier matters.
type Transaction struct {
	ID int
}

func (t Transaction) String() string {
	return fmt.Sprintf("Tx(%d)", t.ID)
}

// Candidate is a transaction proposed by a followee.
type Candidate struct {
	Sender int
	Tx     Transaction
}

// TxSet is a set of transactions.
type TxSet map[Transaction]struct{}

// NewTxSet ...
func NewTxSet(txs ...Transaction) TxSet {
	s := make(TxSet, len(txs))
	for _, tx := range txs {
		s.Add(tx)
	}
	return s
}

// Add inserts tx. It is a no-op if tx is already present.
func (s TxSet) Add(tx Transaction) {
	s[tx] = struct{}{}
}

// AddAll inserts every transaction of other.
func (s TxSet) AddAll(other TxSet) {
	for tx := range other {
		s[tx] = struct{}{}
	}
}

// Contains ...
func (s TxSet) Contains(tx Transaction) bool {
	_, ok := s[tx]
	return ok
}

// Len ...
func (s TxSet) Len() int {
	return len(s)
}

// Copy returns an independent copy of the set. The copy of a nil set is empty.
func (s TxSet) Copy() TxSet {
	res := make(TxSet, len(s))
	res.AddAll(s)
	return res
}

// Equal returns true if both sets hold the same transactions.
func (s TxSet) Equal(other TxSet) bool {
	if len(s) != len(other) {
		return false
	}
	for tx := range s {
		if !other.Contains(tx) {
			return false
		}
	}
	return true
}

// Sorted returns the transactions in ascending ID order.
func (s TxSet) Sorted() []Transaction {
	res := make([]Transaction, 0, len(s))
	for tx := range s {
		res = append(res, tx)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})
	return res
}

package consensus

import (
	"math/rand"
)

// MaliciousNode never broadcasts anything. Its followers deactivate it after
// the first round.
type MaliciousNode struct{}

// NewMaliciousNode ...
func NewMaliciousNode() *MaliciousNode {
	return &MaliciousNode{}
}

// SetFollowees implements the Node interface.
func (m *MaliciousNode) SetFollowees(followees []bool) {}

// SetPendingTransactions implements the Node interface.
func (m *MaliciousNode) SetPendingTransactions(pending TxSet) {}

// SendToFollowers implements the Node interface.
func (m *MaliciousNode) SendToFollowers() TxSet {
	return NewTxSet()
}

// ReceiveFromFollowees implements the Node interface.
func (m *MaliciousNode) ReceiveFromFollowees(candidates []Candidate) {}

// ByzantineNode broadcasts a different random selection of transaction ids
// every round, mixing the ones it was given with made up ones.
type ByzantineNode struct {
	rnd     *rand.Rand
	maxID   int
	pending TxSet
}

// NewByzantineNode returns a node drawing its made up transaction ids in
// [0, maxID) from rnd.
func NewByzantineNode(rnd *rand.Rand, maxID int) *ByzantineNode {
	return &ByzantineNode{
		rnd:     rnd,
		maxID:   maxID,
		pending: NewTxSet(),
	}
}

// SetFollowees implements the Node interface.
func (b *ByzantineNode) SetFollowees(followees []bool) {}

// SetPendingTransactions implements the Node interface.
func (b *ByzantineNode) SetPendingTransactions(pending TxSet) {
	b.pending = pending.Copy()
}

// SendToFollowers implements the Node interface.
func (b *ByzantineNode) SendToFollowers() TxSet {
	res := NewTxSet()
	for tx := range b.pending {
		if b.rnd.Intn(2) == 0 {
			res.Add(tx)
		}
	}
	if b.maxID > 0 {
		for i := b.rnd.Intn(4); i > 0; i-- {
			res.Add(Transaction{ID: b.rnd.Intn(b.maxID)})
		}
	}
	return res
}

// ReceiveFromFollowees implements the Node interface.
func (b *ByzantineNode) ReceiveFromFollowees(candidates []Candidate) {
	for _, c := range candidates {
		b.pending.Add(c.Tx)
	}
}

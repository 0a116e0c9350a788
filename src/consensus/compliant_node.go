package consensus

import (
	"github.com/sirupsen/logrus"
)

// CompliantNode is a node that follows the gossip rules.
type CompliantNode struct {
	conf *Config

	round     int
	followees []bool
	pending   TxSet
	consensus TxSet

	logger *logrus.Entry
}

// NewCompliantNode ...
func NewCompliantNode(conf *Config) *CompliantNode {
	if conf == nil {
		conf = DefaultConfig()
	}

	logger := conf.Logger
	if logger == nil {
		logger = DefaultConfig().Logger
	}

	return &CompliantNode{
		conf:      conf,
		pending:   NewTxSet(),
		consensus: NewTxSet(),
		logger:    logger,
	}
}

// SetFollowees implements the Node interface. The vector is copied; its length
// fixes the range of valid sender ids.
func (n *CompliantNode) SetFollowees(followees []bool) {
	n.followees = append([]bool(nil), followees...)
}

// SetPendingTransactions implements the Node interface.
func (n *CompliantNode) SetPendingTransactions(pending TxSet) {
	n.pending = pending.Copy()
}

// SendToFollowers implements the Node interface. On the last round it returns
// the consensus set and changes nothing. Otherwise it moves the pending
// transactions to the consensus set, returns them, and advances the round.
func (n *CompliantNode) SendToFollowers() TxSet {
	if n.round == n.conf.NumRounds-1 {
		n.logger.WithFields(logrus.Fields{
			"round":     n.round,
			"consensus": n.consensus.Len(),
		}).Debug("Report consensus")
		return n.consensus.Copy()
	}

	n.round++

	payload := n.pending.Copy()
	n.consensus.AddAll(n.pending)
	n.pending = NewTxSet()

	n.logger.WithFields(logrus.Fields{
		"round":     n.round,
		"sent":      payload.Len(),
		"consensus": n.consensus.Len(),
	}).Debug("SendToFollowers")

	return payload
}

// ReceiveFromFollowees implements the Node interface. Followees that sent no
// candidate are deactivated for good, then the transactions proposed by the
// remaining active followees, and not yet in the consensus set, become
// pending.
func (n *CompliantNode) ReceiveFromFollowees(candidates []Candidate) {
	senders := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		senders[c.Sender] = true
	}

	deactivated := 0
	for i, active := range n.followees {
		if active && !senders[i] {
			n.followees[i] = false
			deactivated++
		}
	}

	added := 0
	for _, c := range candidates {
		if !n.isActive(c.Sender) {
			continue
		}
		if n.consensus.Contains(c.Tx) || n.pending.Contains(c.Tx) {
			continue
		}
		n.pending.Add(c.Tx)
		added++
	}

	n.logger.WithFields(logrus.Fields{
		"round":       n.round,
		"candidates":  len(candidates),
		"deactivated": deactivated,
		"added":       added,
	}).Debug("ReceiveFromFollowees")
}

func (n *CompliantNode) isActive(id int) bool {
	return id >= 0 && id < len(n.followees) && n.followees[id]
}

// Round returns the number of rounds in which the node has broadcast.
func (n *CompliantNode) Round() int {
	return n.round
}

// Consensus returns a copy of the transactions accepted so far.
func (n *CompliantNode) Consensus() TxSet {
	return n.consensus.Copy()
}

// Pending returns a copy of the transactions to broadcast next round.
func (n *CompliantNode) Pending() TxSet {
	return n.pending.Copy()
}

// Followees returns a copy of the current followee vector.
func (n *CompliantNode) Followees() []bool {
	return append([]bool(nil), n.followees...)
}

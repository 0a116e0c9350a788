package consensus

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func txs(ids ...int) TxSet {
	s := NewTxSet()
	for _, id := range ids {
		s.Add(Transaction{ID: id})
	}
	return s
}

func newTestNode(t *testing.T, numRounds int, followees []bool, pending TxSet) *CompliantNode {
	n := NewCompliantNode(TestConfig(t, numRounds))
	n.SetFollowees(followees)
	n.SetPendingTransactions(pending)
	return n
}

func TestTxSet(t *testing.T) {
	s := txs(3, 1, 2)
	s.Add(Transaction{ID: 1})

	require.Equal(t, 3, s.Len())
	require.True(t, s.Contains(Transaction{ID: 2}))
	require.False(t, s.Contains(Transaction{ID: 4}))
	require.Equal(t, []Transaction{{ID: 1}, {ID: 2}, {ID: 3}}, s.Sorted())

	c := s.Copy()
	c.Add(Transaction{ID: 4})
	require.False(t, s.Contains(Transaction{ID: 4}))
	require.False(t, s.Equal(c))
	require.True(t, s.Equal(txs(1, 2, 3)))

	var empty TxSet
	require.Equal(t, 0, empty.Copy().Len())
}

func TestSendToFollowersMovesPending(t *testing.T) {
	n := newTestNode(t, 5, []bool{false, true}, txs(1, 2))

	sent := n.SendToFollowers()
	require.True(t, sent.Equal(txs(1, 2)))
	require.Equal(t, 1, n.Round())
	require.True(t, n.Consensus().Equal(txs(1, 2)))
	require.Equal(t, 0, n.Pending().Len())

	// nothing new to broadcast
	sent = n.SendToFollowers()
	require.Equal(t, 0, sent.Len())
	require.Equal(t, 2, n.Round())
}

func TestFinalRoundReportsConsensus(t *testing.T) {
	const rounds = 4
	n := newTestNode(t, rounds, []bool{false, true}, txs(1))

	for r := 0; r < rounds-1; r++ {
		n.SendToFollowers()
		n.ReceiveFromFollowees([]Candidate{{Sender: 1, Tx: Transaction{ID: 10 + r}}})
	}
	require.Equal(t, rounds-1, n.Round())

	// the last delivery is still pending
	require.True(t, n.Pending().Equal(txs(12)))

	report := n.SendToFollowers()
	require.True(t, report.Equal(txs(1, 10, 11)))
	require.Equal(t, rounds-1, n.Round())
	require.True(t, n.Pending().Equal(txs(12)))

	// reporting again changes nothing
	report.Add(Transaction{ID: 99})
	require.True(t, n.SendToFollowers().Equal(txs(1, 10, 11)))
	require.True(t, n.Consensus().Equal(txs(1, 10, 11)))
}

func TestSilentFolloweeIsDeactivated(t *testing.T) {
	followees := make([]bool, 6)
	followees[3] = true
	followees[5] = true
	n := newTestNode(t, 10, followees, txs())

	// round 1: 3 says nothing
	n.SendToFollowers()
	n.ReceiveFromFollowees([]Candidate{{Sender: 5, Tx: Transaction{ID: 1}}})

	f := n.Followees()
	require.False(t, f[3])
	require.True(t, f[5])
	require.True(t, n.Pending().Equal(txs(1)))

	// round 2: 3 is ignored, 5 is heard
	n.SendToFollowers()
	n.ReceiveFromFollowees([]Candidate{
		{Sender: 3, Tx: Transaction{ID: 7}},
		{Sender: 5, Tx: Transaction{ID: 8}},
	})

	require.True(t, n.Pending().Equal(txs(8)))
	require.True(t, n.Consensus().Equal(txs(1)))

	// 3 is never reactivated
	n.SendToFollowers()
	n.ReceiveFromFollowees([]Candidate{{Sender: 3, Tx: Transaction{ID: 9}}})
	require.False(t, n.Followees()[3])
	require.False(t, n.Pending().Contains(Transaction{ID: 9}))
}

func TestCandidatesAlreadyInConsensusAreIgnored(t *testing.T) {
	n := newTestNode(t, 10, []bool{true}, txs(1))

	n.SendToFollowers()
	n.ReceiveFromFollowees([]Candidate{
		{Sender: 0, Tx: Transaction{ID: 1}},
		{Sender: 0, Tx: Transaction{ID: 2}},
		{Sender: 0, Tx: Transaction{ID: 2}},
	})
	require.True(t, n.Pending().Equal(txs(2)))
}

func TestUnknownSendersAreIgnored(t *testing.T) {
	n := newTestNode(t, 10, []bool{true, false}, txs())

	n.SendToFollowers()
	n.ReceiveFromFollowees([]Candidate{
		{Sender: 0, Tx: Transaction{ID: 1}},
		{Sender: 1, Tx: Transaction{ID: 2}},
		{Sender: 7, Tx: Transaction{ID: 3}},
		{Sender: -1, Tx: Transaction{ID: 4}},
	})
	require.True(t, n.Pending().Equal(txs(1)))
}

func TestEmptyInputs(t *testing.T) {
	n := NewCompliantNode(TestConfig(t, 3))

	n.ReceiveFromFollowees(nil)
	require.Equal(t, 0, n.SendToFollowers().Len())
	n.ReceiveFromFollowees([]Candidate{})
	require.Equal(t, 0, n.Consensus().Len())
	require.Equal(t, 1, n.Round())
}

func TestFolloweesAreCopied(t *testing.T) {
	followees := []bool{true, true}
	pending := txs(1)
	n := newTestNode(t, 10, followees, pending)

	followees[0] = false
	pending.Add(Transaction{ID: 2})

	require.Equal(t, []bool{true, true}, n.Followees())
	require.True(t, n.Pending().Equal(txs(1)))
}

func TestMaliciousNodes(t *testing.T) {
	m := NewMaliciousNode()
	m.SetPendingTransactions(txs(1, 2))
	require.Equal(t, 0, m.SendToFollowers().Len())

	b := NewByzantineNode(rand.New(rand.NewSource(1)), 100)
	b.SetPendingTransactions(txs(1, 2))
	b.ReceiveFromFollowees([]Candidate{{Sender: 0, Tx: Transaction{ID: 3}}})
	for i := 0; i < 10; i++ {
		for tx := range b.SendToFollowers() {
			require.True(t, tx.ID >= 0 && tx.ID < 100)
		}
	}

	var _ Node = m
	var _ Node = b
	var _ Node = NewCompliantNode(nil)
}

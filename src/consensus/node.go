package consensus

// Node is a participant in the gossip rounds. Peers are identified by their
// index in the followee vector.
type Node interface {
	// SetFollowees is called once with followees[i] set if this node listens
	// to peer i.
	SetFollowees(followees []bool)
	// SetPendingTransactions is called once with the initial transactions of
	// the node.
	SetPendingTransactions(pending TxSet)
	// SendToFollowers returns the transactions to broadcast this round.
	SendToFollowers() TxSet
	// ReceiveFromFollowees delivers the candidates gossiped this round.
	ReceiveFromFollowees(candidates []Candidate)
}

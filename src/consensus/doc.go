// Package consensus implements a round-driven gossip agent that converges on a
// common set of transactions among peers that follow each other.
//
// Each round, a node broadcasts the transactions it has not broadcast yet to
// its followers and receives candidates from its followees. A followee that
// stays silent for a whole round is considered faulty and is never listened to
// again. On the last round, a node reports the set of transactions it has
// accumulated instead of broadcasting.
//
// The agent is not safe for concurrent use: the caller alternates
// SendToFollowers and ReceiveFromFollowees once per round.
package consensus

// Package simulation runs the gossip rounds of a network of consensus nodes
// over a random follow graph.
package simulation

import (
	"math/rand"
	"sort"

	"github.com/mosaicnetworks/utxochain/src/consensus"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of a simulation.
type Result struct {
	// Compliant and Malicious are the ids of each kind of node.
	Compliant []int
	Malicious []int
	// Transactions are the valid transactions that were handed out.
	Transactions consensus.TxSet
	// Consensus is the set reported by each compliant node after the last
	// round.
	Consensus map[int]consensus.TxSet
}

// Agree returns true if every compliant node reported the same set.
func (r *Result) Agree() bool {
	var first consensus.TxSet
	for _, id := range r.Compliant {
		set := r.Consensus[id]
		if first == nil {
			first = set
			continue
		}
		if !first.Equal(set) {
			return false
		}
	}
	return true
}

// Largest returns the size of the biggest reported set.
func (r *Result) Largest() int {
	max := 0
	for _, set := range r.Consensus {
		if set.Len() > max {
			max = set.Len()
		}
	}
	return max
}

// Run builds a network from conf and plays every round.
func Run(conf *Config) (*Result, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	logger := conf.Logger
	if logger == nil {
		logger = DefaultConfig().Logger
	}

	rnd := rand.New(rand.NewSource(conf.Seed))

	nodeConf := consensus.NewConfig(
		conf.PGraph,
		conf.PMalicious,
		conf.PTxDistribution,
		conf.NumRounds,
		nil,
	)

	res := &Result{
		Consensus: make(map[int]consensus.TxSet),
	}

	nodes := make([]consensus.Node, conf.NumNodes)
	for i := range nodes {
		switch {
		case rnd.Float64() >= conf.PMalicious:
			c := *nodeConf
			c.Logger = logger.WithField("node", i)
			nodes[i] = consensus.NewCompliantNode(&c)
			res.Compliant = append(res.Compliant, i)
		case rnd.Intn(2) == 0:
			nodes[i] = consensus.NewMaliciousNode()
			res.Malicious = append(res.Malicious, i)
		default:
			nodes[i] = consensus.NewByzantineNode(rand.New(rand.NewSource(rnd.Int63())), 2*conf.NumTx+1)
			res.Malicious = append(res.Malicious, i)
		}
	}

	// followees[i][j] is set if i follows j
	followees := make([][]bool, conf.NumNodes)
	for i := range followees {
		followees[i] = make([]bool, conf.NumNodes)
		for j := range followees[i] {
			if i != j && rnd.Float64() < conf.PGraph {
				followees[i][j] = true
			}
		}
		nodes[i].SetFollowees(followees[i])
	}

	res.Transactions = consensus.NewTxSet()
	for res.Transactions.Len() < conf.NumTx {
		res.Transactions.Add(consensus.Transaction{ID: rnd.Intn(2*conf.NumTx + 1)})
	}

	valid := res.Transactions.Sorted()
	for i := range nodes {
		pending := consensus.NewTxSet()
		for _, tx := range valid {
			if rnd.Float64() < conf.PTxDistribution {
				pending.Add(tx)
			}
		}
		nodes[i].SetPendingTransactions(pending)
	}

	logger.WithFields(logrus.Fields{
		"nodes":     conf.NumNodes,
		"malicious": len(res.Malicious),
		"txs":       conf.NumTx,
		"rounds":    conf.NumRounds,
	}).Info("Start simulation")

	for round := 0; round < conf.NumRounds; round++ {
		candidates := make([][]consensus.Candidate, conf.NumNodes)
		for j, node := range nodes {
			proposals := node.SendToFollowers().Sorted()
			for i := range nodes {
				if !followees[i][j] {
					continue
				}
				for _, tx := range proposals {
					candidates[i] = append(candidates[i], consensus.Candidate{Sender: j, Tx: tx})
				}
			}
		}
		for i, node := range nodes {
			node.ReceiveFromFollowees(candidates[i])
		}
		logger.WithField("round", round).Debug("Round done")
	}

	for _, id := range res.Compliant {
		res.Consensus[id] = nodes[id].SendToFollowers()
	}

	sort.Ints(res.Compliant)

	logger.WithFields(logrus.Fields{
		"agree":   res.Agree(),
		"largest": res.Largest(),
	}).Info("End simulation")

	return res, nil
}

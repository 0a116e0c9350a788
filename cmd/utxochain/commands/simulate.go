package commands

import (
	"fmt"

	"github.com/mosaicnetworks/utxochain/src/simulation"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewSimulateCmd returns the command that runs the gossip rounds over a random
// network of consensus nodes
func NewSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "simulate",
		Short:   "Simulate gossip consensus",
		PreRunE: loadSimulateConfig,
		RunE:    runSimulate,
	}
	AddSimulateFlags(cmd)
	return cmd
}

//AddSimulateFlags adds flags to the Simulate command
func AddSimulateFlags(cmd *cobra.Command) {
	cmd.Flags().Int("nodes", _config.NumNodes, "Number of nodes")
	cmd.Flags().Int("txs", _config.NumTx, "Number of valid transactions")
	cmd.Flags().Int("rounds", _config.NumRounds, "Number of gossip rounds")
	cmd.Flags().Float64("p-graph", _config.PGraph, "Probability that a node follows another")
	cmd.Flags().Float64("p-malicious", _config.PMalicious, "Fraction of malicious nodes")
	cmd.Flags().Float64("p-tx-distribution", _config.PTxDistribution, "Probability that a node is initially given a transaction")
	cmd.Flags().Int64("seed", _config.Seed, "Random seed")
}

func loadSimulateConfig(cmd *cobra.Command, args []string) error {
	if err := bindFlagsLoadViper(cmd); err != nil {
		return err
	}

	logConfig("SIMULATE", logrus.Fields{
		"NumNodes":        _config.NumNodes,
		"NumTx":           _config.NumTx,
		"NumRounds":       _config.NumRounds,
		"PGraph":          _config.PGraph,
		"PMalicious":      _config.PMalicious,
		"PTxDistribution": _config.PTxDistribution,
		"Seed":            _config.Seed,
	})

	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	res, err := simulation.Run(_config.SimulationConfig())
	if err != nil {
		return err
	}

	fmt.Printf("Compliant nodes: %d, malicious nodes: %d\n", len(res.Compliant), len(res.Malicious))
	for _, id := range res.Compliant {
		fmt.Printf("Node %d: %d transactions\n", id, res.Consensus[id].Len())
	}
	fmt.Printf("Agreement: %v\n", res.Agree())

	return nil
}

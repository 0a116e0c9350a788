package consensus

import (
	"testing"

	"github.com/mosaicnetworks/utxochain/src/common"
	"github.com/sirupsen/logrus"
)

// Config holds the parameters a node is created with. The probabilities are
// only used by whoever builds the network around the nodes; a CompliantNode
// does not look at them.
type Config struct {
	// PGraph is the probability that a node follows any given peer.
	PGraph float64 `mapstructure:"p-graph"`
	// PMalicious is the fraction of malicious nodes.
	PMalicious float64 `mapstructure:"p-malicious"`
	// PTxDistribution is the probability that a transaction is initially
	// given to any given node.
	PTxDistribution float64 `mapstructure:"p-tx-distribution"`
	// NumRounds is the number of gossip rounds. The last one only reports.
	NumRounds int `mapstructure:"rounds"`

	Logger *logrus.Entry
}

// NewConfig ...
func NewConfig(pGraph, pMalicious, pTxDistribution float64, numRounds int, logger *logrus.Entry) *Config {
	return &Config{
		PGraph:          pGraph,
		PMalicious:      pMalicious,
		PTxDistribution: pTxDistribution,
		NumRounds:       numRounds,
		Logger:          logger,
	}
}

// DefaultConfig ...
func DefaultConfig() *Config {
	logger := logrus.New()
	logger.Level = logrus.InfoLevel

	return &Config{
		PGraph:          0.1,
		PMalicious:      0.15,
		PTxDistribution: 0.01,
		NumRounds:       10,
		Logger:          logger.WithField("prefix", "consensus"),
	}
}

// TestConfig returns a configuration for numRounds with a logger writing to t.
func TestConfig(t testing.TB, numRounds int) *Config {
	config := DefaultConfig()
	config.NumRounds = numRounds
	config.Logger = common.NewTestEntry(t, "consensus")
	return config
}

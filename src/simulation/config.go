package simulation

import (
	"fmt"
	"testing"

	"github.com/mosaicnetworks/utxochain/src/common"
	"github.com/sirupsen/logrus"
)

// Config describes a simulated network.
type Config struct {
	NumNodes        int
	NumTx           int
	NumRounds       int
	PGraph          float64
	PMalicious      float64
	PTxDistribution float64
	// Seed makes runs reproducible.
	Seed int64

	Logger *logrus.Entry
}

// DefaultConfig ...
func DefaultConfig() *Config {
	logger := logrus.New()
	logger.Level = logrus.InfoLevel

	return &Config{
		NumNodes:        100,
		NumTx:           500,
		NumRounds:       10,
		PGraph:          0.1,
		PMalicious:      0.15,
		PTxDistribution: 0.01,
		Seed:            1,
		Logger:          logger.WithField("prefix", "simulation"),
	}
}

// TestConfig returns the default configuration with a logger writing to t.
func TestConfig(t testing.TB) *Config {
	config := DefaultConfig()
	config.Logger = common.NewTestEntry(t, "simulation")
	return config
}

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %v", name, p)
	}
	return nil
}

// Validate returns an error if a parameter is out of range.
func (c *Config) Validate() error {
	if c.NumNodes <= 0 {
		return fmt.Errorf("number of nodes must be positive, got %d", c.NumNodes)
	}
	if c.NumTx < 0 {
		return fmt.Errorf("number of transactions must not be negative, got %d", c.NumTx)
	}
	if c.NumRounds <= 0 {
		return fmt.Errorf("number of rounds must be positive, got %d", c.NumRounds)
	}
	if err := checkProbability("p-graph", c.PGraph); err != nil {
		return err
	}
	if err := checkProbability("p-malicious", c.PMalicious); err != nil {
		return err
	}
	return checkProbability("p-tx-distribution", c.PTxDistribution)
}

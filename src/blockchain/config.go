package blockchain

import (
	"testing"

	"github.com/mosaicnetworks/utxochain/src/common"
	"github.com/sirupsen/logrus"
)

// DefaultCutoffAge is the number of blocks below the tip at which a branch can
// no longer be extended.
const DefaultCutoffAge = 10

// Config ...
type Config struct {
	// CutoffAge: a block is rejected if its height is at or below the current
	// maximum height minus CutoffAge.
	CutoffAge int `mapstructure:"cutoff-age"`
	// Store archives accepted blocks. Defaults to an InmemStore.
	Store Store
	// Logger defaults to a logrus Logger at info level.
	Logger *logrus.Entry
}

// NewConfig ...
func NewConfig(cutoffAge int, store Store, logger *logrus.Entry) *Config {
	return &Config{
		CutoffAge: cutoffAge,
		Store:     store,
		Logger:    logger,
	}
}

// DefaultConfig ...
func DefaultConfig() *Config {
	logger := logrus.New()
	logger.Level = logrus.InfoLevel

	return &Config{
		CutoffAge: DefaultCutoffAge,
		Store:     NewInmemStore(),
		Logger:    logger.WithField("prefix", "blockchain"),
	}
}

// TestConfig returns the default configuration with a logger writing to t.
func TestConfig(t testing.TB) *Config {
	config := DefaultConfig()
	config.Logger = common.NewTestEntry(t, "blockchain")
	return config
}

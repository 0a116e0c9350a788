package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mosaicnetworks/utxochain/src/blockchain"
	"github.com/mosaicnetworks/utxochain/src/common"
	"github.com/mosaicnetworks/utxochain/src/simulation"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultKeyfile is the default name of the file containing the miner's
	// private key
	DefaultKeyfile = "priv_key"

	// DefaultBadgerFile is the default name of the folder containing the Badger
	// database
	DefaultBadgerFile = "badger_db"
)

// Default configuration values.
const (
	DefaultLogLevel        = "info"
	DefaultLogFile         = ""
	DefaultCutoffAge       = blockchain.DefaultCutoffAge
	DefaultStore           = false
	DefaultBlocks          = 20
	DefaultCoinbaseValue   = 25
	DefaultNumNodes        = 100
	DefaultNumTx           = 500
	DefaultNumRounds       = 10
	DefaultPGraph          = 0.1
	DefaultPMalicious      = 0.15
	DefaultPTxDistribution = 0.01
	DefaultSeed            = 1
)

// Config contains all the configuration properties of the utxochain tool.
type Config struct {
	// DataDir is the top-level directory containing configuration and data
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, if set, also receives every log entry at or above LogLevel.
	LogFile string `mapstructure:"log-file"`

	// CutoffAge is the number of blocks below the tip at which a branch can
	// no longer be extended.
	CutoffAge int `mapstructure:"cutoff-age"`

	// Store archives accepted blocks in a badger database instead of memory.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing database files.
	DatabaseDir string `mapstructure:"db"`

	// Blocks is the number of blocks mined by the mine command.
	Blocks int `mapstructure:"blocks"`

	// CoinbaseValue is the value of the coinbase output of every block.
	CoinbaseValue float64 `mapstructure:"coinbase"`

	// NumNodes is the number of nodes in a simulated network.
	NumNodes int `mapstructure:"nodes"`

	// NumTx is the number of valid transactions handed out to the nodes.
	NumTx int `mapstructure:"txs"`

	// NumRounds is the number of gossip rounds.
	NumRounds int `mapstructure:"rounds"`

	// PGraph is the probability that a node follows any given peer.
	PGraph float64 `mapstructure:"p-graph"`

	// PMalicious is the fraction of malicious nodes.
	PMalicious float64 `mapstructure:"p-malicious"`

	// PTxDistribution is the probability that a transaction is initially
	// given to any given node.
	PTxDistribution float64 `mapstructure:"p-tx-distribution"`

	// Seed feeds every random choice, so that runs are reproducible.
	Seed int64 `mapstructure:"seed"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:         DefaultDataDir(),
		LogLevel:        DefaultLogLevel,
		LogFile:         DefaultLogFile,
		CutoffAge:       DefaultCutoffAge,
		Store:           DefaultStore,
		DatabaseDir:     DefaultDatabaseDir(),
		Blocks:          DefaultBlocks,
		CoinbaseValue:   DefaultCoinbaseValue,
		NumNodes:        DefaultNumNodes,
		NumTx:           DefaultNumTx,
		NumRounds:       DefaultNumRounds,
		PGraph:          DefaultPGraph,
		PMalicious:      DefaultPMalicious,
		PTxDistribution: DefaultPTxDistribution,
		Seed:            DefaultSeed,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// SetDataDir sets the top-level directory, and updates the database directory
// if it is currently set to the default value. If the database directory is
// not currently the default, it means the user has explicitely set it to
// something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// Keyfile returns the full path of the file containing the private key.
func (c *Config) Keyfile() string {
	return filepath.Join(c.DataDir, DefaultKeyfile)
}

// Logger returns a formatted logrus Entry, with prefix set to "utxochain".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
		if c.LogFile != "" {
			c.logger.Hooks.Add(lfshook.NewHook(
				c.LogFile,
				&logrus.JSONFormatter{},
			))
		}
	}
	return c.logger.WithField("prefix", "utxochain")
}

// BlockChainConfig returns the configuration of a BlockChain archiving its
// blocks in store. A nil store means in-memory.
func (c *Config) BlockChainConfig(store blockchain.Store) *blockchain.Config {
	if store == nil {
		store = blockchain.NewInmemStore()
	}
	return blockchain.NewConfig(
		c.CutoffAge,
		store,
		c.Logger().WithField("prefix", "blockchain"),
	)
}

// SimulationConfig returns the configuration of a gossip simulation.
func (c *Config) SimulationConfig() *simulation.Config {
	return &simulation.Config{
		NumNodes:        c.NumNodes,
		NumTx:           c.NumTx,
		NumRounds:       c.NumRounds,
		PGraph:          c.PGraph,
		PMalicious:      c.PMalicious,
		PTxDistribution: c.PTxDistribution,
		Seed:            c.Seed,
		Logger:          c.Logger().WithField("prefix", "simulation"),
	}
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level config based
// on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".UTXOChain")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "UTXOChain")
		} else {
			return filepath.Join(home, ".utxochain")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}

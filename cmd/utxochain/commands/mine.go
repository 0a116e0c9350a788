package commands

import (
	"crypto/ecdsa"
	"fmt"
	"math/rand"
	"os"

	"github.com/mosaicnetworks/utxochain/src/blockchain"
	cm "github.com/mosaicnetworks/utxochain/src/common"
	"github.com/mosaicnetworks/utxochain/src/crypto/keys"
	"github.com/mosaicnetworks/utxochain/src/ledger"
	"github.com/mosaicnetworks/utxochain/src/miner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// forkInterval is the number of blocks between two forks created by a rival
// miner.
const forkInterval = 5

// NewMineCmd returns the command that mines a chain of blocks, with payments
// between a few wallets and a rival miner creating forks
func NewMineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mine",
		Short:   "Mine a local chain",
		PreRunE: loadMineConfig,
		RunE:    runMine,
	}
	AddMineFlags(cmd)
	return cmd
}

//AddMineFlags adds flags to the Mine command
func AddMineFlags(cmd *cobra.Command) {
	cmd.Flags().Int("blocks", _config.Blocks, "Number of blocks to mine")
	cmd.Flags().Float64("coinbase", _config.CoinbaseValue, "Coinbase value of every block")
	cmd.Flags().Int("cutoff-age", _config.CutoffAge, "Depth below the tip at which blocks are rejected")
	cmd.Flags().Bool("store", _config.Store, "Archive blocks in badgerDB instead of memory")
	cmd.Flags().String("db", _config.DatabaseDir, "Database directory")
	cmd.Flags().Int64("seed", _config.Seed, "Random seed")
}

func loadMineConfig(cmd *cobra.Command, args []string) error {
	if err := bindFlagsLoadViper(cmd); err != nil {
		return err
	}

	fields := logrus.Fields{
		"Blocks":        _config.Blocks,
		"CoinbaseValue": _config.CoinbaseValue,
		"CutoffAge":     _config.CutoffAge,
		"Store":         _config.Store,
		"Seed":          _config.Seed,
	}
	if _config.Store {
		fields["DatabaseDir"] = _config.DatabaseDir
	}
	logConfig("MINE", fields)

	return nil
}

func runMine(cmd *cobra.Command, args []string) error {
	logger := _config.Logger()

	key, err := minerKey()
	if err != nil {
		return err
	}

	var store blockchain.Store
	if _config.Store {
		if err := os.MkdirAll(_config.DatabaseDir, 0700); err != nil {
			return err
		}
		bs, err := blockchain.NewBadgerStore(_config.DatabaseDir, logger.WithField("prefix", "badger"))
		if err != nil {
			return err
		}
		store = bs
	}

	genesis := ledger.NewGenesisBlock(_config.CoinbaseValue, keys.FromPublicKey(&key.PublicKey))

	bc, err := blockchain.NewBlockChain(genesis, _config.BlockChainConfig(store))
	if err != nil {
		return err
	}
	defer bc.Close()

	m := miner.NewMiner(bc, key, _config.CoinbaseValue, logger.WithField("prefix", "miner"))

	rivalKey, err := keys.GenerateECDSAKey()
	if err != nil {
		return err
	}
	rival := miner.NewMiner(bc, rivalKey, _config.CoinbaseValue, logger.WithField("prefix", "rival"))

	wallets := []*miner.Wallet{m.Wallet()}
	for i := 0; i < 3; i++ {
		k, err := keys.GenerateECDSAKey()
		if err != nil {
			return err
		}
		wallets = append(wallets, miner.NewWallet(k))
	}

	rnd := rand.New(rand.NewSource(_config.Seed))

	for i := 1; i <= _config.Blocks; i++ {
		pool := bc.MaxHeightUTXOPool()
		for _, w := range wallets {
			balance := w.Balance(pool)
			if balance <= 0 {
				continue
			}
			to := wallets[rnd.Intn(len(wallets))]
			tx, err := w.Pay(pool, to.Address(), balance*(0.1+0.4*rnd.Float64()))
			if err != nil {
				logger.WithError(err).Debug("Skipping payment")
				continue
			}
			bc.AddTransaction(tx)
		}

		block, err := m.Mine()
		if err != nil {
			return err
		}

		// the rival block arrives second at the same height and loses
		if i%forkInterval == 0 {
			if _, err := rival.MineOn(block.PrevBlockHash); err != nil {
				logger.WithError(err).Warn("Rival block")
			}
		}
	}

	tip := bc.MaxHeightBlock()
	pool := bc.MaxHeightUTXOPool()

	fmt.Printf("Height: %d\n", bc.MaxHeight())
	fmt.Printf("Tip: %s\n", cm.Shorten(tip.Hash(), 16))
	fmt.Printf("Blocks in memory: %d\n", bc.Len())
	fmt.Printf("Pending transactions: %d\n", bc.TransactionPool().Len())
	for i, w := range wallets {
		fmt.Printf("Wallet %d: %v\n", i, w.Balance(pool))
	}
	fmt.Printf("Rival: %v\n", rival.Wallet().Balance(pool))

	return nil
}

// minerKey reads the key from the datadir, or generates a throwaway one.
func minerKey() (*ecdsa.PrivateKey, error) {
	keyfile := keys.NewSimpleKeyfile(_config.Keyfile())
	if _, err := os.Stat(_config.Keyfile()); err != nil {
		_config.Logger().Debugf("No key found in %s, using a new one", _config.Keyfile())
		return keys.GenerateECDSAKey()
	}
	return keyfile.ReadKey()
}

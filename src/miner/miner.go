// Package miner assembles blocks from the pending transactions of a
// BlockChain.
package miner

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/mosaicnetworks/utxochain/src/blockchain"
	cm "github.com/mosaicnetworks/utxochain/src/common"
	"github.com/mosaicnetworks/utxochain/src/ledger"
	"github.com/mosaicnetworks/utxochain/src/validation"
	"github.com/sirupsen/logrus"
)

// Miner creates blocks paying its reward to its wallet.
type Miner struct {
	chain  *blockchain.BlockChain
	wallet *Wallet
	reward float64
	logger *logrus.Entry
}

// NewMiner ...
func NewMiner(chain *blockchain.BlockChain, key *ecdsa.PrivateKey, reward float64, logger *logrus.Entry) *Miner {
	if logger == nil {
		l := logrus.New()
		l.Level = logrus.InfoLevel
		logger = l.WithField("prefix", "miner")
	}

	return &Miner{
		chain:  chain,
		wallet: NewWallet(key),
		reward: reward,
		logger: logger,
	}
}

// Wallet returns the wallet receiving the rewards.
func (m *Miner) Wallet() *Wallet {
	return m.wallet
}

// CreateBlock returns a block extending parentHash with every pending
// transaction that settles on top of it.
func (m *Miner) CreateBlock(parentHash string) (*ledger.Block, error) {
	pool, ok := m.chain.UTXOPoolAt(parentHash)
	if !ok {
		return nil, fmt.Errorf("parent block %s is not in the tree", cm.Shorten(parentHash, 10))
	}

	pending := m.chain.TransactionPool().Transactions()
	accepted := validation.NewValidator(pool, m.logger).SettleBatch(pending)

	block := ledger.NewBlock(parentHash, m.reward, m.wallet.Address())
	for _, tx := range accepted {
		block.AddTransaction(tx)
	}

	m.logger.WithFields(logrus.Fields{
		"parent":  cm.Shorten(parentHash, 10),
		"pending": len(pending),
		"txs":     len(accepted),
	}).Debug("CreateBlock")

	return block, nil
}

// Mine creates a block on top of the tip and adds it to the chain. The
// transactions it includes are removed from the pending pool.
func (m *Miner) Mine() (*ledger.Block, error) {
	return m.MineOn(m.chain.MaxHeightBlock().Hash())
}

// MineOn creates a block on top of parentHash and adds it to the chain.
func (m *Miner) MineOn(parentHash string) (*ledger.Block, error) {
	block, err := m.CreateBlock(parentHash)
	if err != nil {
		return nil, err
	}

	if !m.chain.AddBlock(block) {
		return nil, fmt.Errorf("block %s was rejected", cm.Shorten(block.Hash(), 10))
	}

	txPool := m.chain.TransactionPool()
	for _, tx := range block.Transactions {
		txPool.RemoveTransaction(tx.Hash())
	}

	m.logger.WithFields(logrus.Fields{
		"block": cm.Shorten(block.Hash(), 10),
		"txs":   len(block.Transactions),
	}).Info("Mined block")

	return block, nil
}

package blockchain

import "github.com/mosaicnetworks/utxochain/src/ledger"

// Store archives accepted blocks. The BlockChain keeps a bounded window of
// blocks in memory; the store keeps every accepted block retrievable by hash.
type Store interface {
	// SetBlock records a block accepted at the given height.
	SetBlock(block *ledger.Block, height int) error
	// GetBlock returns a block by hash.
	GetBlock(hash string) (*ledger.Block, error)
	// Close releases the resources held by the store.
	Close() error
}

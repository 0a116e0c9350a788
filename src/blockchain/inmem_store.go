package blockchain

import (
	"sync"

	cm "github.com/mosaicnetworks/utxochain/src/common"
	"github.com/mosaicnetworks/utxochain/src/ledger"
)

// InmemStore is a Store backed by a map.
type InmemStore struct {
	sync.RWMutex
	blocks map[string]*ledger.Block
}

// NewInmemStore ...
func NewInmemStore() *InmemStore {
	return &InmemStore{
		blocks: make(map[string]*ledger.Block),
	}
}

// SetBlock implements the Store interface.
func (s *InmemStore) SetBlock(block *ledger.Block, height int) error {
	s.Lock()
	defer s.Unlock()
	hash := block.Hash()
	if _, ok := s.blocks[hash]; ok {
		return cm.NewStoreErr("Block", cm.KeyAlreadyExists, hash)
	}
	s.blocks[hash] = block
	return nil
}

// GetBlock implements the Store interface.
func (s *InmemStore) GetBlock(hash string) (*ledger.Block, error) {
	s.RLock()
	defer s.RUnlock()
	block, ok := s.blocks[hash]
	if !ok {
		return nil, cm.NewStoreErr("Block", cm.KeyNotFound, hash)
	}
	return block, nil
}

// Close implements the Store interface.
func (s *InmemStore) Close() error {
	return nil
}

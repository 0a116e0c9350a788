package blockchain

import (
	"fmt"

	"github.com/dgraph-io/badger"
	cm "github.com/mosaicnetworks/utxochain/src/common"
	"github.com/mosaicnetworks/utxochain/src/ledger"
	"github.com/sirupsen/logrus"
)

const (
	blockPrefix  = "block"
	heightPrefix = "height"
)

// BadgerStore is a Store that persists blocks in a Badger database.
type BadgerStore struct {
	db   *badger.DB
	path string
}

// NewBadgerStore opens an existing database or creates a new one if nothing is
// found in path.
func NewBadgerStore(path string, logger *logrus.Entry) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithSyncWrites(false)

	if logger != nil {
		opts = opts.WithLogger(logger.WithField("ns", "badger"))
	}

	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{
		db:   handle,
		path: path,
	}, nil
}

/*******************************************************************************
Keys
*******************************************************************************/

func blockKey(hash string) []byte {
	return []byte(fmt.Sprintf("%s_%s", blockPrefix, hash))
}

func heightKey(height int, hash string) []byte {
	return []byte(fmt.Sprintf("%s_%09d_%s", heightPrefix, height, hash))
}

/*******************************************************************************
Implement the Store interface
*******************************************************************************/

// SetBlock writes [block_hash] => [block bytes] and [height_h_hash] => [hash]
// in a single transaction.
func (s *BadgerStore) SetBlock(block *ledger.Block, height int) error {
	hash := block.Hash()

	val, err := block.Marshal()
	if err != nil {
		return err
	}

	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	_, err = tx.Get(blockKey(hash))
	if err == nil {
		return cm.NewStoreErr("Block", cm.KeyAlreadyExists, hash)
	}
	if !isDBKeyNotFound(err) {
		return err
	}

	if err := tx.Set(blockKey(hash), val); err != nil {
		return err
	}

	if err := tx.Set(heightKey(height, hash), []byte(hash)); err != nil {
		return err
	}

	return tx.Commit()
}

// GetBlock implements the Store interface.
func (s *BadgerStore) GetBlock(hash string) (*ledger.Block, error) {
	var blockBytes []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blockKey(hash))
		if err != nil {
			return err
		}
		blockBytes, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, mapError(err, "Block", hash)
	}

	block := new(ledger.Block)
	if err := block.Unmarshal(blockBytes); err != nil {
		return nil, err
	}

	return block, nil
}

// BlocksAtHeight returns the hashes of the blocks recorded at height, in key
// order.
func (s *BadgerStore) BlocksAtHeight(height int) ([]string, error) {
	res := []string{}
	prefix := []byte(fmt.Sprintf("%s_%09d_", heightPrefix, height))

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			res = append(res, string(v))
		}
		return nil
	})

	return res, err
}

// Close implements the Store interface.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// StorePath returns the directory of the database.
func (s *BadgerStore) StorePath() string {
	return s.path
}

func isDBKeyNotFound(err error) bool {
	return err == badger.ErrKeyNotFound
}

func mapError(err error, name, key string) error {
	if isDBKeyNotFound(err) {
		return cm.NewStoreErr(name, cm.KeyNotFound, key)
	}
	return err
}

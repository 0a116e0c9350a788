package blockchain

import (
	"os"
	"testing"

	cm "github.com/mosaicnetworks/utxochain/src/common"
	"github.com/mosaicnetworks/utxochain/src/ledger"
	"github.com/stretchr/testify/require"
)

func newTestBadgerStore(t *testing.T) (*BadgerStore, string) {
	dir, err := os.MkdirTemp("", "badger")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	store, err := NewBadgerStore(dir, cm.NewTestEntry(t, "badger"))
	require.NoError(t, err)
	return store, dir
}

func TestBadgerStoreBlocks(t *testing.T) {
	store, dir := newTestBadgerStore(t)
	defer store.Close()

	require.Equal(t, dir, store.StorePath())

	a, b := newAccount(t), newAccount(t)
	genesis := ledger.NewGenesisBlock(10, a.addr)

	tx := pay(t, a, ledger.NewUTXO(genesis.Coinbase.Hash(), 0), b, 10)
	block := ledger.NewBlock(genesis.Hash(), coinbaseValue, b.addr)
	block.AddTransaction(tx)

	require.NoError(t, store.SetBlock(genesis, 1))
	require.NoError(t, store.SetBlock(block, 2))

	err := store.SetBlock(block, 2)
	require.True(t, cm.IsStore(err, cm.KeyAlreadyExists))

	got, err := store.GetBlock(block.Hash())
	require.NoError(t, err)
	require.Equal(t, block.Hash(), got.Hash())
	require.Len(t, got.Transactions, 1)
	require.Equal(t, tx.Hash(), got.Transactions[0].Hash())

	_, err = store.GetBlock("0XABCDEF")
	require.True(t, cm.IsStore(err, cm.KeyNotFound))

	hashes, err := store.BlocksAtHeight(2)
	require.NoError(t, err)
	require.Equal(t, []string{block.Hash()}, hashes)

	hashes, err = store.BlocksAtHeight(3)
	require.NoError(t, err)
	require.Empty(t, hashes)
}

func TestBadgerStoreReopen(t *testing.T) {
	store, dir := newTestBadgerStore(t)

	a := newAccount(t)
	genesis := ledger.NewGenesisBlock(10, a.addr)

	conf := TestConfig(t)
	conf.Store = store
	bc, err := NewBlockChain(genesis, conf)
	require.NoError(t, err)

	tip := extend(t, bc, genesis, a, 3)
	require.NoError(t, bc.Close())

	store, err = NewBadgerStore(dir, cm.NewTestEntry(t, "badger"))
	require.NoError(t, err)

	// the genesis block is already archived
	conf.Store = store
	bc, err = NewBlockChain(genesis, conf)
	require.NoError(t, err)
	defer bc.Close()

	got, err := bc.GetBlock(tip.Hash())
	require.NoError(t, err)
	require.Equal(t, tip.Hash(), got.Hash())

	hashes, err := store.BlocksAtHeight(4)
	require.NoError(t, err)
	require.Equal(t, []string{tip.Hash()}, hashes)
}

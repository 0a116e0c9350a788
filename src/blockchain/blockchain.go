package blockchain

import (
	"fmt"
	"sync"

	cm "github.com/mosaicnetworks/utxochain/src/common"
	"github.com/mosaicnetworks/utxochain/src/ledger"
	"github.com/mosaicnetworks/utxochain/src/validation"
	"github.com/sirupsen/logrus"
)

// node wraps a block in the tree. Parent and children are referenced by block
// hash; the parent of a node may have been pruned.
type node struct {
	block    *ledger.Block
	parent   string
	children []string
	height   int
	// utxoPool is the set of unspent outputs after this block. It is never
	// handed out; callers get copies.
	utxoPool *ledger.UTXOPool
}

// BlockChain is a tree of blocks rooted at a genesis block. The branch with
// the greatest height is the main branch; its last block is the tip. Blocks
// can extend any branch whose head is no more than CutoffAge below the tip.
// Nodes that fall too far below the tip to ever be extended again are pruned
// from memory, but remain available through the Store.
type BlockChain struct {
	sync.RWMutex

	nodes map[string]*node
	// heights indexes the hashes of the live nodes by height
	heights map[int][]string
	// lowest is the smallest height that may still hold live nodes
	lowest int
	// tip is the hash of the first node seen at the maximum height
	tip string

	txPool *ledger.TransactionPool

	cutoffAge int
	store     Store
	logger    *logrus.Entry
}

// NewBlockChain creates a BlockChain containing only genesis, which is assumed
// to be valid. The initial unspent outputs are the outputs of its coinbase.
func NewBlockChain(genesis *ledger.Block, conf *Config) (*BlockChain, error) {
	if conf == nil {
		conf = DefaultConfig()
	}
	if conf.CutoffAge < 0 {
		return nil, fmt.Errorf("cutoff age must not be negative, got %d", conf.CutoffAge)
	}

	store := conf.Store
	if store == nil {
		store = NewInmemStore()
	}

	logger := conf.Logger
	if logger == nil {
		logger = DefaultConfig().Logger
	}

	utxoPool := ledger.NewUTXOPool()
	addCoinbase(genesis, utxoPool)

	hash := genesis.Hash()
	if err := store.SetBlock(genesis, 1); err != nil && !cm.IsStore(err, cm.KeyAlreadyExists) {
		return nil, err
	}

	genesisNode := &node{
		block:    genesis,
		height:   1,
		utxoPool: utxoPool,
	}

	bc := &BlockChain{
		nodes:     map[string]*node{hash: genesisNode},
		heights:   map[int][]string{1: {hash}},
		lowest:    1,
		tip:       hash,
		txPool:    ledger.NewTransactionPool(),
		cutoffAge: conf.CutoffAge,
		store:     store,
		logger:    logger,
	}

	bc.logger.WithField("genesis", cm.Shorten(hash, 10)).Debug("NewBlockChain")

	return bc, nil
}

// MaxHeightBlock returns the tip.
func (bc *BlockChain) MaxHeightBlock() *ledger.Block {
	bc.RLock()
	defer bc.RUnlock()
	return bc.nodes[bc.tip].block
}

// MaxHeight returns the height of the tip. The genesis block has height 1.
func (bc *BlockChain) MaxHeight() int {
	bc.RLock()
	defer bc.RUnlock()
	return bc.nodes[bc.tip].height
}

// MaxHeightUTXOPool returns a copy of the unspent outputs at the tip, to mine
// a new block on top of it.
func (bc *BlockChain) MaxHeightUTXOPool() *ledger.UTXOPool {
	bc.RLock()
	defer bc.RUnlock()
	return bc.nodes[bc.tip].utxoPool.Copy()
}

// UTXOPoolAt returns a copy of the unspent outputs after the block with the
// given hash, if it is still in the tree.
func (bc *BlockChain) UTXOPoolAt(hash string) (*ledger.UTXOPool, bool) {
	bc.RLock()
	defer bc.RUnlock()
	n, ok := bc.nodes[hash]
	if !ok {
		return nil, false
	}
	return n.utxoPool.Copy(), true
}

// TransactionPool returns the pool of transactions waiting to be mined. It is
// shared, not copied.
func (bc *BlockChain) TransactionPool() *ledger.TransactionPool {
	return bc.txPool
}

// AddTransaction adds tx to the transaction pool without validating it.
func (bc *BlockChain) AddTransaction(tx *ledger.Transaction) {
	bc.txPool.AddTransaction(tx)
}

// AddBlock adds block to the tree if it is valid:
//   - it references a parent that is in the tree,
//   - every one of its transactions is accepted on top of the parent's outputs,
//   - its height is greater than the tip height minus CutoffAge.
//
// A block at a greater height than the tip becomes the new tip. On failure
// nothing changes.
func (bc *BlockChain) AddBlock(block *ledger.Block) bool {
	bc.Lock()
	defer bc.Unlock()

	hash := block.Hash()
	logger := bc.logger.WithFields(logrus.Fields{
		"block":  cm.Shorten(hash, 10),
		"parent": cm.Shorten(block.PrevBlockHash, 10),
	})

	if !block.HasPrev() {
		logger.WithField("reason", "OrphanBlock").Debug("Rejected block: no parent reference")
		return false
	}

	parent, ok := bc.nodes[block.PrevBlockHash]
	if !ok {
		// a pruned parent is archived: its children would be below the cutoff
		if _, err := bc.store.GetBlock(block.PrevBlockHash); err == nil {
			logger.WithField("reason", "HeightTooLow").Debug("Rejected block: parent was pruned")
			return false
		}
		logger.WithField("reason", "OrphanBlock").Debug("Rejected block: unknown parent")
		return false
	}

	if _, ok := bc.nodes[hash]; ok {
		logger.WithField("reason", "DuplicateBlock").Debug("Rejected block: already in the tree")
		return false
	}

	tipHeight := bc.nodes[bc.tip].height
	height := parent.height + 1
	if height <= tipHeight-bc.cutoffAge {
		logger.WithFields(logrus.Fields{
			"reason":     "HeightTooLow",
			"height":     height,
			"max_height": tipHeight,
		}).Debug("Rejected block: too far below the tip")
		return false
	}

	validator := validation.NewValidator(parent.utxoPool, bc.logger)
	accepted := validator.SettleBatch(block.Transactions)
	if len(accepted) != len(block.Transactions) {
		logger.WithFields(logrus.Fields{
			"reason":   "BlockTransactionRejected",
			"declared": len(block.Transactions),
			"accepted": len(accepted),
		}).Debug("Rejected block: invalid transactions")
		return false
	}

	utxoPool := validator.UTXOPool()
	addCoinbase(block, utxoPool)

	if err := bc.store.SetBlock(block, height); err != nil {
		logger.WithError(err).WithField("reason", "StoreFailure").Error("Rejected block: store")
		return false
	}

	parent.children = append(parent.children, hash)
	bc.nodes[hash] = &node{
		block:    block,
		parent:   block.PrevBlockHash,
		height:   height,
		utxoPool: utxoPool,
	}
	bc.heights[height] = append(bc.heights[height], hash)

	if height > tipHeight {
		bc.tip = hash
		bc.prune(height)
	}

	logger.WithFields(logrus.Fields{
		"height": height,
		"txs":    len(block.Transactions),
		"tip":    bc.tip == hash,
	}).Debug("AddBlock")

	return true
}

// prune evicts the nodes that can no longer be extended: a child of a node at
// height h would be at h+1, which is rejected once h+1 <= maxHeight-CutoffAge.
func (bc *BlockChain) prune(maxHeight int) {
	limit := maxHeight - bc.cutoffAge
	pruned := 0
	for h := bc.lowest; h < limit; h++ {
		for _, hash := range bc.heights[h] {
			n := bc.nodes[hash]
			if p, ok := bc.nodes[n.parent]; ok {
				p.children = removeHash(p.children, hash)
			}
			delete(bc.nodes, hash)
			pruned++
		}
		delete(bc.heights, h)
	}
	if limit > bc.lowest {
		bc.lowest = limit
	}
	if pruned > 0 {
		bc.logger.WithFields(logrus.Fields{
			"pruned": pruned,
			"lowest": bc.lowest,
			"live":   len(bc.nodes),
		}).Debug("Prune")
	}
}

// GetBlock returns the block with the given hash, even if it has been pruned.
func (bc *BlockChain) GetBlock(hash string) (*ledger.Block, error) {
	bc.RLock()
	n, ok := bc.nodes[hash]
	bc.RUnlock()
	if ok {
		return n.block, nil
	}
	return bc.store.GetBlock(hash)
}

// Height returns the height of a block that is still in the tree.
func (bc *BlockChain) Height(hash string) (int, bool) {
	bc.RLock()
	defer bc.RUnlock()
	n, ok := bc.nodes[hash]
	if !ok {
		return 0, false
	}
	return n.height, true
}

// Children returns the hashes of the blocks extending hash.
func (bc *BlockChain) Children(hash string) []string {
	bc.RLock()
	defer bc.RUnlock()
	n, ok := bc.nodes[hash]
	if !ok {
		return nil
	}
	return append([]string(nil), n.children...)
}

// Len returns the number of blocks held in memory.
func (bc *BlockChain) Len() int {
	bc.RLock()
	defer bc.RUnlock()
	return len(bc.nodes)
}

// MainChain returns the blocks of the main branch still held in memory, from
// the oldest to the tip.
func (bc *BlockChain) MainChain() []*ledger.Block {
	bc.RLock()
	defer bc.RUnlock()

	res := []*ledger.Block{}
	for n, ok := bc.nodes[bc.tip]; ok; n, ok = bc.nodes[n.parent] {
		res = append(res, n.block)
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// Close closes the underlying store.
func (bc *BlockChain) Close() error {
	return bc.store.Close()
}

// addCoinbase adds the outputs of the block's coinbase to pool.
func addCoinbase(block *ledger.Block, pool *ledger.UTXOPool) {
	if block.Coinbase == nil {
		return
	}
	for u, out := range block.Coinbase.UTXOs() {
		pool.AddUTXO(u, out)
	}
}

func removeHash(hashes []string, hash string) []string {
	for i, h := range hashes {
		if h == hash {
			return append(hashes[:i], hashes[i+1:]...)
		}
	}
	return hashes
}

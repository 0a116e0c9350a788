package ledger

import (
	"sort"
	"sync"
)

// TransactionPool holds the transactions submitted for inclusion in a block.
// Nothing is validated on the way in; validity is decided when a block
// containing the transaction is proposed.
type TransactionPool struct {
	sync.RWMutex
	txs map[string]*Transaction
}

// NewTransactionPool creates an empty pool.
func NewTransactionPool() *TransactionPool {
	return &TransactionPool{
		txs: make(map[string]*Transaction),
	}
}

// AddTransaction inserts tx. Adding the same transaction twice has no effect.
func (p *TransactionPool) AddTransaction(tx *Transaction) {
	p.Lock()
	defer p.Unlock()
	p.txs[tx.Hash()] = tx
}

// RemoveTransaction ...
func (p *TransactionPool) RemoveTransaction(hash string) {
	p.Lock()
	defer p.Unlock()
	delete(p.txs, hash)
}

// GetTransaction ...
func (p *TransactionPool) GetTransaction(hash string) (*Transaction, bool) {
	p.RLock()
	defer p.RUnlock()
	tx, ok := p.txs[hash]
	return tx, ok
}

// Transactions returns the pooled transactions ordered by hash.
func (p *TransactionPool) Transactions() []*Transaction {
	p.RLock()
	defer p.RUnlock()
	res := make([]*Transaction, 0, len(p.txs))
	for _, tx := range p.txs {
		res = append(res, tx)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Hash() < res[j].Hash() })
	return res
}

// Len ...
func (p *TransactionPool) Len() int {
	p.RLock()
	defer p.RUnlock()
	return len(p.txs)
}

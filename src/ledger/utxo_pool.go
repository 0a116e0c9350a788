package ledger

import "sort"

// UTXOPool maps unspent outputs to the output records they refer to. It is not
// safe for concurrent use; owners hand out copies.
type UTXOPool struct {
	pool map[UTXO]Output
}

// NewUTXOPool creates an empty pool.
func NewUTXOPool() *UTXOPool {
	return &UTXOPool{
		pool: make(map[UTXO]Output),
	}
}

// Copy returns an independent copy of the pool. Mutating one never affects the
// other.
func (p *UTXOPool) Copy() *UTXOPool {
	res := &UTXOPool{
		pool: make(map[UTXO]Output, len(p.pool)),
	}
	for u, out := range p.pool {
		res.pool[u] = out.Copy()
	}
	return res
}

// AddUTXO inserts or replaces the output recorded for u.
func (p *UTXOPool) AddUTXO(u UTXO, out Output) {
	p.pool[u] = out
}

// RemoveUTXO deletes u from the pool. Removing an absent UTXO is a no-op.
func (p *UTXOPool) RemoveUTXO(u UTXO) {
	delete(p.pool, u)
}

// GetTxOutput returns the output recorded for u.
func (p *UTXOPool) GetTxOutput(u UTXO) (Output, bool) {
	out, ok := p.pool[u]
	return out, ok
}

// Contains ...
func (p *UTXOPool) Contains(u UTXO) bool {
	_, ok := p.pool[u]
	return ok
}

// Len returns the number of unspent outputs.
func (p *UTXOPool) Len() int {
	return len(p.pool)
}

// UTXOs returns all the unspent outputs in canonical order.
func (p *UTXOPool) UTXOs() []UTXO {
	res := make([]UTXO, 0, len(p.pool))
	for u := range p.pool {
		res = append(res, u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Less(res[j]) })
	return res
}

// Balance sums the values of the outputs owned by address.
func (p *UTXOPool) Balance(address []byte) float64 {
	total := 0.0
	for _, out := range p.pool {
		if out.OwnedBy(address) {
			total += out.Value
		}
	}
	return total
}

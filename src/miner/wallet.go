package miner

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/mosaicnetworks/utxochain/src/crypto/keys"
	"github.com/mosaicnetworks/utxochain/src/ledger"
)

// Wallet signs transactions spending the outputs owned by its key.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address []byte
}

// NewWallet ...
func NewWallet(key *ecdsa.PrivateKey) *Wallet {
	return &Wallet{
		key:     key,
		address: keys.FromPublicKey(&key.PublicKey),
	}
}

// Address returns the serialized public key that owns the wallet's outputs.
func (w *Wallet) Address() []byte {
	return w.address
}

// Balance returns the total value owned by the wallet in pool.
func (w *Wallet) Balance(pool *ledger.UTXOPool) float64 {
	return pool.Balance(w.address)
}

// Pay creates a signed transaction sending value to the owner of address. It
// spends the wallet's outputs of pool in canonical order until value is
// covered and sends the change back to the wallet.
func (w *Wallet) Pay(pool *ledger.UTXOPool, address []byte, value float64) (*ledger.Transaction, error) {
	if value <= 0 {
		return nil, fmt.Errorf("value must be positive, got %v", value)
	}

	tx := ledger.NewTransaction()
	total := 0.0
	for _, u := range pool.UTXOs() {
		out, _ := pool.GetTxOutput(u)
		if !out.OwnedBy(w.address) {
			continue
		}
		tx.AddInput(u.TxHash, u.Index)
		total += out.Value
		if total >= value {
			break
		}
	}

	if total < value {
		return nil, fmt.Errorf("insufficient funds: have %v, need %v", total, value)
	}

	tx.AddOutput(value, address)
	if change := total - value; change > 0 {
		tx.AddOutput(change, w.address)
	}

	for i := range tx.Inputs {
		if err := tx.Sign(i, w.key); err != nil {
			return nil, err
		}
	}
	tx.Finalize()

	return tx, nil
}

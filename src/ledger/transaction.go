package ledger

import (
	"bytes"
	"crypto/ecdsa"
	"fmt"

	"github.com/mosaicnetworks/utxochain/src/crypto/keys"
)

// Input spends the output OutputIndex of transaction PrevTxHash. Signature
// proves the spender owns that output.
type Input struct {
	PrevTxHash  string
	OutputIndex int
	Signature   []byte `codec:",omitempty"`
}

// UTXO returns the unspent output this input claims.
func (in Input) UTXO() UTXO {
	return NewUTXO(in.PrevTxHash, in.OutputIndex)
}

// Output transfers Value to the owner of the verification key Address.
type Output struct {
	Value   float64
	Address []byte `codec:",omitempty"`
}

// OwnedBy ...
func (out Output) OwnedBy(address []byte) bool {
	return bytes.Equal(out.Address, address)
}

// Copy returns an Output that does not share its Address with out.
func (out Output) Copy() Output {
	return Output{
		Value:   out.Value,
		Address: append([]byte(nil), out.Address...),
	}
}

// Transaction moves value from the outputs claimed by its inputs to its own
// outputs. A coinbase transaction has no inputs and issues new value.
type Transaction struct {
	Inputs   []Input  `codec:",omitempty"`
	Outputs  []Output `codec:",omitempty"`
	Coinbase bool
	// CoinbaseRef distinguishes otherwise identical coinbase transactions. It
	// is the hash of the block the coinbase's block extends.
	CoinbaseRef string `codec:",omitempty"`

	hash string
}

// NewTransaction ...
func NewTransaction() *Transaction {
	return &Transaction{
		Inputs:  []Input{},
		Outputs: []Output{},
	}
}

// NewCoinbase creates a coinbase transaction paying value to address.
func NewCoinbase(value float64, address []byte, ref string) *Transaction {
	tx := NewTransaction()
	tx.Coinbase = true
	tx.CoinbaseRef = ref
	tx.AddOutput(value, address)
	return tx
}

// AddInput ...
func (tx *Transaction) AddInput(prevTxHash string, outputIndex int) {
	tx.Inputs = append(tx.Inputs, Input{
		PrevTxHash:  prevTxHash,
		OutputIndex: outputIndex,
	})
	tx.hash = ""
}

// AddOutput ...
func (tx *Transaction) AddOutput(value float64, address []byte) {
	tx.Outputs = append(tx.Outputs, Output{
		Value:   value,
		Address: address,
	})
	tx.hash = ""
}

// AddSignature sets the signature of input i.
func (tx *Transaction) AddSignature(i int, sig []byte) error {
	if i < 0 || i >= len(tx.Inputs) {
		return fmt.Errorf("input %d out of range [0, %d)", i, len(tx.Inputs))
	}
	tx.Inputs[i].Signature = sig
	tx.hash = ""
	return nil
}

// Sign signs input i with priv.
func (tx *Transaction) Sign(i int, priv *ecdsa.PrivateKey) error {
	data, err := tx.RawDataToSign(i)
	if err != nil {
		return err
	}
	sig, err := keys.Sign(priv, data)
	if err != nil {
		return err
	}
	return tx.AddSignature(i, sig)
}

type signingPayload struct {
	PrevTxHash  string
	OutputIndex int
	Outputs     []Output
}

// RawDataToSign returns the canonical payload signed by input i: the output it
// claims and every output of the transaction.
func (tx *Transaction) RawDataToSign(i int) ([]byte, error) {
	if i < 0 || i >= len(tx.Inputs) {
		return nil, fmt.Errorf("input %d out of range [0, %d)", i, len(tx.Inputs))
	}
	in := tx.Inputs[i]
	return marshal(signingPayload{
		PrevTxHash:  in.PrevTxHash,
		OutputIndex: in.OutputIndex,
		Outputs:     tx.Outputs,
	})
}

// Finalize computes and caches the transaction hash. Mutating the exported
// fields directly requires calling it again.
func (tx *Transaction) Finalize() string {
	tx.hash = ""
	return tx.Hash()
}

// Hash returns the transaction identifier, computed over its inputs (including
// signatures) and outputs.
func (tx *Transaction) Hash() string {
	if tx.hash == "" {
		tx.hash = identifier(tx)
	}
	return tx.hash
}

// OutputValueSum returns the total value declared by the outputs.
func (tx *Transaction) OutputValueSum() float64 {
	total := 0.0
	for _, out := range tx.Outputs {
		total += out.Value
	}
	return total
}

// UTXOs returns the outputs created by the transaction, keyed by its hash.
func (tx *Transaction) UTXOs() map[UTXO]Output {
	res := make(map[UTXO]Output, len(tx.Outputs))
	hash := tx.Hash()
	for i, out := range tx.Outputs {
		res[NewUTXO(hash, i)] = out
	}
	return res
}

package ledger

import "fmt"

// UTXO identifies an unspent transaction output by the hash of the transaction
// that produced it and the position of the output in that transaction.
type UTXO struct {
	TxHash string
	Index  int
}

// NewUTXO ...
func NewUTXO(txHash string, index int) UTXO {
	return UTXO{
		TxHash: txHash,
		Index:  index,
	}
}

// Less orders UTXOs by transaction hash, then by index.
func (u UTXO) Less(o UTXO) bool {
	if u.TxHash != o.TxHash {
		return u.TxHash < o.TxHash
	}
	return u.Index < o.Index
}

// String ...
func (u UTXO) String() string {
	return fmt.Sprintf("%s:%d", u.TxHash, u.Index)
}

package validation

import "fmt"

// TxErrKind enumerates the rules a transaction can break.
type TxErrKind uint32

const (
	// MissingUTXO: an input claims an output that is not in the pool.
	MissingUTXO TxErrKind = iota
	// BadSignature: an input's signature does not verify with the owner's key.
	BadSignature
	// DoubleSpend: two inputs of the same transaction claim the same output.
	DoubleSpend
	// NegativeOutput: an output declares a negative or non-finite value.
	NegativeOutput
	// Overspend: outputs are worth more than the claimed inputs.
	Overspend
)

// TxError describes why a transaction was found invalid. It only feeds the
// logs; callers of Validate see a bool.
type TxError struct {
	kind  TxErrKind
	txHex string
	index int
}

// NewTxError ...
func NewTxError(kind TxErrKind, txHex string, index int) TxError {
	return TxError{
		kind:  kind,
		txHex: txHex,
		index: index,
	}
}

// Error implements the Error interface
func (e TxError) Error() string {
	m := ""
	switch e.kind {
	case MissingUTXO:
		m = "Missing UTXO"
	case BadSignature:
		m = "Bad Signature"
	case DoubleSpend:
		m = "Double Spend"
	case NegativeOutput:
		m = "Negative Output"
	case Overspend:
		m = "Overspend"
	}
	return fmt.Sprintf("tx %s, index %d, %s", e.txHex, e.index, m)
}

// IsTxError checks that an error is a TxError of the given kind.
func IsTxError(err error, kind TxErrKind) bool {
	txErr, ok := err.(TxError)
	return ok && txErr.kind == kind
}

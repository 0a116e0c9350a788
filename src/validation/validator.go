package validation

import (
	"math"
	"sort"

	"github.com/mosaicnetworks/utxochain/src/crypto/keys"
	"github.com/mosaicnetworks/utxochain/src/ledger"
	"github.com/sirupsen/logrus"
)

// Validator checks transactions against its own copy of a UTXOPool and applies
// the ones it accepts to that copy.
type Validator struct {
	pool   *ledger.UTXOPool
	logger *logrus.Entry
}

// NewValidator creates a Validator over a copy of pool. A nil logger
// discards debug output.
func NewValidator(pool *ledger.UTXOPool, logger *logrus.Entry) *Validator {
	if logger == nil {
		l := logrus.New()
		l.Level = logrus.InfoLevel
		logger = l.WithField("prefix", "validation")
	}
	return &Validator{
		pool:   pool.Copy(),
		logger: logger,
	}
}

// UTXOPool returns a copy of the current pool, including everything committed
// so far.
func (v *Validator) UTXOPool() *ledger.UTXOPool {
	return v.pool.Copy()
}

// Validate returns true if:
// (1) every output claimed by tx is in the current pool,
// (2) the signature of every input verifies,
// (3) no output is claimed twice by tx,
// (4) every output value is a finite non-negative number, and
// (5) the claimed values add up to at least the output values.
func (v *Validator) Validate(tx *ledger.Transaction) bool {
	if err := v.check(tx); err != nil {
		v.logger.WithError(err).Debug("Invalid transaction")
		return false
	}
	return true
}

func (v *Validator) check(tx *ledger.Transaction) error {
	claimed := make(map[ledger.UTXO]bool, len(tx.Inputs))
	inputSum := 0.0

	for i, in := range tx.Inputs {
		u := in.UTXO()

		out, ok := v.pool.GetTxOutput(u)
		if !ok {
			return NewTxError(MissingUTXO, tx.Hash(), i)
		}

		data, err := tx.RawDataToSign(i)
		if err != nil || !keys.VerifySignature(out.Address, data, in.Signature) {
			return NewTxError(BadSignature, tx.Hash(), i)
		}

		if claimed[u] {
			return NewTxError(DoubleSpend, tx.Hash(), i)
		}
		claimed[u] = true

		inputSum += out.Value
	}

	for i, out := range tx.Outputs {
		if !validValue(out.Value) {
			return NewTxError(NegativeOutput, tx.Hash(), i)
		}
	}

	// a non-finite input value can only come from a corrupted pool
	if !validValue(inputSum) || tx.OutputValueSum() > inputSum {
		return NewTxError(Overspend, tx.Hash(), -1)
	}

	return nil
}

// Commit removes the outputs claimed by tx from the pool and adds its own. It
// must only be called on a transaction that Validate accepted against the
// current pool.
func (v *Validator) Commit(tx *ledger.Transaction) {
	for _, in := range tx.Inputs {
		v.pool.RemoveUTXO(in.UTXO())
	}
	for u, out := range tx.UTXOs() {
		v.pool.AddUTXO(u, out)
	}
}

// SettleBatch accepts the largest subset of txs it can reach by repeatedly
// committing every transaction that is valid against the current pool. A
// transaction that spends the output of another one in the batch is accepted
// once its parent has been, whatever the submission order. Within a scan,
// transactions are visited in ascending hash order, so the outcome between
// conflicting transactions does not depend on the input order. Accepted
// transactions are returned in the order they were committed.
func (v *Validator) SettleBatch(txs []*ledger.Transaction) []*ledger.Transaction {
	remaining := canonical(txs)
	accepted := []*ledger.Transaction{}

	for len(remaining) > 0 {
		next := remaining[:0:0]
		committed := 0

		for _, tx := range remaining {
			if v.Validate(tx) {
				v.Commit(tx)
				accepted = append(accepted, tx)
				committed++
			} else {
				next = append(next, tx)
			}
		}

		if committed == 0 {
			break
		}
		remaining = next
	}

	v.logger.WithFields(logrus.Fields{
		"submitted": len(txs),
		"accepted":  len(accepted),
	}).Debug("SettleBatch")

	return accepted
}

// validValue rejects negative values, NaN and infinities. NaN fails every
// comparison, so it must be tested for explicitly.
func validValue(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// canonical returns the distinct transactions of txs sorted by hash.
func canonical(txs []*ledger.Transaction) []*ledger.Transaction {
	seen := make(map[string]bool, len(txs))
	res := make([]*ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		h := tx.Hash()
		if seen[h] {
			continue
		}
		seen[h] = true
		res = append(res, tx)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Hash() < res[j].Hash() })
	return res
}

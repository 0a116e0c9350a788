package validation

import (
	"crypto/ecdsa"
	"math"
	"testing"

	"github.com/mosaicnetworks/utxochain/src/common"
	"github.com/mosaicnetworks/utxochain/src/crypto/keys"
	"github.com/mosaicnetworks/utxochain/src/ledger"
	"github.com/stretchr/testify/require"
)

type account struct {
	key  *ecdsa.PrivateKey
	addr []byte
}

func newAccount(t *testing.T) account {
	key, err := keys.GenerateECDSAKey()
	require.NoError(t, err)
	return account{key: key, addr: keys.FromPublicKey(&key.PublicKey)}
}

// fund returns a pool with one output of value owned by a, and that output.
func fund(t *testing.T, a account, value float64) (*ledger.UTXOPool, ledger.UTXO) {
	coinbase := ledger.NewCoinbase(value, a.addr, "")
	pool := ledger.NewUTXOPool()
	u := ledger.NewUTXO(coinbase.Hash(), 0)
	pool.AddUTXO(u, coinbase.Outputs[0])
	return pool, u
}

// spend builds a transaction signed by from, claiming u and paying the given
// values to to.
func spend(t *testing.T, from account, u ledger.UTXO, to account, values ...float64) *ledger.Transaction {
	tx := ledger.NewTransaction()
	tx.AddInput(u.TxHash, u.Index)
	for _, v := range values {
		tx.AddOutput(v, to.addr)
	}
	require.NoError(t, tx.Sign(0, from.key))
	return tx
}

func newTestValidator(t *testing.T, pool *ledger.UTXOPool) *Validator {
	return NewValidator(pool, common.NewTestEntry(t, "validation"))
}

func TestValidateAcceptsExactSpend(t *testing.T) {
	a, b := newAccount(t), newAccount(t)
	pool, u := fund(t, a, 10)

	v := newTestValidator(t, pool)
	require.True(t, v.Validate(spend(t, a, u, b, 10)))
	require.True(t, v.Validate(spend(t, a, u, b, 4, 5)), "a positive fee is allowed")
}

func TestValidateRejections(t *testing.T) {
	a, b := newAccount(t), newAccount(t)
	pool, u := fund(t, a, 10)
	v := newTestValidator(t, pool)

	t.Run("negative output", func(t *testing.T) {
		tx := spend(t, a, u, b, -1)
		require.False(t, v.Validate(tx))
		require.True(t, IsTxError(v.check(tx), NegativeOutput))
	})

	t.Run("NaN output", func(t *testing.T) {
		tx := spend(t, a, u, b, math.NaN())
		require.False(t, v.Validate(tx))
		require.True(t, IsTxError(v.check(tx), NegativeOutput))
	})

	t.Run("infinite output", func(t *testing.T) {
		tx := spend(t, a, u, b, math.Inf(1))
		require.False(t, v.Validate(tx))
		require.True(t, IsTxError(v.check(tx), NegativeOutput))
	})

	t.Run("outputs overflowing to infinity", func(t *testing.T) {
		tx := spend(t, a, u, b, math.MaxFloat64, math.MaxFloat64)
		require.False(t, v.Validate(tx))
		require.True(t, IsTxError(v.check(tx), Overspend))
	})

	t.Run("bad signature", func(t *testing.T) {
		tx := spend(t, b, u, b, 10)
		require.False(t, v.Validate(tx))
		require.True(t, IsTxError(v.check(tx), BadSignature))
	})

	t.Run("missing signature", func(t *testing.T) {
		tx := ledger.NewTransaction()
		tx.AddInput(u.TxHash, u.Index)
		tx.AddOutput(10, b.addr)
		require.False(t, v.Validate(tx))
	})

	t.Run("overspend", func(t *testing.T) {
		tx := spend(t, a, u, b, 6, 5)
		require.False(t, v.Validate(tx))
		require.True(t, IsTxError(v.check(tx), Overspend))
	})

	t.Run("missing utxo", func(t *testing.T) {
		tx := spend(t, a, ledger.NewUTXO("0XDEADBEEF", 0), b, 1)
		require.False(t, v.Validate(tx))
		require.True(t, IsTxError(v.check(tx), MissingUTXO))
	})

	t.Run("intra-transaction double spend", func(t *testing.T) {
		tx := ledger.NewTransaction()
		tx.AddInput(u.TxHash, u.Index)
		tx.AddInput(u.TxHash, u.Index)
		tx.AddOutput(15, b.addr)
		require.NoError(t, tx.Sign(0, a.key))
		require.NoError(t, tx.Sign(1, a.key))
		require.False(t, v.Validate(tx))
		require.True(t, IsTxError(v.check(tx), DoubleSpend))
	})
}

func TestValidateRejectsNonFiniteInputs(t *testing.T) {
	a, b := newAccount(t), newAccount(t)

	pool := ledger.NewUTXOPool()
	u := ledger.NewUTXO("0XAB", 0)
	pool.AddUTXO(u, ledger.Output{Value: math.NaN(), Address: a.addr})
	v := newTestValidator(t, pool)

	tx := spend(t, a, u, b, 1e9)
	require.False(t, v.Validate(tx))
	require.True(t, IsTxError(v.check(tx), Overspend))
}

func TestCommitRecordsOutputs(t *testing.T) {
	a, b := newAccount(t), newAccount(t)
	pool, u := fund(t, a, 10)
	v := newTestValidator(t, pool)

	tx := spend(t, a, u, b, 4, 6)
	require.True(t, v.Validate(tx))
	v.Commit(tx)

	after := v.UTXOPool()
	require.False(t, after.Contains(u))
	require.Equal(t, 2, after.Len())
	out, ok := after.GetTxOutput(ledger.NewUTXO(tx.Hash(), 1))
	require.True(t, ok)
	require.Equal(t, 6.0, out.Value)
	require.Equal(t, 10.0, after.Balance(b.addr))
}

func TestValidatorOwnsACopy(t *testing.T) {
	a, b := newAccount(t), newAccount(t)
	pool, u := fund(t, a, 10)

	v := newTestValidator(t, pool)
	tx := spend(t, a, u, b, 10)
	require.True(t, v.Validate(tx))
	v.Commit(tx)

	require.True(t, pool.Contains(u), "the caller's pool must not change")

	after := v.UTXOPool()
	require.False(t, after.Contains(u))
	require.True(t, after.Contains(ledger.NewUTXO(tx.Hash(), 0)))
	require.Equal(t, 10.0, after.Balance(b.addr))

	// a committed output can't be spent twice
	require.False(t, v.Validate(spend(t, a, u, b, 10)))
}

func TestSettleBatchResolvesDependencies(t *testing.T) {
	a, b, c, d := newAccount(t), newAccount(t), newAccount(t), newAccount(t)
	pool, u := fund(t, a, 10)

	t1 := spend(t, a, u, b, 10)
	t2 := spend(t, b, ledger.NewUTXO(t1.Hash(), 0), c, 9)
	t3 := spend(t, c, ledger.NewUTXO(t2.Hash(), 0), d, 8)

	orders := [][]*ledger.Transaction{
		{t3, t2, t1},
		{t1, t2, t3},
		{t2, t3, t1},
	}

	for _, order := range orders {
		v := newTestValidator(t, pool)
		accepted := v.SettleBatch(order)
		require.Len(t, accepted, 3)
		require.Equal(t, []string{t1.Hash(), t2.Hash(), t3.Hash()},
			[]string{accepted[0].Hash(), accepted[1].Hash(), accepted[2].Hash()})
		require.Equal(t, 8.0, v.UTXOPool().Balance(d.addr))
	}
}

func TestSettleBatchDoubleSpendIsDeterministic(t *testing.T) {
	a, b, c := newAccount(t), newAccount(t), newAccount(t)
	pool, u := fund(t, a, 10)

	tb := spend(t, a, u, b, 10)
	tc := spend(t, a, u, c, 10)

	winner := tb
	if tc.Hash() < tb.Hash() {
		winner = tc
	}

	for _, order := range [][]*ledger.Transaction{{tb, tc}, {tc, tb}} {
		v := newTestValidator(t, pool)
		accepted := v.SettleBatch(order)
		require.Len(t, accepted, 1)
		require.Equal(t, winner.Hash(), accepted[0].Hash())
	}
}

func TestSettleBatchDropsUnresolvable(t *testing.T) {
	a, b, c := newAccount(t), newAccount(t), newAccount(t)
	pool, u := fund(t, a, 10)

	good := spend(t, a, u, b, 10)
	// depends on a transaction that is never submitted
	orphan := spend(t, b, ledger.NewUTXO("0XCAFE", 0), c, 1)
	// depends on an invalid transaction
	invalid := spend(t, a, u, c, 20)
	child := spend(t, c, ledger.NewUTXO(invalid.Hash(), 0), b, 1)

	v := newTestValidator(t, pool)
	accepted := v.SettleBatch([]*ledger.Transaction{child, orphan, invalid, good})
	require.Len(t, accepted, 1)
	require.Equal(t, good.Hash(), accepted[0].Hash())
}

func TestSettleBatchCollapsesDuplicates(t *testing.T) {
	a, b := newAccount(t), newAccount(t)
	pool, u := fund(t, a, 10)

	tx := spend(t, a, u, b, 10)

	v := newTestValidator(t, pool)
	accepted := v.SettleBatch([]*ledger.Transaction{tx, tx})
	require.Len(t, accepted, 1)
}

func TestSettleBatchEmpty(t *testing.T) {
	pool := ledger.NewUTXOPool()
	v := newTestValidator(t, pool)
	require.Empty(t, v.SettleBatch(nil))
}

// Package ledger defines the data the chain is made of: transactions with
// their inputs and outputs, blocks, unspent outputs and the two pools that
// hold them.
//
// A UTXOPool is a snapshot of the unspent outputs at some point of a branch.
// It is a plain value container and is never shared between owners: every
// hand-off goes through Copy. A TransactionPool, on the other hand, is the
// shared holding area for transactions waiting to be mined and is safe for
// concurrent use.
//
// Identifiers are the blake2b hash of the canonical encoding of an object,
// produced with ugorji/codec so that the bytes are deterministic.
package ledger

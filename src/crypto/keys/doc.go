// Package keys implements the public key cryptography used to own and spend
// outputs.
//
// An output is owned by a verification key: the uncompressed form of a point
// on the secp256k1 curve, as returned by FromPublicKey. Spending it requires a
// signature, by the matching private key, over the spending input's signing
// payload. VerifySignature is the pure function the transaction validator
// relies on.
package keys

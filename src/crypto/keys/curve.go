package keys

import (
	"crypto/elliptic"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

//Order of the secp256k1 curve. Used to verify that a private key is valid.
var secp256k1N, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

//Half the order. Signatures are only valid with s <= secp256k1halfN, so that
//(r, N-s) is not a second valid signature of the same data.
var secp256k1halfN = new(big.Int).Rsh(secp256k1N, 1)

//Curve returns an elliptic.Curve. We use btcsuite's golang implementation of
//secp256k1.
func Curve() elliptic.Curve {
	return btcec.S256() //secp256k1
}

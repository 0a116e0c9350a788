package keys

import (
	"crypto/ecdsa"
	"crypto/rand"
	"math/big"

	"github.com/mosaicnetworks/utxochain/src/crypto"
)

// SignatureSize is the length of an encoded signature: r and s, each padded to
// 32 bytes.
const SignatureSize = 64

// Sign signs the SHA256 digest of data with the private key and returns the
// encoded r||s signature, with s in the lower half of the curve order.
func Sign(priv *ecdsa.PrivateKey, data []byte) ([]byte, error) {
	r, s, err := ecdsa.Sign(rand.Reader, priv, crypto.SHA256(data))
	if err != nil {
		return nil, err
	}
	if s.Cmp(secp256k1halfN) > 0 {
		s = new(big.Int).Sub(secp256k1N, s)
	}
	return EncodeSignature(r, s), nil
}

// Verify verifies that a signature represented by r and s values, is a valid
// signature of the data by an owner of the private key associated with the
// provided public key. High s values are rejected.
func Verify(pub *ecdsa.PublicKey, data []byte, r, s *big.Int) bool {
	if s.Cmp(secp256k1halfN) > 0 {
		return false
	}
	return ecdsa.Verify(pub, crypto.SHA256(data), r, s)
}

// VerifySignature checks an encoded signature of data against the uncompressed
// public key pub. Malformed keys or signatures simply fail verification.
func VerifySignature(pub []byte, data []byte, sig []byte) bool {
	pubKey := ToPublicKey(pub)
	if pubKey == nil {
		return false
	}
	r, s, ok := DecodeSignature(sig)
	if !ok {
		return false
	}
	return Verify(pubKey, data, r, s)
}

// EncodeSignature returns the fixed-size byte representation of a signature.
func EncodeSignature(r, s *big.Int) []byte {
	sig := make([]byte, SignatureSize)
	r.FillBytes(sig[:SignatureSize/2])
	s.FillBytes(sig[SignatureSize/2:])
	return sig
}

// DecodeSignature parses a signature produced by EncodeSignature.
func DecodeSignature(sig []byte) (r, s *big.Int, ok bool) {
	if len(sig) != SignatureSize {
		return nil, nil, false
	}
	r = new(big.Int).SetBytes(sig[:SignatureSize/2])
	s = new(big.Int).SetBytes(sig[SignatureSize/2:])
	return r, s, true
}

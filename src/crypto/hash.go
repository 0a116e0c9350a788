package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/blake2b"
)

// SHA256 returns the SHA256 hash of the data. It is the digest that gets
// signed.
func SHA256(data []byte) []byte {
	hasher := sha256.New()
	hasher.Write(data)
	hash := hasher.Sum(nil)
	return hash
}

// Blake2b256 returns the 32-byte blake2b hash of the data. Transaction and
// block identifiers are computed with it.
func Blake2b256(data []byte) []byte {
	h := blake2b.Sum256(data)
	return h[:]
}

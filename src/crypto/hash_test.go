package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestSHA256(t *testing.T) {
	h := SHA256([]byte("abc"))
	expected := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if hex.EncodeToString(h) != expected {
		t.Fatalf("SHA256(abc) should be %s, not %x", expected, h)
	}
}

func TestBlake2b256(t *testing.T) {
	h1 := Blake2b256([]byte("time for beer"))
	h2 := Blake2b256([]byte("time for beer"))
	h3 := Blake2b256([]byte("time for tea"))

	if len(h1) != 32 {
		t.Fatalf("hash length should be 32, not %d", len(h1))
	}
	if !bytes.Equal(h1, h2) {
		t.Fatal("identical inputs should hash identically")
	}
	if bytes.Equal(h1, h3) {
		t.Fatal("different inputs should not collide")
	}
}

package ledger

import (
	"bytes"
	"fmt"

	"github.com/mosaicnetworks/utxochain/src/common"
	"github.com/mosaicnetworks/utxochain/src/crypto"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
)

//The encoding of anything that gets hashed or signed must be DETERMINISTIC.
//ugorji/codec with Canonical set sorts map keys and keeps struct field order.
func newJSONHandle() *codec.JsonHandle {
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	return jh
}

func marshal(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	enc := codec.NewEncoder(b, newJSONHandle())
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func unmarshal(data []byte, v interface{}) error {
	dec := codec.NewDecoder(bytes.NewBuffer(data), newJSONHandle())
	return dec.Decode(v)
}

// hashOf returns the identifier of v: the hex encoded blake2b hash of its
// canonical encoding.
func hashOf(v interface{}) (string, error) {
	data, err := marshal(v)
	if err != nil {
		return "", err
	}
	return common.EncodeToString(crypto.Blake2b256(data)), nil
}

// identifier is hashOf for values that must always get an identifier. If v
// cannot be encoded, the failure is logged and the identifier is computed over
// the Go syntax representation of v instead, which still differs between
// distinct values.
func identifier(v interface{}) string {
	h, err := hashOf(v)
	if err == nil {
		return h
	}
	logrus.WithError(err).WithField("prefix", "ledger").Warn("Cannot encode value, hashing its Go representation")
	return common.EncodeToString(crypto.Blake2b256([]byte(fmt.Sprintf("%#v", v))))
}

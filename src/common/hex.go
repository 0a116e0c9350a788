package common

import (
	"encoding/hex"
	"fmt"
	"strings"
)

//EncodeToString returns the UPPERCASE string representation of hexBytes with
//the 0X prefix
func EncodeToString(hexBytes []byte) string {
	return fmt.Sprintf("0X%X", hexBytes)
}

//DecodeFromString converts a hex string with 0X prefix to a byte slice. The
//prefix is optional.
func DecodeFromString(hexString string) ([]byte, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(hexString, "0X"), "0x")
	return hex.DecodeString(s)
}

//Shorten returns the first n characters of a hash string after its prefix, for
//log output.
func Shorten(hash string, n int) string {
	s := strings.TrimPrefix(hash, "0X")
	if len(s) <= n {
		return s
	}
	return s[:n]
}

package session

import (
	"crypto/rand"
	"math/big"
)

// codeAlphabet leaves out characters that read ambiguously on a projector
// (I, O, 0, 1).
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLen      = 5
)

// GenerateCode returns a fresh 5-character attendance code.
func GenerateCode() string {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, codeLen)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf)
}

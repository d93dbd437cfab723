package utils

import (
	"crypto/rand"
	"math/big"
)

// CodeAlphabet is the character set for session join codes.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the length of a session join code.
const CodeLength = 6

// GenerateCode returns a random code of n uppercase alphanumeric characters.
func GenerateCode(n int) (string, error) {
	if n <= 0 {
		n = CodeLength
	}
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(CodeAlphabet))))
		if err != nil {
			return "", err
		}
		b[i] = CodeAlphabet[idx.Int64()]
	}
	return string(b), nil
}

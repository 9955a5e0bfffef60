package lifecycle

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeDigits = "0123456789"

// Share codes skip lookalike characters since people retype them.
const shareAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// SignatureCode generates the numeric one-time code mailed to a party.
func SignatureCode(length int) (string, error) {
	return randomString(codeDigits, length)
}

// ShareCode generates the token embedded in template share links.
func ShareCode(length int) (string, error) {
	return randomString(shareAlphabet, length)
}

func randomString(alphabet string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length %d", length)
	}
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate random code: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

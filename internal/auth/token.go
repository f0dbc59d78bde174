package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// TokenLen is the default token size in bytes. 128 bits of entropy makes
// collisions negligible; the store's primary-key constraint backs that
// assumption up at essentially no cost.
const TokenLen = 16

// NewToken returns n cryptographically random bytes, hex encoded. Used for
// session IDs (where the token is the bearer credential) and generated
// record IDs.
func NewToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails if the platform's entropy source is
		// broken; minting a guessable token instead is not an option.
		panic("auth: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Passwords are stored as "pbkdf2$<iterations>$<saltHex>$<dkHex>". The format
// is the durable on-disk contract; existing hashes must keep verifying across
// releases.
const (
	hashAlgorithm  = "pbkdf2"
	hashIterations = 100_000
	saltLen        = 16
	keyLen         = 32

	// Iteration bounds accepted by VerifyPassword. Anything outside this
	// window is treated as a corrupted or tampered hash and fails closed.
	minIterations = 10_000
	maxIterations = 100_000
)

// encodedHash is the parsed form of a stored password hash. Raw delimited
// strings never travel past parseEncodedHash.
type encodedHash struct {
	algorithm  string
	iterations int
	salt       []byte
	key        []byte
}

// HashPassword derives a PBKDF2-SHA256 hash of the password with a fresh
// random salt and returns the encoded string for storage.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, hashIterations, keyLen, sha256.New)

	return strings.Join([]string{
		hashAlgorithm,
		strconv.Itoa(hashIterations),
		hex.EncodeToString(salt),
		hex.EncodeToString(key),
	}, "$"), nil
}

// VerifyPassword reports whether password matches the stored encoded hash.
// Malformed input never produces an error: a hash that doesn't parse, names
// a different algorithm, or carries an out-of-bounds iteration count is
// simply not a match.
func VerifyPassword(password, stored string) bool {
	parsed, ok := parseEncodedHash(stored)
	if !ok {
		return false
	}

	// The derived length is fixed by the format, never taken from the
	// stored field: a truncated key must not shrink the comparison.
	derived := pbkdf2.Key([]byte(password), parsed.salt, parsed.iterations, keyLen, sha256.New)

	return subtle.ConstantTimeCompare(derived, parsed.key) == 1
}

func parseEncodedHash(stored string) (encodedHash, bool) {
	parts := strings.Split(stored, "$")
	if len(parts) != 4 {
		return encodedHash{}, false
	}
	if parts[0] != hashAlgorithm {
		return encodedHash{}, false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations < minIterations || iterations > maxIterations {
		return encodedHash{}, false
	}

	salt, err := hex.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return encodedHash{}, false
	}

	key, err := hex.DecodeString(parts[3])
	if err != nil || len(key) != keyLen {
		return encodedHash{}, false
	}

	return encodedHash{
		algorithm:  parts[0],
		iterations: iterations,
		salt:       salt,
		key:        key,
	}, true
}

package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 16
	KeySize    = 32
	Iterations = 120000
)

const hashDelimiter = ":"

// HashPassword derives a PBKDF2-HMAC-SHA256 key under a fresh random salt and
// encodes it as hex(salt):hex(key).
func HashPassword(password string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate password salt: %w", err)
	}

	key := deriveKey(password, salt)
	return hex.EncodeToString(salt) + hashDelimiter + hex.EncodeToString(key), nil
}

// VerifyPassword reports whether candidate matches the stored record. Records
// that cannot be decoded never match.
func VerifyPassword(stored string, candidate string) bool {
	saltHex, keyHex, ok := strings.Cut(strings.TrimSpace(stored), hashDelimiter)
	if !ok || strings.Contains(keyHex, hashDelimiter) {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return false
	}
	expected, err := hex.DecodeString(keyHex)
	if err != nil || len(expected) == 0 {
		return false
	}

	derived := pbkdf2.Key([]byte(candidate), salt, Iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, KeySize, sha256.New)
}

// Package password hashes and verifies user credentials.
//
// The encoded form is base64(salt || key): a 16-byte random salt followed by
// a 32-byte PBKDF2-SHA256 key, 10 000 iterations. Hashing the same password
// twice yields different strings because the salt is fresh each time.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 16
	keyLength  = 32
	iterations = 10000
)

// Hash derives a salted hash for storage. The result is opaque to callers;
// only Verify can interpret it.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)

	encoded := make([]byte, 0, saltLength+keyLength)
	encoded = append(encoded, salt...)
	encoded = append(encoded, key...)
	return base64.StdEncoding.EncodeToString(encoded), nil
}

// Verify reports whether password matches the stored encoded hash. It fails
// closed: malformed input (bad base64, wrong payload length, empty string)
// yields false, never an error. The key comparison is constant-time.
func Verify(password, encoded string) bool {
	if encoded == "" {
		return false
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) != saltLength+keyLength {
		return false
	}

	salt := raw[:saltLength]
	stored := raw[saltLength:]

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return subtle.ConstantTimeCompare(key, stored) == 1
}

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"

	"github.com/pkg/errors"
)

// tokenLength is the raw token size in bytes (256 bits).
const tokenLength = 32

// TokenPair holds a freshly minted session token. Token goes back to the
// client; only Hash is ever stored.
type TokenPair struct {
	Token string
	Hash  string
}

// NewTokenPair generates a random session token and its storage hash.
func NewTokenPair() (*TokenPair, error) {
	raw := make([]byte, tokenLength)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.Wrap(err, "generate token")
	}
	token := base64.RawURLEncoding.EncodeToString(raw)
	return &TokenPair{Token: token, Hash: HashToken(token)}, nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// VerifyToken reports whether token matches storedHash using a
// constant-time comparison.
func VerifyToken(token, storedHash string) (bool, error) {
	if token == "" || storedHash == "" {
		return false, errors.New("token and hash cannot be empty")
	}
	return subtle.ConstantTimeCompare([]byte(HashToken(token)), []byte(storedHash)) == 1, nil
}

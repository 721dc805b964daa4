package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HashAndVerify(t *testing.T) {
	h := NewArgon2()

	encoded, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := h.Verify("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2HashIsSalted(t *testing.T) {
	h := NewArgon2()
	a, err := h.Hash("same input")
	require.NoError(t, err)
	b, err := h.Hash("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestArgon2VerifyRejectsMalformedHash(t *testing.T) {
	h := NewArgon2()
	for _, bad := range []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536$c2FsdA$aGFzaA",
	} {
		_, err := h.Verify("pw", bad)
		assert.Error(t, err, "hash %q", bad)
	}
}

func TestArgon2VerifyOtherParameters(t *testing.T) {
	// Hashes made with different cost parameters still verify, since the
	// parameters ride along in the encoded form.
	weak := &Argon2{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	encoded, err := weak.Hash("pw")
	require.NoError(t, err)

	ok, err := NewArgon2().Verify("pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenPair(t *testing.T) {
	tp, err := NewTokenPair()
	require.NoError(t, err)
	assert.NotEmpty(t, tp.Token)
	assert.Equal(t, HashToken(tp.Token), tp.Hash)
	assert.NotEqual(t, tp.Token, tp.Hash)

	// Tokens are unique.
	tp2, err := NewTokenPair()
	require.NoError(t, err)
	assert.NotEqual(t, tp.Token, tp2.Token)
}

func TestVerifyToken(t *testing.T) {
	tp, err := NewTokenPair()
	require.NoError(t, err)

	ok, err := VerifyToken(tp.Token, tp.Hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyToken("tampered", tp.Hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyToken("", tp.Hash)
	assert.Error(t, err)
	_, err = VerifyToken(tp.Token, "")
	assert.Error(t, err)
}

package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, pw := range []string{"password123", "", "ünïcødé-πass", strings.Repeat("x", 72)} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		assert.True(t, h.Verify(pw, hash), "password %q should verify", pw)
		assert.False(t, h.Verify("!"+pw, hash))
	}
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("secret")
	require.NoError(t, err)
	second, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret", first))
	assert.True(t, h.Verify("secret", second))
}

func TestPasswordHasher_TruncatesBeyond72Bytes(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	base := strings.Repeat("a", 72)

	hash, err := h.Hash(base + "tail-one")
	require.NoError(t, err)

	assert.True(t, h.Verify(base+"tail-one", hash))
	assert.True(t, h.Verify(base+"another-tail", hash))
	assert.True(t, h.Verify(base, hash))
	assert.False(t, h.Verify(base[:71], hash))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("secret", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("secret", ""))
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(99).cost)
}

package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, truncated, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.False(t, truncated)

	assert.True(t, VerifyPassword("correct horse", hash))
	assert.False(t, VerifyPassword("wrong horse", hash))
}

func TestHashTruncatesLongPasswords(t *testing.T) {
	prefix := strings.Repeat("п", 36) // 72 bytes in UTF-8
	hash, truncated, err := HashPassword(prefix + "suffix-one")
	require.NoError(t, err)
	assert.True(t, truncated)

	assert.True(t, VerifyPassword(prefix+"suffix-one", hash))
	assert.True(t, VerifyPassword(prefix+"a-completely-different-suffix", hash))
	assert.True(t, VerifyPassword(prefix, hash))
}

func TestVerifyNeverFailsLoudly(t *testing.T) {
	assert.False(t, VerifyPassword("secret", ""))
	assert.False(t, VerifyPassword("secret", "not-a-bcrypt-hash"))
	assert.False(t, VerifyPassword("secret", "$2b$12$tooshort"))
}

func TestNeedsTruncation(t *testing.T) {
	assert.False(t, NeedsTruncation(strings.Repeat("a", MaxPasswordBytes)))
	assert.True(t, NeedsTruncation(strings.Repeat("a", MaxPasswordBytes+1)))
}

package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateKey_GeneratesOncePerInstall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "signing.key")

	first, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Len(t, first, 2*keyBytes)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	again, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Equal(t, first, again, "the stored key is reused")

	other, err := LoadOrCreateKey(filepath.Join(t.TempDir(), "signing.key"))
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "each install gets its own key")
}

func TestLoadOrCreateKey_RejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signing.key")
	require.NoError(t, os.WriteFile(path, []byte("short\n"), 0600))

	_, err := LoadOrCreateKey(path)
	assert.ErrorContains(t, err, "too short")
}

func TestLoadOrCreateKey_TokensFromAnotherInstallRejected(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "session.jwt")

	mine, err := LoadOrCreateKey(filepath.Join(dir, "signing.key"))
	require.NoError(t, err)
	theirs, err := LoadOrCreateKey(filepath.Join(t.TempDir(), "signing.key"))
	require.NoError(t, err)

	require.NoError(t, NewTokenStore(tokenPath, theirs).Save("user-1"))
	_, err = NewTokenStore(tokenPath, mine).Load()
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshanss504/job-contractor/internal/domain"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "state"))
	user := domain.User{ID: 7, Name: "Ada", Role: domain.RoleContractor}

	require.NoError(t, store.Save("tok-xyz", user))

	token, loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", token)
	assert.Equal(t, user.ID, loaded.ID)
	assert.Equal(t, user.Role, loaded.Role)
}

func TestLoadWithoutSession(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "state"))
	_, _, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadEmptyTokenIsNoSession(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("  \n"), 0o600))

	_, _, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadMalformedUserIsNoSession(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("tok"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600))

	_, _, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, store.Save("tok", domain.User{ID: 1, Name: "Bea", Role: domain.RoleAgent}))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	_, _, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

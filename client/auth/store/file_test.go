package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestFileStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	first := NewFileStore(path)
	pair := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"}
	require.NoError(t, first.Save(pair))

	// a fresh store against the same path sees the persisted pair
	second := NewFileStore(path)
	loaded, err := second.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
}

func TestFileStore_MissingFileMeansSignedOut(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStore_CorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileStore(path)
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStore_ClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s := NewFileStore(path)
	require.NoError(t, s.Save(&oauth2.Token{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, s.Clear())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// idempotent
	require.NoError(t, s.Clear())
}

func TestFileStore_SaveReplacesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s := NewFileStore(path)
	require.NoError(t, s.Save(&oauth2.Token{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, s.Save(&oauth2.Token{AccessToken: "a2", RefreshToken: "r2"}))

	loaded, err := NewFileStore(path).Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "a2", loaded.AccessToken)
	assert.Equal(t, "r2", loaded.RefreshToken)

	// no leftover temp file from the atomic write
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

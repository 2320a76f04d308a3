package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/knowtest/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = fs.Load(ctx, "brave-fox-01")
	require.ErrorIs(t, err, session.ErrNotFound)

	want := testSnapshot("brave-fox-01")
	require.NoError(t, fs.Save(ctx, "brave-fox-01", want))
	assert.FileExists(t, filepath.Join(dir, "brave-fox-01_state.yaml"))

	got, err := fs.Load(ctx, "brave-fox-01")
	require.NoError(t, err)
	assert.Equal(t, want.Topics, got.Topics)
	assert.Equal(t, want.Level, got.Level)
	assert.Equal(t, want.Results, got.Results)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_Corrupt(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad_state.yaml"), []byte("topics: [unterminated"), 0o644))

	_, err = fs.Load(context.Background(), "bad")
	var perr *session.PersistenceError
	require.True(t, errors.As(err, &perr), "want *PersistenceError, got %v", err)

	// List skips unreadable files.
	require.NoError(t, fs.Save(context.Background(), "good", testSnapshot("good")))
	infos, err := fs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "good", infos[0].Name)
	assert.Equal(t, 2, infos[0].TopicCount)
}

func TestFileStore_Delete(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, "t1", testSnapshot("t1")))
	require.NoError(t, fs.Delete(ctx, "t1"))
	assert.ErrorIs(t, fs.Delete(ctx, "t1"), session.ErrNotFound)
	assert.Error(t, fs.Delete(ctx, "../etc/passwd"))
}

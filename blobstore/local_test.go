package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	data := []byte(`{"facts":{"genre":"rock"},"measures":{"plays":1}}`)
	require.NoError(t, store.Put(ctx, "2024/01/part-0001.jsonl", data))
	require.NoError(t, store.Put(ctx, "2024/01/part-0000.jsonl", []byte("a")))
	require.NoError(t, store.Put(ctx, "2024/02/part-0000.jsonl", []byte("b")))
	require.NoError(t, store.Put(ctx, "other.jsonl", []byte("c")))

	blob, err := store.Open(ctx, "2024/01/part-0001.jsonl")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())
	got, err := io.ReadAll(blob)
	require.NoError(t, err)
	require.NoError(t, blob.Close())
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "2024/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024/01/part-0000.jsonl",
		"2024/01/part-0001.jsonl",
		"2024/02/part-0000.jsonl",
	}, names)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, names, 4)

	names, err = store.List(ctx, "1999/")
	require.NoError(t, err)
	assert.Empty(t, names)

	// Overwrite.
	require.NoError(t, store.Put(ctx, "other.jsonl", []byte("replaced")))
	got, err = ReadAll(ctx, store, "other.jsonl")
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(got))

	_, err = store.Open(ctx, "missing.jsonl")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = ReadAll(ctx, store, "missing.jsonl")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStore_PutCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 'z'

	got, err := ReadAll(ctx, store, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_WritesBelowRoot(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	require.NoError(t, store.Put(context.Background(), "a/b.jsonl", []byte("x")))

	data, err := os.ReadFile(filepath.Join(dir, "a", "b.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "a"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "x", nil), context.Canceled)
	_, err := store.Open(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

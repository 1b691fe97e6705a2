package blobstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("PutOpenRoundtrip", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "datasets/points.bin", []byte("payload")))

		blob, err := store.Open(ctx, "datasets/points.bin")
		require.NoError(t, err)
		defer blob.Close()

		assert.Equal(t, int64(7), blob.Size())

		data, err := io.ReadAll(blob)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "missing")
		assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "snap", []byte("v1")))
		require.NoError(t, store.Put(ctx, "snap", []byte("v2")))

		blob, err := store.Open(ctx, "snap")
		require.NoError(t, err)
		defer blob.Close()

		data, err := io.ReadAll(blob)
		require.NoError(t, err)
		assert.Equal(t, "v2", string(data))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "runs/1", []byte("a")))
		require.NoError(t, store.Put(ctx, "runs/2", []byte("b")))

		names, err := store.List(ctx, "runs/")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"runs/1", "runs/2"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "gone", []byte("x")))
		require.NoError(t, store.Delete(ctx, "gone"))

		_, err := store.Open(ctx, "gone")
		assert.True(t, errors.Is(err, ErrNotFound))

		assert.NoError(t, store.Delete(ctx, "gone"), "double delete is not an error")
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("mutable")
	require.NoError(t, store.Put(ctx, "k", data))
	data[0] = 'X'

	blob, err := store.Open(ctx, "k")
	require.NoError(t, err)
	defer blob.Close()

	got, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "mutable", string(got))
}

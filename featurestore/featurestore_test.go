package featurestore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/parclust/blobstore"
	"github.com/hupe1980/parclust/codec"
	"github.com/hupe1980/parclust/model"
	"github.com/hupe1980/parclust/resource"
)

func testDataset(n, dim int) *Dataset {
	ds := &Dataset{Dim: dim}
	for i := 0; i < n; i++ {
		vec := make([]float32, dim)
		for d := range vec {
			vec[d] = float32(i*dim + d)
		}
		ds.Points = append(ds.Points, model.Point{
			ID:     fmt.Sprintf("p%04d", i),
			Vector: vec,
		})
	}
	return ds
}

func TestDatasetRoundtrip(t *testing.T) {
	ctx := context.Background()

	compressions := []Compression{CompressionNone, CompressionLZ4, CompressionZstd}

	for _, comp := range compressions {
		t.Run(comp.String(), func(t *testing.T) {
			store := New(blobstore.NewMemoryStore(),
				WithCompression(comp),
				WithShardSize(16),
			)

			want := testDataset(100, 3)

			require.NoError(t, store.SaveDataset(ctx, "iris", want))

			got, err := store.LoadDataset(ctx, "iris")
			require.NoError(t, err)

			assert.Equal(t, want.Dim, got.Dim)
			assert.Equal(t, want.Points, got.Points)
		})
	}
}

func TestDatasetSharding(t *testing.T) {
	ctx := context.Background()

	blobs := blobstore.NewMemoryStore()
	store := New(blobs, WithShardSize(16))

	require.NoError(t, store.SaveDataset(ctx, "iris", testDataset(100, 2)))

	names, err := blobs.List(ctx, "iris")
	require.NoError(t, err)

	// 100 points at 16 per shard is 7 shards, plus the manifest.
	assert.Len(t, names, 8)
	assert.Contains(t, names, "iris/manifest")
	assert.Contains(t, names, "iris/shard-00006")
}

func TestDatasetDimensionMismatch(t *testing.T) {
	ctx := context.Background()

	store := New(blobstore.NewMemoryStore())

	err := store.SaveDataset(ctx, "bad", &Dataset{
		Dim: 3,
		Points: []model.Point{
			{ID: "a", Vector: []float32{1, 2}},
		},
	})
	require.Error(t, err)
}

func TestDatasetNotFound(t *testing.T) {
	ctx := context.Background()

	store := New(blobstore.NewMemoryStore())

	_, err := store.LoadDataset(ctx, "missing")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestDeleteDataset(t *testing.T) {
	ctx := context.Background()

	blobs := blobstore.NewMemoryStore()
	store := New(blobs, WithShardSize(16))

	require.NoError(t, store.SaveDataset(ctx, "iris", testDataset(50, 2)))
	require.NoError(t, store.DeleteDataset(ctx, "iris"))

	names, err := blobs.List(ctx, "iris")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSnapshotRoundtrip(t *testing.T) {
	ctx := context.Background()

	store := New(blobstore.NewMemoryStore(),
		WithCodec(codec.JSON{}),
		WithCompression(CompressionZstd),
	)

	want := &Snapshot{
		K:    2,
		Runs: 2,
		Centroids: model.CentroidCollection{
			{{0, 0.5}, {10, 0.5}},
			{{0.25, 0.5}, {10, 0.5}},
		},
		Costs:      []float64{1.0, 1.125},
		BestRun:    0,
		Iterations: 3,
	}

	require.NoError(t, store.SaveSnapshot(ctx, "snapshots/v1", want))

	got, err := store.LoadSnapshot(ctx, "snapshots/v1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSnapshotCodecSelfDescribing(t *testing.T) {
	ctx := context.Background()

	blobs := blobstore.NewMemoryStore()

	// Written with encoding/json, read back by a store configured for
	// go-json. The envelope names the codec, so this must work.
	writer := New(blobs, WithCodec(codec.JSON{}))
	reader := New(blobs, WithCodec(codec.GoJSON{}))

	want := &Snapshot{K: 1, Runs: 1, Centroids: model.CentroidCollection{{{1, 2}}}, Costs: []float64{0}}

	require.NoError(t, writer.SaveSnapshot(ctx, "snap", want))

	got, err := reader.LoadSnapshot(ctx, "snap")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEnvelopeErrors(t *testing.T) {
	t.Run("Garbage", func(t *testing.T) {
		var snap Snapshot
		err := decodeEnvelope([]byte("not an envelope"), &snap)
		require.ErrorIs(t, err, ErrInvalidEnvelope)
	})

	t.Run("Short", func(t *testing.T) {
		var snap Snapshot
		err := decodeEnvelope([]byte{'P', 'C'}, &snap)
		require.ErrorIs(t, err, ErrInvalidEnvelope)
	})

	t.Run("UnknownCodec", func(t *testing.T) {
		data := append([]byte{'P', 'C', 'F', 'S', envelopeVersion, byte(CompressionNone), 3}, []byte("xml")...)

		var snap Snapshot
		err := decodeEnvelope(data, &snap)
		require.ErrorIs(t, err, ErrUnknownCodec)
	})

	t.Run("BadVersion", func(t *testing.T) {
		data := []byte{'P', 'C', 'F', 'S', 99, byte(CompressionNone), 0}

		var snap Snapshot
		err := decodeEnvelope(data, &snap)
		require.ErrorIs(t, err, ErrInvalidEnvelope)
	})
}

func TestStoreWithController(t *testing.T) {
	ctx := context.Background()

	rc := resource.NewController(resource.Config{MaxLoaders: 2})

	store := New(blobstore.NewMemoryStore(),
		WithController(rc),
		WithShardSize(8),
	)

	want := testDataset(64, 2)

	require.NoError(t, store.SaveDataset(ctx, "limited", want))

	got, err := store.LoadDataset(ctx, "limited")
	require.NoError(t, err)
	assert.Equal(t, want.Points, got.Points)
}

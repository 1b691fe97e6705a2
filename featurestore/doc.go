// Package featurestore persists datasets and centroid snapshots on a
// blobstore.BlobStore.
//
// Every blob carries a small self-describing envelope (magic, format
// version, compression, codec name) so data written with one codec or
// compression setting can be read back regardless of how the reading
// store is configured.
//
// Datasets are split into fixed-size shards that are written and read
// in parallel, subject to the loader and IO limits of an optional
// resource.Controller.
//
// # Basic Usage
//
//	store := featurestore.New(blobstore.NewMemoryStore(),
//	    featurestore.WithCompression(featurestore.CompressionZstd),
//	)
//
//	err := store.SaveDataset(ctx, "iris", &featurestore.Dataset{Dim: 4, Points: points})
//	ds, err := store.LoadDataset(ctx, "iris")
package featurestore

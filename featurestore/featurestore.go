package featurestore

import (
	"context"
	"fmt"
	"io"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/parclust/blobstore"
	"github.com/hupe1980/parclust/codec"
	"github.com/hupe1980/parclust/model"
	"github.com/hupe1980/parclust/resource"
)

const defaultShardSize = 4096

// Dataset is a persisted point set.
type Dataset struct {
	// Dim is the dimensionality shared by all points.
	Dim int `json:"dim"`

	// Points holds the dataset in insertion order.
	Points []model.Point `json:"points"`
}

// Snapshot is a persisted clustering result.
type Snapshot struct {
	K         int                      `json:"k"`
	Runs      int                      `json:"runs"`
	Centroids model.CentroidCollection `json:"centroids"`
	Costs     []float64                `json:"costs"`
	BestRun   int                      `json:"bestRun"`

	// Iterations is the refinement iteration count at convergence.
	Iterations int `json:"iterations"`
}

// manifest indexes the shards of a persisted dataset. It is written
// last, so a readable manifest implies all shards exist.
type manifest struct {
	Dim    int      `json:"dim"`
	Count  int      `json:"count"`
	Shards []string `json:"shards"`
}

type shard struct {
	Points []model.Point `json:"points"`
}

// Options configures a Store.
type Options struct {
	// Codec encodes payloads. Defaults to codec.Default.
	Codec codec.Codec

	// Compression applied to payloads. Defaults to CompressionNone.
	Compression Compression

	// Controller bounds loader concurrency and IO throughput.
	// Nil means unlimited.
	Controller *resource.Controller

	// ShardSize is the number of points per dataset shard.
	ShardSize int
}

// WithCodec sets the payload codec.
func WithCodec(c codec.Codec) func(*Options) {
	return func(o *Options) {
		o.Codec = c
	}
}

// WithCompression sets the payload compression.
func WithCompression(c Compression) func(*Options) {
	return func(o *Options) {
		o.Compression = c
	}
}

// WithController sets the resource controller.
func WithController(rc *resource.Controller) func(*Options) {
	return func(o *Options) {
		o.Controller = rc
	}
}

// WithShardSize sets the number of points per dataset shard.
func WithShardSize(n int) func(*Options) {
	return func(o *Options) {
		o.ShardSize = n
	}
}

// Store persists datasets and snapshots on a BlobStore.
type Store struct {
	blobs blobstore.BlobStore
	opts  Options
}

// New creates a feature store on top of the given blob store.
func New(blobs blobstore.BlobStore, optFns ...func(*Options)) *Store {
	opts := Options{
		Codec:       codec.Default,
		Compression: CompressionNone,
		ShardSize:   defaultShardSize,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.ShardSize <= 0 {
		opts.ShardSize = defaultShardSize
	}

	return &Store{
		blobs: blobs,
		opts:  opts,
	}
}

// SaveDataset writes the dataset under the given name. Shards are
// uploaded in parallel; the manifest goes last so concurrent readers
// never observe a partial dataset.
func (s *Store) SaveDataset(ctx context.Context, name string, ds *Dataset) error {
	for i, p := range ds.Points {
		if p.Dim() != ds.Dim {
			return fmt.Errorf("featurestore: point %d has dimension %d, want %d", i, p.Dim(), ds.Dim)
		}
	}

	n := len(ds.Points)
	size := s.opts.ShardSize

	m := manifest{
		Dim:   ds.Dim,
		Count: n,
	}
	for lo := 0; lo < n; lo += size {
		m.Shards = append(m.Shards, path.Join(name, fmt.Sprintf("shard-%05d", len(m.Shards))))
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, shardName := range m.Shards {
		lo := i * size
		hi := min(lo+size, n)

		g.Go(func() error {
			if err := s.opts.Controller.AcquireLoader(gctx); err != nil {
				return err
			}
			defer s.opts.Controller.ReleaseLoader()

			return s.put(gctx, shardName, &shard{Points: ds.Points[lo:hi]})
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return s.put(ctx, path.Join(name, "manifest"), &m)
}

// LoadDataset reads a dataset previously written by SaveDataset.
// Shards are fetched in parallel subject to the loader limit.
func (s *Store) LoadDataset(ctx context.Context, name string) (*Dataset, error) {
	var m manifest
	if err := s.get(ctx, path.Join(name, "manifest"), &m); err != nil {
		return nil, err
	}

	shards := make([]shard, len(m.Shards))

	g, gctx := errgroup.WithContext(ctx)

	for i, shardName := range m.Shards {
		g.Go(func() error {
			if err := s.opts.Controller.AcquireLoader(gctx); err != nil {
				return err
			}
			defer s.opts.Controller.ReleaseLoader()

			return s.get(gctx, shardName, &shards[i])
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := &Dataset{
		Dim:    m.Dim,
		Points: make([]model.Point, 0, m.Count),
	}
	for _, sh := range shards {
		ds.Points = append(ds.Points, sh.Points...)
	}

	if len(ds.Points) != m.Count {
		return nil, fmt.Errorf("featurestore: dataset %s has %d points, manifest says %d", name, len(ds.Points), m.Count)
	}

	return ds, nil
}

// DeleteDataset removes a dataset and all of its shards.
func (s *Store) DeleteDataset(ctx context.Context, name string) error {
	names, err := s.blobs.List(ctx, name)
	if err != nil {
		return err
	}

	for _, n := range names {
		if err := s.blobs.Delete(ctx, n); err != nil {
			return err
		}
	}

	return nil
}

// SaveSnapshot writes a clustering snapshot under the given name.
func (s *Store) SaveSnapshot(ctx context.Context, name string, snap *Snapshot) error {
	return s.put(ctx, name, snap)
}

// LoadSnapshot reads a snapshot previously written by SaveSnapshot.
func (s *Store) LoadSnapshot(ctx context.Context, name string) (*Snapshot, error) {
	var snap Snapshot
	if err := s.get(ctx, name, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) put(ctx context.Context, name string, v any) error {
	data, err := encodeEnvelope(s.opts.Codec, s.opts.Compression, v)
	if err != nil {
		return err
	}

	if err := s.opts.Controller.AcquireIO(ctx, len(data)); err != nil {
		return err
	}

	return s.blobs.Put(ctx, name, data)
}

func (s *Store) get(ctx context.Context, name string, v any) error {
	blob, err := s.blobs.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	data, err := io.ReadAll(resource.NewRateLimitedReader(ctx, blob, s.opts.Controller))
	if err != nil {
		return err
	}

	return decodeEnvelope(data, v)
}

package parclust

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/parclust/model"
)

func twoBlobs() []model.Point {
	return []model.Point{
		{ID: "a", Vector: []float32{0, 0}},
		{ID: "b", Vector: []float32{0, 1}},
		{ID: "c", Vector: []float32{10, 0}},
		{ID: "d", Vector: []float32{10, 1}},
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		k       int
		optFns  []Option
		wantErr error
	}{
		{name: "zero k", k: 0, wantErr: ErrInvalidK},
		{name: "negative k", k: -1, wantErr: ErrInvalidK},
		{name: "zero runs", k: 2, optFns: []Option{WithRuns(0)}, wantErr: ErrInvalidRuns},
		{name: "zero threshold", k: 2, optFns: []Option{WithConvergenceThreshold(0)}, wantErr: ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.k, tt.optFns...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFit(t *testing.T) {
	ctx := context.Background()

	km, err := New(2,
		WithRuns(4),
		WithConvergenceThreshold(0.01),
		WithRandomSeed(42),
		WithWorkers(2),
	)
	require.NoError(t, err)

	result, err := km.Fit(ctx, twoBlobs())
	require.NoError(t, err)

	require.Len(t, result.Costs, 4)
	assert.Positive(t, result.Iterations)
	assert.InDelta(t, 1.0, result.Costs[result.BestRun], 1e-3)

	best := result.Best()
	require.Equal(t, 2, best.K())
	for _, c := range best {
		assert.InDelta(t, 0.5, c[1], 1e-6, "cluster means sit mid-pair on y")
	}
}

func TestFitDeterminism(t *testing.T) {
	ctx := context.Background()
	points := twoBlobs()

	fit := func(workers int) *Result {
		km, err := New(2,
			WithRuns(3),
			WithRandomSeed(7),
			WithWorkers(workers),
		)
		require.NoError(t, err)

		result, err := km.Fit(ctx, points)
		require.NoError(t, err)
		return result
	}

	a := fit(1)
	b := fit(4)

	assert.Equal(t, a.Centroids, b.Centroids)
	assert.Equal(t, a.Costs, b.Costs)
	assert.Equal(t, a.BestRun, b.BestRun)
}

func TestFitInsufficientData(t *testing.T) {
	km, err := New(5, WithRandomSeed(1))
	require.NoError(t, err)

	_, err = km.Fit(context.Background(), twoBlobs())

	var ie *ErrInsufficientData
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 4, ie.N)
	assert.Equal(t, 5, ie.K)
}

func TestFitNonConvergence(t *testing.T) {
	km, err := New(2,
		WithRuns(2),
		WithRandomSeed(13),
		WithConvergenceThreshold(1e-12),
		WithMaxIterations(1),
	)
	require.NoError(t, err)

	// Clustered noise around two far blobs usually needs more than one
	// iteration at an impossibly tight threshold.
	points := []model.Point{
		{ID: "a", Vector: []float32{0, 0}},
		{ID: "b", Vector: []float32{0, 3}},
		{ID: "c", Vector: []float32{1, 1}},
		{ID: "d", Vector: []float32{50, 0}},
		{ID: "e", Vector: []float32{50, 3}},
		{ID: "f", Vector: []float32{51, 1}},
	}

	result, err := km.Fit(context.Background(), points)

	var nc *ErrNonConvergence
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, 1, nc.Iterations)

	require.NotNil(t, result, "best state so far is surfaced")
	require.Len(t, result.Costs, 2)
	assert.Equal(t, 1, result.Iterations)
}

func TestSeedDimensionMismatch(t *testing.T) {
	km, err := New(1, WithRandomSeed(1))
	require.NoError(t, err)

	points := []model.Point{
		{ID: "a", Vector: []float32{0, 0}},
		{ID: "b", Vector: []float32{0, 0, 0}},
	}

	_, err = km.Seed(context.Background(), points)

	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
	assert.Equal(t, "b", dm.ID)
}

func TestNearestEmptyCollection(t *testing.T) {
	km, err := New(1)
	require.NoError(t, err)

	_, err = km.Nearest([]float32{0}, model.CentroidCollection{})
	assert.ErrorIs(t, err, ErrEmptyCentroids)
}

func TestCostEmptyCollection(t *testing.T) {
	km, err := New(1)
	require.NoError(t, err)

	_, err = km.Cost(context.Background(), twoBlobs(), model.CentroidCollection{})
	assert.ErrorIs(t, err, ErrEmptyCentroids)
}

func TestMetricsCollection(t *testing.T) {
	collector := &BasicMetricsCollector{}

	km, err := New(2,
		WithRuns(2),
		WithRandomSeed(3),
		WithMetricsCollector(collector),
	)
	require.NoError(t, err)

	_, err = km.Fit(context.Background(), twoBlobs())
	require.NoError(t, err)

	assert.Equal(t, int64(1), collector.SeedingCount.Load())
	assert.Equal(t, int64(1), collector.RefineCount.Load())
	assert.Equal(t, int64(1), collector.CostCount.Load())
	assert.Positive(t, collector.IterationCount.Load())
	assert.Zero(t, collector.SeedingErrors.Load())
}

func TestMemberships(t *testing.T) {
	points := twoBlobs()
	set := model.CentroidSet{{0, 0.5}, {10, 0.5}}

	bitmaps, err := Memberships(points, set)
	require.NoError(t, err)
	require.Len(t, bitmaps, 2)

	assert.True(t, bitmaps[0].Contains(0))
	assert.True(t, bitmaps[0].Contains(1))
	assert.True(t, bitmaps[1].Contains(2))
	assert.True(t, bitmaps[1].Contains(3))
	assert.Equal(t, uint64(2), bitmaps[0].GetCardinality())
}

func TestMembershipsEmptyCentroids(t *testing.T) {
	_, err := Memberships(twoBlobs(), model.CentroidSet{})
	assert.ErrorIs(t, err, ErrEmptyCentroids)
}

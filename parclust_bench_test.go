package parclust_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/parclust"
	"github.com/hupe1980/parclust/model"
	"github.com/hupe1980/parclust/testutil"
)

func benchPoints(b *testing.B, num, dim int) []model.Point {
	b.Helper()

	rng := testutil.NewRNG(4711)

	points := make([]model.Point, num)
	for i, vec := range rng.GaussianVectors(num, dim) {
		points[i] = model.Point{
			ID:     fmt.Sprintf("p%d", i),
			Vector: vec,
		}
	}

	return points
}

func BenchmarkSeed(b *testing.B) {
	ctx := context.Background()
	points := benchPoints(b, 2000, 32)

	km, err := parclust.New(16, parclust.WithRuns(4), parclust.WithRandomSeed(1))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := km.Seed(ctx, points); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFit(b *testing.B) {
	ctx := context.Background()

	for _, size := range []int{500, 2000} {
		b.Run(fmt.Sprintf("n%d", size), func(b *testing.B) {
			points := benchPoints(b, size, 32)

			km, err := parclust.New(8,
				parclust.WithRuns(4),
				parclust.WithRandomSeed(1),
				parclust.WithMaxIterations(20),
			)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := km.Fit(ctx, points); err != nil {
					var nc *parclust.ErrNonConvergence
					if !errors.As(err, &nc) {
						b.Fatal(err)
					}
				}
			}
		})
	}
}

package parclust

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/parclust/internal/kmeans"
	"github.com/hupe1980/parclust/model"
)

// Memberships returns, for one trial's centroid set, a bitmap of point
// indices per cluster: bitmap j contains the indices (into points) of
// every point whose nearest centroid is j.
//
// This is the cluster-membership reporting surface consumed by external
// diagnostics (entropy analysis, plotting); the bitmaps are compact and
// support the usual set algebra for comparing trials.
func Memberships(points []model.Point, set model.CentroidSet) ([]*roaring.Bitmap, error) {
	if set.K() == 0 {
		return nil, ErrEmptyCentroids
	}

	out := make([]*roaring.Bitmap, set.K())
	for j := range out {
		out[j] = roaring.New()
	}

	for i, p := range points {
		j, _ := kmeans.NearestOne(p.Vector, set)
		out[j].Add(uint32(i)) // nolint gosec
	}

	return out, nil
}

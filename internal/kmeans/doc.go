// Package kmeans implements the clustering core: k-means++ seeding and
// Lloyd refinement across multiple independent trials advanced in
// lockstep, plus the shared nearest-centroid assignment and per-trial
// cost objective.
//
// The public API lives in the parclust root package; this package owns
// the algorithms and their error taxonomy.
package kmeans

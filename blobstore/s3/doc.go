// Package s3 provides an S3 implementation of the blobstore.BlobStore
// interface, plus a DynamoDB-backed registry for publishing centroid
// snapshots with atomic versioning.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("clustering/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
// # Features
//
//   - Multipart uploads for large datasets
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Registry: conditional-write snapshot publication so concurrent
//     experiment runners never clobber each other's results
package s3

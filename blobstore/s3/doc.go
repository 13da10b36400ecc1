// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("events/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	src, err := stream.FromBlobs(ctx, store, "2024/")
//	c, err := hypercube.Load(ctx, src)
//
// # Features
//
//   - Streaming reads of whole objects
//   - Single-request uploads for record exports
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3

// Package blobstore provides storage abstraction for record streams.
//
// Cubes live in memory only. Blob stores hold the JSON Lines record streams
// cubes are loaded from and exported to. Implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests
//   - LocalStore: local filesystem
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)       // Open for reading
//	    Put(ctx, name, data) error          // Atomic write
//	    List(ctx, prefix) ([]string, error) // Sorted names
//	}
package blobstore

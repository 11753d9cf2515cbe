// Package blobstore is the storage abstraction for catalogs and persisted
// extinction results.
//
// A Store holds immutable named blobs. Writes replace a blob as a whole:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Built-in implementations:
//
//   - LocalStore: local filesystem, atomic writes, memory-mapped reads
//   - MemoryStore: in-process map, for tests
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3
//
// Implementations must be safe for concurrent use.
package blobstore

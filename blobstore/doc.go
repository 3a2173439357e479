// Package blobstore provides the storage abstraction archives are written to.
//
// Store is the interface for reading and writing immutable named blobs
// (shards, shard indexes, manifests). Implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral archives
//   - LocalStore: local filesystem with atomic rename-on-write
//   - s3.Store: Amazon S3 (multipart uploads via the transfer manager)
//   - s3.CommitStore: S3 plus DynamoDB conditional writes for CURRENT
//   - minio.Store: MinIO and other S3-compatible servers
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore

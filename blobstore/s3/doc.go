// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("glyph-archives/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	w := archive.NewWriter(store)
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads for large shards via the transfer manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - CommitStore: DynamoDB conditional writes for the CURRENT pointer,
//     so concurrent archive writers cannot silently overwrite each other
package s3

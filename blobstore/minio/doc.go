// Package minio provides a blobstore.Store backed by the MinIO client.
//
// It works with MinIO and other S3-compatible systems such as Ceph, Garage
// and SeaweedFS, without pulling in the AWS SDK.
//
//	store, err := minio.Dial(ctx, minio.Config{
//	    Endpoint:     "localhost:9000",
//	    AccessKey:    "minioadmin",
//	    SecretKey:    "minioadmin",
//	    Bucket:       "glyphs",
//	    Prefix:       "archives/",
//	    CreateBucket: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w := archive.NewWriter(store)
package minio

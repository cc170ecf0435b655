// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible servers (Ceph, SeaweedFS, Garage)
// without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.Dial("localhost:9000", "minioadmin", "minioadmin", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minio.NewStore(client, "renders", "frames/")
//	if err := store.EnsureBucket(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	saver := saveppm.New(store)
package minio

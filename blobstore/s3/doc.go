// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("renders/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	saver := saveppm.New(store)
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads through the SDK upload manager
//   - Automatic pagination for listing
//   - Configurable prefix and custom endpoints (LocalStack, S3-compatible servers)
package s3

// Package s3 implements blobstore.Store on Amazon S3.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("cgm/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
// Small blobs are written with a single PutObject carrying a CRC32C checksum;
// larger ones go through the multipart uploader. Reads use HTTP range
// requests. WithEndpoint points the client at an S3-compatible server.
package s3

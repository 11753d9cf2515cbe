// Package minio implements blobstore.Store on MinIO and other S3-compatible
// servers (Ceph, Garage, SeaweedFS) using the MinIO Go client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "surveys", "cgm/")
//	err = persistence.Save(ctx, store, "run-001.cgmx", result)
package minio

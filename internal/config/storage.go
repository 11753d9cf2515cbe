package config

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/cgmdust/blobstore"
	miniostore "github.com/hupe1980/cgmdust/blobstore/minio"
	s3store "github.com/hupe1980/cgmdust/blobstore/s3"
)

// OpenStore connects to the configured storage backend.
func (s StorageConfig) OpenStore(ctx context.Context) (blobstore.Store, error) {
	switch s.Backend {
	case "local":
		return blobstore.NewLocalStore(s.Root), nil
	case "memory":
		return blobstore.NewMemoryStore(), nil
	case "minio":
		creds := credentials.NewEnvMinio()
		if s.AccessKey != "" {
			creds = credentials.NewStaticV4(s.AccessKey, s.SecretKey, "")
		}
		client, err := minio.New(s.Endpoint, &minio.Options{
			Creds:  creds,
			Secure: s.UseSSL,
			Region: s.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return miniostore.NewStore(client, s.Bucket, s.Prefix), nil
	case "s3":
		opts := []s3store.Option{s3store.WithPrefix(s.Prefix)}
		if s.Region != "" {
			opts = append(opts, s3store.WithRegion(s.Region))
		}
		if s.Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(s.Endpoint))
		}
		return s3store.New(ctx, s.Bucket, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", ErrInvalid, s.Backend)
	}
}

package config

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// NewMinIOClient connects to the storage endpoint and makes sure the bucket
// exists. The bucket stays private; downloads go through presigned URLs.
func NewMinIOClient(ctx context.Context, cfg *Config, log *logrus.Logger) (*minio.Client, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
		Region: cfg.MinIORegion,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{Region: cfg.MinIORegion})
		if err != nil {
			return nil, err
		}
		log.WithField("bucket", cfg.MinIOBucket).Info("created MinIO bucket")
	}

	return client, nil
}

// NewMinIOPresigner returns a client bound to the public endpoint. Presigning
// is computed locally, so the client never has to reach that host.
func NewMinIOPresigner(cfg *Config) (*minio.Client, error) {
	return minio.New(cfg.MinIOPublicEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOPublicUseSSL,
		Region: cfg.MinIORegion,
	})
}

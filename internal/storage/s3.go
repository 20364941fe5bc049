package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config encapsulates the connection info for S3 or an S3-compatible store.
type S3Config struct {
	Region    string
	Endpoint  string // optional override, e.g. a MinIO endpoint
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// S3Client implements ObjectStorage using the minio-go SDK.
type S3Client struct {
	client *minio.Client
}

// NewS3Client builds an S3Client. With no explicit endpoint it targets the
// regional AWS S3 endpoint; with no explicit keys it falls back to the
// standard AWS credential chain (env, shared credentials file, IAM role).
func NewS3Client(cfg S3Config) (*S3Client, error) {
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	useSSL := cfg.UseSSL
	if endpoint == "" {
		endpoint = fmt.Sprintf("s3.%s.amazonaws.com", region)
		useSSL = true
	}
	if strings.HasPrefix(endpoint, "http://") {
		endpoint = strings.TrimPrefix(endpoint, "http://")
		useSSL = false
	} else if strings.HasPrefix(endpoint, "https://") {
		endpoint = strings.TrimPrefix(endpoint, "https://")
		useSSL = true
	}

	var creds *credentials.Credentials
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{},
		})
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  creds,
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return &S3Client{client: client}, nil
}

// PutObject uploads data under (bucket, key) in a single request.
func (c *S3Client) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	reader := bytes.NewReader(data)
	_, err := c.client.PutObject(ctx, bucket, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("s3 put failed for %s/%s: %w", bucket, key, err)
	}
	return nil
}

var _ ObjectStorage = (*S3Client)(nil)

package storage

import "context"

// ObjectStorage captures the single S3-compatible operation staging needs.
// The put is all-or-nothing; no partial-write semantics are assumed.
type ObjectStorage interface {
	PutObject(ctx context.Context, bucket, key string, data []byte) error
}

package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/daniilr/aws-ssm-put-on-ec2/internal/storage"
)

// Stager copies one local file into the staging bucket. A single put attempt
// is the contract; it never retries and never deletes what it uploaded.
type Stager struct {
	Store storage.ObjectStorage
	Obs   Observer
	Now   func() time.Time
}

// NormalizeBucket strips an s3:// prefix and any trailing slash so callers
// may pass the bare bucket name or the URI form interchangeably.
func NormalizeBucket(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "s3://")
	return strings.TrimSuffix(name, "/")
}

// Stage verifies the local file, uploads it under a fresh staging key and
// returns the staged object's location. The local path must be an existing
// regular file; that is checked before any network call.
func (s *Stager) Stage(ctx context.Context, localPath, bucket string) (StagedObject, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return StagedObject{}, &LocalFileError{Path: localPath, Err: err}
	}
	if !info.Mode().IsRegular() {
		return StagedObject{}, &LocalFileError{Path: localPath, Err: errors.New("not a regular file")}
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return StagedObject{}, &LocalFileError{Path: localPath, Err: err}
	}

	bucket = NormalizeBucket(bucket)
	key := StagingKey(localPath, s.now())
	obj := StagedObject{
		Bucket:  bucket,
		Key:     key,
		Locator: fmt.Sprintf("s3://%s/%s", bucket, key),
	}

	s.obs().StageStarted(localPath, obj.Locator)
	if err := s.Store.PutObject(ctx, bucket, key, data); err != nil {
		return StagedObject{}, &StagingError{Locator: obj.Locator, Err: err}
	}
	s.obs().StageFinished(obj.Locator, len(data))

	return obj, nil
}

func (s *Stager) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Stager) obs() Observer {
	if s.Obs != nil {
		return s.Obs
	}
	return NopObserver{}
}

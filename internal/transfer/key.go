package transfer

import (
	"fmt"
	"path/filepath"
	"time"
)

// keyPrefix namespaces every staged object so leftovers in a shared bucket
// are attributable to this tool.
const keyPrefix = "ssm-put"

// StagingKey derives the object key for a local file from its basename and
// the wall-clock time at invocation. The millisecond timestamp keeps
// concurrent uploads of the same file name from colliding.
func StagingKey(localPath string, now time.Time) string {
	return fmt.Sprintf("%s/%d-%s", keyPrefix, now.UnixMilli(), filepath.Base(localPath))
}

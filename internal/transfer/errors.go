package transfer

import (
	"fmt"
	"time"

	"github.com/daniilr/aws-ssm-put-on-ec2/internal/remote"
)

// LocalFileError reports that the source file cannot be read for staging.
type LocalFileError struct {
	Path string
	Err  error
}

func (e *LocalFileError) Error() string {
	return fmt.Sprintf("local file %s: %v", e.Path, e.Err)
}

func (e *LocalFileError) Unwrap() error { return e.Err }

// StagingError reports a failed put to the staging bucket.
type StagingError struct {
	Locator string
	Err     error
}

func (e *StagingError) Error() string {
	return fmt.Sprintf("staging %s: %v", e.Locator, e.Err)
}

func (e *StagingError) Unwrap() error { return e.Err }

// DispatchError reports that the remote command could not be submitted, or
// that the service accepted it without returning a command identifier.
type DispatchError struct {
	InstanceID string
	Err        error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch to %s: %v", e.InstanceID, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// RemoteExecutionError reports that the remote script reached Failed or
// Cancelled. Stderr carries the captured error output.
type RemoteExecutionError struct {
	CommandID string
	Status    remote.Status
	Stderr    string
}

func (e *RemoteExecutionError) Error() string {
	return fmt.Sprintf("command %s %s: %s", e.CommandID, e.Status, e.Stderr)
}

// UnexpectedStatusError reports a status outside the known set. It is a
// protocol violation, never retried.
type UnexpectedStatusError struct {
	CommandID string
	Status    string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("command %s reported unexpected status %q", e.CommandID, e.Status)
}

// TimeoutError reports that the attempt budget ran out while the command was
// still in a non-terminal state.
type TimeoutError struct {
	CommandID string
	Attempts  int
	Budget    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %s still running after %d polls (%.0fs budget)",
		e.CommandID, e.Attempts, e.Budget.Seconds())
}

package remote

import (
	"context"
	"errors"
)

// Invocation is one status snapshot of a dispatched command, as reported by
// the remote execution service. Status is the raw service string; callers
// classify it with ParseStatus.
type Invocation struct {
	Status string
	Stdout string
	Stderr string
}

// ErrInvocationNotFound reports that the service has not yet propagated a
// submitted command to its status endpoint. The condition is transient and
// safe to poll again.
var ErrInvocationNotFound = errors.New("command invocation not yet visible")

// CommandRunner is the remote shell-execution channel (SSM in production).
type CommandRunner interface {
	// Send submits a shell command sequence to a single instance and
	// returns the service-assigned command identifier.
	Send(ctx context.Context, instanceID string, commands []string) (string, error)

	// Inspect queries the current status of a previously sent command.
	// Returns ErrInvocationNotFound while the invocation is not yet
	// queryable.
	Inspect(ctx context.Context, commandID, instanceID string) (Invocation, error)
}

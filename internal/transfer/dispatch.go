package transfer

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/daniilr/aws-ssm-put-on-ec2/internal/remote"
)

// Dispatcher submits the remote pull script to a single instance.
type Dispatcher struct {
	Runner remote.CommandRunner
	Obs    Observer
}

// pullScript builds the shell commands executed on the instance. The
// destination directory must exist before the copy runs, and a failed copy
// must exit non-zero instead of being masked by the completion echo.
func pullScript(obj StagedObject, remotePath string) []string {
	return []string{
		fmt.Sprintf("mkdir -p %s", shellQuote(path.Dir(remotePath))),
		fmt.Sprintf("aws s3 cp %s %s || exit 1", shellQuote(obj.Locator), shellQuote(remotePath)),
		fmt.Sprintf("echo %s", shellQuote("pull complete: "+remotePath)),
	}
}

// shellQuote single-quotes s for POSIX sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Dispatch submits the pull script for the staged object against one
// instance. An accepted submission without a command identifier is a
// protocol violation and fails like a rejected one.
func (d *Dispatcher) Dispatch(ctx context.Context, instanceID string, obj StagedObject, remotePath string) (DispatchedCommand, error) {
	commandID, err := d.Runner.Send(ctx, instanceID, pullScript(obj, remotePath))
	if err != nil {
		return DispatchedCommand{}, &DispatchError{InstanceID: instanceID, Err: err}
	}
	if commandID == "" {
		return DispatchedCommand{}, &DispatchError{InstanceID: instanceID, Err: errors.New("service returned no command id")}
	}

	d.obs().Dispatched(commandID, instanceID)

	return DispatchedCommand{CommandID: commandID, InstanceID: instanceID}, nil
}

func (d *Dispatcher) obs() Observer {
	if d.Obs != nil {
		return d.Obs
	}
	return NopObserver{}
}

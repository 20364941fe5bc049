// Package transfer moves one local file to a remote instance by staging it
// in an object store and driving a remote pull command to completion.
package transfer

import (
	"context"
	"time"

	"github.com/daniilr/aws-ssm-put-on-ec2/internal/remote"
	"github.com/daniilr/aws-ssm-put-on-ec2/internal/storage"
)

// Request holds the parameters for one transfer invocation.
type Request struct {
	LocalPath  string
	RemotePath string
	InstanceID string
	Bucket     string
}

// Result pairs the staged object with the terminal command outcome, for
// traceability in logs and tests.
type Result struct {
	Object  StagedObject
	Outcome CommandOutcome
}

// Service wires the stager, dispatcher and poller into one transfer flow.
type Service struct {
	stager     *Stager
	dispatcher *Dispatcher
	poller     *Poller
}

// NewService builds a Service. Zero maxAttempts or delay fall back to the
// poller defaults.
func NewService(store storage.ObjectStorage, runner remote.CommandRunner, obs Observer, maxAttempts int, delay time.Duration) *Service {
	return &Service{
		stager:     &Stager{Store: store, Obs: obs},
		dispatcher: &Dispatcher{Runner: runner, Obs: obs},
		poller:     &Poller{Runner: runner, Obs: obs, MaxAttempts: maxAttempts, Delay: delay},
	}
}

// Run stages the file, dispatches the pull command and awaits its terminal
// state, strictly in that order. The first failing stage aborts the rest and
// its error passes through unmodified; the staged object is never rolled
// back.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	obj, err := s.stager.Stage(ctx, req.LocalPath, req.Bucket)
	if err != nil {
		return nil, err
	}

	cmd, err := s.dispatcher.Dispatch(ctx, req.InstanceID, obj, req.RemotePath)
	if err != nil {
		return nil, err
	}

	outcome, err := s.poller.Await(ctx, cmd)
	if err != nil {
		return nil, err
	}

	return &Result{Object: obj, Outcome: outcome}, nil
}

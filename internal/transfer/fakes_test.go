package transfer

import (
	"context"

	"github.com/daniilr/aws-ssm-put-on-ec2/internal/remote"
)

// fakeStore records the single put the stager is allowed to make.
type fakeStore struct {
	puts   int
	bucket string
	key    string
	data   []byte
	err    error
}

func (f *fakeStore) PutObject(_ context.Context, bucket, key string, data []byte) error {
	f.puts++
	f.bucket = bucket
	f.key = key
	f.data = data
	return f.err
}

// pollStep is one scripted answer from the remote execution service.
type pollStep struct {
	inv remote.Invocation
	err error
}

// scriptedRunner plays back a fixed sequence of invocation snapshots. Once
// the script is exhausted the last step repeats.
type scriptedRunner struct {
	commandID string
	sendErr   error

	sends    int
	instance string
	commands []string

	steps []pollStep
	polls int
}

func (r *scriptedRunner) Send(_ context.Context, instanceID string, commands []string) (string, error) {
	r.sends++
	r.instance = instanceID
	r.commands = commands
	if r.sendErr != nil {
		return "", r.sendErr
	}
	return r.commandID, nil
}

func (r *scriptedRunner) Inspect(_ context.Context, _, _ string) (remote.Invocation, error) {
	i := r.polls
	if i >= len(r.steps) {
		i = len(r.steps) - 1
	}
	r.polls++
	step := r.steps[i]
	return step.inv, step.err
}

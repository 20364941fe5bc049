package transfer

import (
	"context"
	"errors"
	"time"

	"github.com/daniilr/aws-ssm-put-on-ec2/internal/remote"
)

const (
	DefaultMaxAttempts = 60
	DefaultDelay       = 2 * time.Second
)

// Poller drives a dispatched command to a terminal state. Each status query
// consumes one attempt; between non-terminal polls it suspends for a fixed
// delay. The not-yet-visible condition shares the same budget as genuine
// in-progress polls.
type Poller struct {
	Runner      remote.CommandRunner
	Obs         Observer
	MaxAttempts int
	Delay       time.Duration

	// Sleep is overridable in tests; nil means a context-aware sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Await polls until the command reaches a terminal state or the attempt
// budget runs out. Unknown statuses and query errors other than the
// not-yet-visible condition propagate immediately.
func (p *Poller) Await(ctx context.Context, cmd DispatchedCommand) (CommandOutcome, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	delay := p.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		inv, err := p.Runner.Inspect(ctx, cmd.CommandID, cmd.InstanceID)
		if err != nil {
			if !errors.Is(err, remote.ErrInvocationNotFound) {
				return CommandOutcome{}, err
			}
			p.obs().Polled(attempt, "not yet visible")
			if attempt < maxAttempts {
				if err := p.sleep(ctx, delay); err != nil {
					return CommandOutcome{}, err
				}
			}
			continue
		}

		p.obs().Polled(attempt, inv.Status)

		status, ok := remote.ParseStatus(inv.Status)
		if !ok {
			return CommandOutcome{}, &UnexpectedStatusError{CommandID: cmd.CommandID, Status: inv.Status}
		}

		switch status {
		case remote.StatusSuccess:
			return CommandOutcome{CommandID: cmd.CommandID, Status: status, Output: inv.Stdout}, nil
		case remote.StatusFailed, remote.StatusCancelled:
			stderr := inv.Stderr
			if stderr == "" {
				stderr = "no error output"
			}
			return CommandOutcome{}, &RemoteExecutionError{CommandID: cmd.CommandID, Status: status, Stderr: stderr}
		}

		// Pending, Delayed, InProgress: wait and poll again.
		if attempt < maxAttempts {
			if err := p.sleep(ctx, delay); err != nil {
				return CommandOutcome{}, err
			}
		}
	}

	return CommandOutcome{}, &TimeoutError{
		CommandID: cmd.CommandID,
		Attempts:  maxAttempts,
		Budget:    time.Duration(maxAttempts) * delay,
	}
}

func (p *Poller) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Poller) obs() Observer {
	if p.Obs != nil {
		return p.Obs
	}
	return NopObserver{}
}

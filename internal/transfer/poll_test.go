package transfer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/daniilr/aws-ssm-put-on-ec2/internal/remote"
)

func newTestPoller(runner *scriptedRunner, maxAttempts int, sleeps *int) *Poller {
	return &Poller{
		Runner:      runner,
		MaxAttempts: maxAttempts,
		Delay:       2 * time.Second,
		Sleep: func(context.Context, time.Duration) error {
			*sleeps++
			return nil
		},
	}
}

func cmdFixture() DispatchedCommand {
	return DispatchedCommand{CommandID: "cmd-1", InstanceID: "i-0abc"}
}

func TestAwait_ResolvesAfterTransientStates(t *testing.T) {
	runner := &scriptedRunner{steps: []pollStep{
		{err: remote.ErrInvocationNotFound},
		{inv: remote.Invocation{Status: "Pending"}},
		{inv: remote.Invocation{Status: "InProgress"}},
		{inv: remote.Invocation{Status: "Success", Stdout: "ok"}},
	}}
	sleeps := 0
	p := newTestPoller(runner, 60, &sleeps)

	outcome, err := p.Await(context.Background(), cmdFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != remote.StatusSuccess || outcome.Output != "ok" {
		t.Errorf("outcome = %+v, want Success with output %q", outcome, "ok")
	}
	if runner.polls != 4 {
		t.Errorf("polls = %d, want 4", runner.polls)
	}
	if sleeps != 3 {
		t.Errorf("sleeps = %d, want 3", sleeps)
	}
}

func TestAwait_SuccessWithoutOutputIsEmptyString(t *testing.T) {
	runner := &scriptedRunner{steps: []pollStep{
		{inv: remote.Invocation{Status: "Success"}},
	}}
	sleeps := 0
	p := newTestPoller(runner, 60, &sleeps)

	outcome, err := p.Await(context.Background(), cmdFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Output != "" {
		t.Errorf("Output = %q, want empty", outcome.Output)
	}
}

func TestAwait_BudgetExhaustionTimesOut(t *testing.T) {
	runner := &scriptedRunner{steps: []pollStep{
		{inv: remote.Invocation{Status: "InProgress"}},
	}}
	sleeps := 0
	p := newTestPoller(runner, 5, &sleeps)

	_, err := p.Await(context.Background(), cmdFixture())

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want TimeoutError", err)
	}
	if te.Budget != 10*time.Second {
		t.Errorf("Budget = %v, want 10s (5 attempts * 2s)", te.Budget)
	}
	if !strings.Contains(te.Error(), "10s") {
		t.Errorf("message %q does not state the budget in seconds", te.Error())
	}
	if runner.polls != 5 {
		t.Errorf("polls = %d, want exactly the attempt budget", runner.polls)
	}
}

func TestAwait_FailedStopsImmediatelyWithStderr(t *testing.T) {
	runner := &scriptedRunner{steps: []pollStep{
		{inv: remote.Invocation{Status: "Failed", Stderr: "disk full"}},
	}}
	sleeps := 0
	p := newTestPoller(runner, 60, &sleeps)

	_, err := p.Await(context.Background(), cmdFixture())

	var ree *RemoteExecutionError
	if !errors.As(err, &ree) {
		t.Fatalf("error = %v, want RemoteExecutionError", err)
	}
	if !strings.Contains(ree.Error(), "disk full") {
		t.Errorf("message %q missing captured stderr", ree.Error())
	}
	if runner.polls != 1 {
		t.Errorf("polls = %d, want 1", runner.polls)
	}
	if sleeps != 0 {
		t.Errorf("sleeps = %d, want 0", sleeps)
	}
}

func TestAwait_CancelledWithoutStderrUsesMarker(t *testing.T) {
	runner := &scriptedRunner{steps: []pollStep{
		{inv: remote.Invocation{Status: "Cancelled"}},
	}}
	sleeps := 0
	p := newTestPoller(runner, 60, &sleeps)

	_, err := p.Await(context.Background(), cmdFixture())

	var ree *RemoteExecutionError
	if !errors.As(err, &ree) {
		t.Fatalf("error = %v, want RemoteExecutionError", err)
	}
	if ree.Stderr != "no error output" {
		t.Errorf("Stderr = %q, want marker", ree.Stderr)
	}
}

func TestAwait_StatusComparisonIsCaseInsensitive(t *testing.T) {
	runner := &scriptedRunner{steps: []pollStep{
		{inv: remote.Invocation{Status: "FAILED", Stderr: "boom"}},
	}}
	sleeps := 0
	p := newTestPoller(runner, 60, &sleeps)

	_, err := p.Await(context.Background(), cmdFixture())

	var ree *RemoteExecutionError
	if !errors.As(err, &ree) {
		t.Fatalf("error = %v, want RemoteExecutionError", err)
	}
}

func TestAwait_UnknownStatusIsNotRetried(t *testing.T) {
	runner := &scriptedRunner{steps: []pollStep{
		{inv: remote.Invocation{Status: "Throttled"}},
	}}
	sleeps := 0
	p := newTestPoller(runner, 60, &sleeps)

	_, err := p.Await(context.Background(), cmdFixture())

	var use *UnexpectedStatusError
	if !errors.As(err, &use) {
		t.Fatalf("error = %v, want UnexpectedStatusError", err)
	}
	if use.Status != "Throttled" {
		t.Errorf("Status = %q, want raw service value", use.Status)
	}
	if runner.polls != 1 {
		t.Errorf("polls = %d, want 1", runner.polls)
	}
}

func TestAwait_QueryErrorPropagatesWithoutRetry(t *testing.T) {
	cause := errors.New("connection reset")
	runner := &scriptedRunner{steps: []pollStep{
		{err: cause},
	}}
	sleeps := 0
	p := newTestPoller(runner, 60, &sleeps)

	_, err := p.Await(context.Background(), cmdFixture())
	if !errors.Is(err, cause) {
		t.Fatalf("error = %v, want the query failure itself", err)
	}
	if runner.polls != 1 {
		t.Errorf("polls = %d, want 1", runner.polls)
	}
}

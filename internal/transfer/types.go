package transfer

import "github.com/daniilr/aws-ssm-put-on-ec2/internal/remote"

// StagedObject identifies the staged copy of the local file. It is created
// once per invocation and never mutated; the staged copy is deliberately
// left behind in the bucket.
type StagedObject struct {
	Bucket  string
	Key     string
	Locator string // canonical s3://bucket/key form
}

// DispatchedCommand identifies a command accepted by the remote execution
// service. CommandID is assigned by the service and opaque.
type DispatchedCommand struct {
	CommandID  string
	InstanceID string
}

// CommandOutcome is the terminal result of a dispatched command. Output
// holds captured stdout; failures carry their stderr inside the raised
// error instead.
type CommandOutcome struct {
	CommandID string
	Status    remote.Status
	Output    string
}

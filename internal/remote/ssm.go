package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
)

// runShellScriptDocument is the built-in SSM document that executes plain
// shell commands on a Linux instance.
const runShellScriptDocument = "AWS-RunShellScript"

// SSMRunner implements CommandRunner against AWS Systems Manager.
type SSMRunner struct {
	client ssmiface.SSMAPI
}

// NewSSMRunner builds an SSMRunner. Credentials come from the standard AWS
// chain; region may be empty to defer to the shared config / environment.
func NewSSMRunner(region string) (*SSMRunner, error) {
	opts := session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}
	if region != "" {
		opts.Config = aws.Config{Region: aws.String(region)}
	}
	sess, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return &SSMRunner{client: ssm.New(sess)}, nil
}

// Send submits the commands to one instance via AWS-RunShellScript.
func (r *SSMRunner) Send(ctx context.Context, instanceID string, commands []string) (string, error) {
	out, err := r.client.SendCommandWithContext(ctx, &ssm.SendCommandInput{
		DocumentName: aws.String(runShellScriptDocument),
		InstanceIds:  aws.StringSlice([]string{instanceID}),
		Parameters: map[string][]*string{
			"commands": aws.StringSlice(commands),
		},
	})
	if err != nil {
		return "", err
	}
	if out.Command == nil {
		return "", nil
	}
	return aws.StringValue(out.Command.CommandId), nil
}

// Inspect fetches the invocation status for (commandID, instanceID).
func (r *SSMRunner) Inspect(ctx context.Context, commandID, instanceID string) (Invocation, error) {
	out, err := r.client.GetCommandInvocationWithContext(ctx, &ssm.GetCommandInvocationInput{
		CommandId:  aws.String(commandID),
		InstanceId: aws.String(instanceID),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == ssm.ErrCodeInvocationDoesNotExist {
			return Invocation{}, ErrInvocationNotFound
		}
		return Invocation{}, err
	}
	return Invocation{
		Status: aws.StringValue(out.Status),
		Stdout: aws.StringValue(out.StandardOutputContent),
		Stderr: aws.StringValue(out.StandardErrorContent),
	}, nil
}

var _ CommandRunner = (*SSMRunner)(nil)

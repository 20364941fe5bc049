package main

import (
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/daniilr/aws-ssm-put-on-ec2/internal/config"
	"github.com/daniilr/aws-ssm-put-on-ec2/internal/remote"
	"github.com/daniilr/aws-ssm-put-on-ec2/internal/storage"
	"github.com/daniilr/aws-ssm-put-on-ec2/internal/transfer"
	"github.com/daniilr/aws-ssm-put-on-ec2/pkg/logger"
)

func main() {
	cfg := config.Load()

	app := &cli.App{
		Name:  "aws-ssm-put-on-ec2",
		Usage: "Copy a local file onto an EC2 instance through an S3 staging bucket",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "local-path",
				Usage:    "Local file to transfer",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "remote-path",
				Usage:    "Destination path on the instance",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "instance",
				Usage:    "Target EC2 instance id",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "bucket",
				Usage:   "Staging bucket, with or without the s3:// prefix",
				Value:   cfg.AWS.Bucket,
				EnvVars: []string{"STAGING_BUCKET"},
			},
			&cli.StringFlag{
				Name:    "region",
				Usage:   "AWS region",
				Value:   cfg.AWS.Region,
				EnvVars: []string{"AWS_REGION"},
			},
			&cli.StringFlag{
				Name:    "s3-endpoint",
				Usage:   "Override the S3 endpoint (for S3-compatible stores)",
				Value:   cfg.AWS.Endpoint,
				EnvVars: []string{"S3_ENDPOINT"},
			},
			&cli.IntFlag{
				Name:    "max-attempts",
				Usage:   "Status polls before giving up",
				Value:   cfg.Poll.MaxAttempts,
				EnvVars: []string{"POLL_MAX_ATTEMPTS"},
			},
			&cli.IntFlag{
				Name:    "poll-delay-ms",
				Usage:   "Pause between status polls in milliseconds",
				Value:   cfg.Poll.DelayMs,
				EnvVars: []string{"POLL_DELAY_MS"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("Transfer failed")
	}
}

func run(c *cli.Context) error {
	logger.SetLevel(c.String("log-level"))
	cfg := config.Load()

	if c.String("bucket") == "" {
		return cli.Exit("a staging bucket is required (--bucket or STAGING_BUCKET)", 2)
	}

	store, err := storage.NewS3Client(storage.S3Config{
		Region:    c.String("region"),
		Endpoint:  c.String("s3-endpoint"),
		AccessKey: cfg.AWS.AccessKey,
		SecretKey: cfg.AWS.SecretKey,
		UseSSL:    cfg.AWS.UseSSL,
	})
	if err != nil {
		return err
	}

	runner, err := remote.NewSSMRunner(c.String("region"))
	if err != nil {
		return err
	}

	svc := transfer.NewService(
		store,
		runner,
		transfer.LogObserver{Logger: logger.Log},
		c.Int("max-attempts"),
		time.Duration(c.Int("poll-delay-ms"))*time.Millisecond,
	)

	res, err := svc.Run(c.Context, transfer.Request{
		LocalPath:  c.String("local-path"),
		RemotePath: c.String("remote-path"),
		InstanceID: c.String("instance"),
		Bucket:     c.String("bucket"),
	})
	if err != nil {
		return err
	}

	logger.Log.Info().
		Str("remote_path", c.String("remote-path")).
		Str("locator", res.Object.Locator).
		Str("command_id", res.Outcome.CommandID).
		Msg("File delivered")
	if out := strings.TrimSpace(res.Outcome.Output); out != "" {
		logger.Log.Info().Msg(out)
	}

	return nil
}

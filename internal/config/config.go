package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AWS  AWSConfig
	Poll PollConfig
}

type AWSConfig struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type PollConfig struct {
	MaxAttempts int
	DelayMs     int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("AWS_REGION", "us-east-1")
		viper.SetDefault("S3_ENDPOINT", "")
		viper.SetDefault("AWS_ACCESS_KEY_ID", "")
		viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
		viper.SetDefault("STAGING_BUCKET", "")
		viper.SetDefault("S3_USE_SSL", true)
		viper.SetDefault("POLL_MAX_ATTEMPTS", 60)
		viper.SetDefault("POLL_DELAY_MS", 2000)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			AWS: AWSConfig{
				Region:    viper.GetString("AWS_REGION"),
				Endpoint:  viper.GetString("S3_ENDPOINT"),
				AccessKey: viper.GetString("AWS_ACCESS_KEY_ID"),
				SecretKey: viper.GetString("AWS_SECRET_ACCESS_KEY"),
				Bucket:    viper.GetString("STAGING_BUCKET"),
				UseSSL:    viper.GetBool("S3_USE_SSL"),
			},
			Poll: PollConfig{
				MaxAttempts: viper.GetInt("POLL_MAX_ATTEMPTS"),
				DelayMs:     viper.GetInt("POLL_DELAY_MS"),
			},
		}
	})

	return instance
}

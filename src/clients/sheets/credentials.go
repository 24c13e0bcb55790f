package sheets

import (
	"context"
	"fmt"
	"os"

	"estate/src/config"
	aws_handler "estate/src/utils/aws"
)

// SecretGetter reads a secret payload by id.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, secretID string) (string, error)
}

// LoadCredentials returns the service account JSON from the configured
// source. secrets may be nil, in which case an AWS Secrets Manager client is
// built from cfg.AWSRegion when the source is "aws".
func LoadCredentials(ctx context.Context, cfg config.CredentialsConfig, secrets SecretGetter) ([]byte, error) {
	switch cfg.Source {
	case config.CredentialsFromEnv, "":
		envVar := cfg.EnvVar
		if envVar == "" {
			envVar = "GOOGLE_CREDENTIALS"
		}
		value := os.Getenv(envVar)
		if value == "" {
			return nil, fmt.Errorf("credentials env var %s is empty", envVar)
		}
		return []byte(value), nil
	case config.CredentialsFromFile:
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		return data, nil
	case config.CredentialsFromAWS:
		if secrets == nil {
			handler, err := aws_handler.NewAWSHandler(cfg.AWSRegion)
			if err != nil {
				return nil, err
			}
			secrets = handler.SecretManager
		}
		value, err := secrets.GetSecretValue(ctx, cfg.SecretID)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials secret: %w", err)
		}
		return []byte(value), nil
	default:
		return nil, fmt.Errorf("unknown credentials source %q", cfg.Source)
	}
}

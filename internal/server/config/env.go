package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the server reads.
const EnvPrefix = "SECURECHAT_"

// parseEnv loads .env from the working directory when present, without
// overriding variables already set, then applies SECURECHAT_* variables.
func parseEnv(config *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	strs := map[string]*string{
		"GRPC_ADDR":       &config.EndpointAddrGRPC,
		"DATABASE_DRIVER": &config.DatabaseDriver,
		"DATABASE_DSN":    &config.DatabaseDSN,
		"NOTIFIER_URL":    &config.NotifierURL,
		"SECRET_KEY":      &config.SecretKey,
		"METRICS_ADDR":    &config.MetricsAddr,
		"LOG_BACKEND":     &config.LogBackend,
		"LOG_LEVEL":       &config.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"ACCESS_TOKEN_TTL": &config.AccessTokenValidityDuration,
		"CHALLENGE_TTL":    &config.ChallengeValidityDuration,
	}
	for name, dst := range durations {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = d
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "MAX_IMAGE_PAYLOAD_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_IMAGE_PAYLOAD_SIZE: %w", EnvPrefix, err)
		}
		config.MaxImagePayloadSize = n
	}

	return nil
}

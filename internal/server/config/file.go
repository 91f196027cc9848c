package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/securechat/internal/timex"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. JSON files may carry
// comments and trailing commas; .yaml and .yml files are read as YAML.
// Zero values leave the current setting untouched.
type FileConfig struct {
	EndpointAddrGRPC            string            `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDriver              string            `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN                 string            `json:"database_dsn" yaml:"database_dsn"`
	NotifierURL                 string            `json:"notifier_url" yaml:"notifier_url"`
	SecretKey                   string            `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration    `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	ChallengeValidityDuration   timex.Duration    `json:"challenge_validity_duration" yaml:"challenge_validity_duration"`
	MaxImagePayloadSize         int               `json:"max_image_payload_size" yaml:"max_image_payload_size"`
	MetricsAddr                 *string           `json:"metrics_addr" yaml:"metrics_addr"`
	LogBackend                  string            `json:"log_backend" yaml:"log_backend"`
	LogLevel                    string            `json:"log_level" yaml:"log_level"`
	TestNumbers                 map[string]string `json:"test_numbers" yaml:"test_numbers"`
}

func parseFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), c)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.NotifierURL, c.NotifierURL)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ChallengeValidityDuration.Duration != 0 {
		config.ChallengeValidityDuration = c.ChallengeValidityDuration.Duration
	}
	if c.MaxImagePayloadSize != 0 {
		config.MaxImagePayloadSize = c.MaxImagePayloadSize
	}
	// an explicit empty string disables the metrics endpoint
	if c.MetricsAddr != nil {
		config.MetricsAddr = *c.MetricsAddr
	}
	for phone, code := range c.TestNumbers {
		config.TestNumbers[phone] = code
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

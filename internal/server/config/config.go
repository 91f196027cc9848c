// Package config handles configuration for the server component: defaults,
// an optional JSON/YAML file, the environment and command-line flags, in
// that order of precedence.
package config

import (
	"time"

	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/dmitrijs2005/securechat/internal/flagx"
)

// ConfigFileEnv names the environment variable consulted when no -c flag is
// given.
const ConfigFileEnv = "SECURECHAT_CONFIG"

// Config holds runtime settings for the chat server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDriver / DatabaseDSN: "pgx" (PostgreSQL) or "sqlite" and its DSN.
//   - NotifierURL: empty for in-process change notification, or a redis:// URL
//     to share notifications between instances.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Generated at startup
//     when empty, which invalidates tokens on restart.
//   - AccessTokenValidityDuration / ChallengeValidityDuration: token lifetimes.
//   - MaxImagePayloadSize: cap on encoded image payloads, in bytes.
//   - MetricsAddr: bind address of the health/metrics HTTP endpoint; empty
//     disables it.
//   - LogBackend / LogLevel: see logging.New.
//   - TestNumbers: phone number to fixed one-time code; only these numbers
//     can log in.
type Config struct {
	EndpointAddrGRPC            string
	DatabaseDriver              string
	DatabaseDSN                 string
	NotifierURL                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	ChallengeValidityDuration   time.Duration
	MaxImagePayloadSize         int
	MetricsAddr                 string
	LogBackend                  string
	LogLevel                    string
	TestNumbers                 map[string]string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:securechat.db?_pragma=busy_timeout(5000)"
	c.NotifierURL = ""
	c.SecretKey = ""
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.ChallengeValidityDuration = 5 * time.Minute
	c.MaxImagePayloadSize = common.MaxImagePayloadSize
	c.MetricsAddr = ":9090"
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.TestNumbers = map[string]string{}
}

// Load builds a Config from defaults, the config file at path (if any),
// the environment and args.
func Load(path string, args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if cfg.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, err
		}
		cfg.SecretKey = key
	}

	return cfg, nil
}

// LoadConfig builds a Config from the process command line and environment.
// It panics on malformed input.
func LoadConfig() *Config {
	cfg, err := Load(flagx.ConfigFileFlag(ConfigFileEnv), commandLineArgs())
	if err != nil {
		panic(err)
	}
	return cfg
}

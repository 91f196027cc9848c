package config

import (
	"time"

	"github.com/dmitrijs2005/securechat/internal/common"
)

// ConfigFileEnv names the environment variable consulted when no -c flag is
// given.
const ConfigFileEnv = "SECURECHAT_CLIENT_CONFIG"

// Config holds runtime settings for the SecureChat REPL.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - RequestTimeout: deadline applied to each unary call.
//   - MaxImagePayloadSize: encoded image size checked before sending.
type Config struct {
	ServerEndpointAddr  string
	RequestTimeout      time.Duration
	MaxImagePayloadSize int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.MaxImagePayloadSize = common.MaxImagePayloadSize
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

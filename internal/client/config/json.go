package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/securechat/internal/flagx"
	"github.com/dmitrijs2005/securechat/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig is the on-disk shape of the client config. Comments and
// trailing commas are allowed. Zero values keep the current setting.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	MaxImagePayloadSize int            `json:"max_image_payload_size"`
}

// parseJson overlays cfg with the file named by -c/-config or
// SECURECHAT_CLIENT_CONFIG. It panics on read or parse errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag(ConfigFileEnv)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MaxImagePayloadSize != 0 {
		cfg.MaxImagePayloadSize = jc.MaxImagePayloadSize
	}
}

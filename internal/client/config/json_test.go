package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(ConfigFileEnv, "")

	path := writeTemp(t, "client.json", `{
		// staging
		"server_endpoint_addr": "www.example:9000",
		"request_timeout": "3s",
	}`)

	t.Run("loads from flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	})

	t.Run("loads from env", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(ConfigFileEnv, path)

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
	})

	t.Run("no file keeps values", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ServerEndpointAddr: "defaults:1234", MaxImagePayloadSize: 7}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, 7, cfg.MaxImagePayloadSize)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := writeTemp(t, "bad.json", `{ this is not valid json`)
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

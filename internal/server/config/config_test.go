package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	var c Config
	c.LoadDefaults()
	return &c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// chdirTemp moves into an empty directory so a stray .env is not picked up.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Equal(t, "", c.NotifierURL)
	assert.Equal(t, 24*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, 5*time.Minute, c.ChallengeValidityDuration)
	assert.Equal(t, 512000, c.MaxImagePayloadSize)
	assert.Equal(t, ":9090", c.MetricsAddr)
	assert.Equal(t, "slog", c.LogBackend)
	assert.NotNil(t, c.TestNumbers)
}

func TestLoad_DefaultsGenerateSecret(t *testing.T) {
	chdirTemp(t)

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Len(t, c.SecretKey, 64)

	want := defaults()
	want.SecretKey = c.SecretKey
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSONWithComments(t *testing.T) {
	chdirTemp(t)

	path := writeFile(t, "cfg.json", `{
		// local development
		"endpoint_addr_grpc": ":6000",
		"database_driver": "pgx",
		"database_dsn": "postgres://localhost/chat",
		"secret_key": "k",
		"access_token_validity_duration": "90s",
		"challenge_validity_duration": 60000000000,
		"metrics_addr": "",
		"test_numbers": {"+91 1111": "123456"},
	}`)

	c, err := Load(path, nil)
	require.NoError(t, err)

	want := defaults()
	want.EndpointAddrGRPC = ":6000"
	want.DatabaseDriver = "pgx"
	want.DatabaseDSN = "postgres://localhost/chat"
	want.SecretKey = "k"
	want.AccessTokenValidityDuration = 90 * time.Second
	want.ChallengeValidityDuration = time.Minute
	want.MetricsAddr = ""
	want.TestNumbers = map[string]string{"+91 1111": "123456"}

	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAML(t *testing.T) {
	chdirTemp(t)

	path := writeFile(t, "cfg.yaml", `
notifier_url: redis://localhost:6379/0
secret_key: y
challenge_validity_duration: 2m
max_image_payload_size: 1024
log_backend: zerolog
test_numbers:
  "+912222": "654321"
`)

	c, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/0", c.NotifierURL)
	assert.Equal(t, 2*time.Minute, c.ChallengeValidityDuration)
	assert.Equal(t, 1024, c.MaxImagePayloadSize)
	assert.Equal(t, "zerolog", c.LogBackend)
	assert.Equal(t, ":9090", c.MetricsAddr)
	assert.Equal(t, map[string]string{"+912222": "654321"}, c.TestNumbers)
}

func TestLoad_BadFile(t *testing.T) {
	chdirTemp(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)

	path := writeFile(t, "broken.json", `{"endpoint_addr_grpc": 1}`)
	_, err = Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	chdirTemp(t)

	path := writeFile(t, "cfg.json", `{"endpoint_addr_grpc": ":6000", "secret_key": "file"}`)
	t.Setenv("SECURECHAT_GRPC_ADDR", ":7000")
	t.Setenv("SECURECHAT_CHALLENGE_TTL", "30s")
	t.Setenv("SECURECHAT_MAX_IMAGE_PAYLOAD_SIZE", "2048")

	c, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.EndpointAddrGRPC)
	assert.Equal(t, "file", c.SecretKey)
	assert.Equal(t, 30*time.Second, c.ChallengeValidityDuration)
	assert.Equal(t, 2048, c.MaxImagePayloadSize)
}

func TestLoad_DotEnv(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(".env", []byte("SECURECHAT_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SECURECHAT_LOG_LEVEL") })

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_BadEnv(t *testing.T) {
	chdirTemp(t)

	t.Setenv("SECURECHAT_ACCESS_TOKEN_TTL", "forever")
	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECURECHAT_ACCESS_TOKEN_TTL")
}

func TestLoad_FlagsWin(t *testing.T) {
	chdirTemp(t)

	t.Setenv("SECURECHAT_GRPC_ADDR", ":7000")
	args := []string{"-a", ":8000", "-r", "pgx", "-d", "postgres://db", "-n", "redis://r:6379", "-s", "flag", "-t", "5", "-x", "ignored"}

	c, err := Load("", args)
	require.NoError(t, err)
	assert.Equal(t, ":8000", c.EndpointAddrGRPC)
	assert.Equal(t, "pgx", c.DatabaseDriver)
	assert.Equal(t, "postgres://db", c.DatabaseDSN)
	assert.Equal(t, "redis://r:6379", c.NotifierURL)
	assert.Equal(t, "flag", c.SecretKey)
	assert.Equal(t, 5*time.Minute, c.AccessTokenValidityDuration)
}

func TestLoad_UnsetDurationFlagKeepsFileValue(t *testing.T) {
	chdirTemp(t)

	path := writeFile(t, "cfg.json", `{"access_token_validity_duration": "90s"}`)
	c, err := Load(path, []string{"-a", ":1"})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, c.AccessTokenValidityDuration)
}

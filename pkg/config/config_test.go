package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/germanamz/genai/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "genai.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Full(t *testing.T) {
	t.Setenv("TEST_GENAI_KEY", "secret")

	path := writeConfig(t, `
api_key: ${TEST_GENAI_KEY}
api_version: v6
base_url: http://localhost:9000
timeout: 30s
api_client: my-app/1.0
max_retries: 2
headers:
  x-trace: abc
models:
  text: gemini-pro
  image: tunedModels/pics
output:
  s3_bucket: media
  s3_prefix: generated
  region: eu-west-1
`)

	cfg, err := config.Load(path, false)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "gemini-pro", cfg.Models.Text)
	assert.Equal(t, "tunedModels/pics", cfg.Models.Image)
	assert.Equal(t, config.Default().Models.Speech, cfg.Models.Speech)
	assert.Equal(t, "media", cfg.Output.S3Bucket)

	opts := cfg.RequestOptions()
	assert.Equal(t, "v6", opts.APIVersion)
	assert.Equal(t, "http://localhost:9000", opts.BaseURL)
	assert.Equal(t, 30*time.Second, opts.Timeout)
	assert.Equal(t, "my-app/1.0", opts.APIClient)
	assert.Equal(t, 2, opts.MaxRetries)
	assert.Equal(t, map[string]string{"x-trace": "abc"}, opts.CustomHeaders)
}

func TestLoad_MissingAllowed(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_MissingNotAllowed(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "api_key: [unterminated")

	_, err := config.Load(path, false)
	assert.ErrorContains(t, err, "config: parse")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		err  string
	}{
		{"bad timeout", config.Config{Timeout: "soon"}, "invalid timeout"},
		{"negative timeout", config.Config{Timeout: "-1s"}, "must not be negative"},
		{"negative retries", config.Config{MaxRetries: -1}, "max_retries"},
		{"reserved header", config.Config{Headers: map[string]string{"X-Goog-Api-Key": "k"}}, "reserved"},
		{"prefix without bucket", config.Config{Output: config.OutputConfig{S3Prefix: "p"}}, "requires output.s3_bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Validate(), tt.err)
		})
	}
}

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}

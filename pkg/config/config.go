// Package config loads the YAML configuration used by the genai CLI and MCP
// server and converts it into request options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/germanamz/genai/pkg/request"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	APIKey     string            `yaml:"api_key"` //nolint:gosec // configuration field, not a hardcoded secret
	BaseURL    string            `yaml:"base_url"`
	APIVersion string            `yaml:"api_version"`
	Timeout    string            `yaml:"timeout"` // Duration string, e.g. "30s".
	APIClient  string            `yaml:"api_client"`
	MaxRetries int               `yaml:"max_retries"`
	Headers    map[string]string `yaml:"headers"`
	Models     ModelsConfig      `yaml:"models"`
	Output     OutputConfig      `yaml:"output"`
}

// ModelsConfig names the default model per modality.
type ModelsConfig struct {
	Text   string `yaml:"text"`
	Image  string `yaml:"image"`
	Speech string `yaml:"speech"`
}

// OutputConfig says where generated media is written. S3Bucket takes
// precedence over Dir.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	S3Bucket string `yaml:"s3_bucket"`
	S3Prefix string `yaml:"s3_prefix"`
	Region   string `yaml:"region"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Models: ModelsConfig{
			Text:   "gemini-1.5-flash",
			Image:  "imagen-3.0-generate-001",
			Speech: "gemini-2.5-flash-preview-tts",
		},
		Output: OutputConfig{Dir: "."},
	}
}

// Load reads a YAML file over Default(). Environment variables referenced as
// ${VAR} or $VAR are expanded before parsing so secrets can stay in the
// environment. A missing file yields the defaults when allowMissing is set.
func Load(path string, allowMissing bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	if err := Parse([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML into cfg, keeping fields the document leaves out.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse: %w", err)
	}

	return nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("config: invalid timeout %q: %w", c.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
		}
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("config: max_retries must not be negative, got %d", c.MaxRetries)
	}

	for name := range c.Headers {
		if strings.EqualFold(name, "x-goog-api-key") || strings.EqualFold(name, "x-goog-api-client") {
			return fmt.Errorf("config: header %q is reserved", name)
		}
	}

	if c.Output.S3Prefix != "" && c.Output.S3Bucket == "" {
		return errors.New("config: output.s3_prefix requires output.s3_bucket")
	}

	return nil
}

// RequestOptions converts the transport settings. Call Validate first; an
// unparsable timeout is ignored here.
func (c Config) RequestOptions() request.RequestOptions {
	opts := request.RequestOptions{
		APIVersion:    c.APIVersion,
		BaseURL:       c.BaseURL,
		APIClient:     c.APIClient,
		CustomHeaders: c.Headers,
		MaxRetries:    c.MaxRetries,
	}

	if d, err := time.ParseDuration(c.Timeout); err == nil {
		opts.Timeout = d
	}

	return opts
}

// Package config manages application configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that decodes from "30s"-style strings in both
// JSON and YAML. Bare JSON numbers are taken as nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*d = Duration(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string or number: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// Caption sources.
const (
	// CaptionSourceTranscriptAPI uses the youtube-transcript-api library,
	// which falls back to auto-generated captions.
	CaptionSourceTranscriptAPI = "transcript-api"
	// CaptionSourceTimedtext queries the timedtext endpoint for one language.
	CaptionSourceTimedtext = "timedtext"
)

// Config holds all application configuration for ythistory runs.
type Config struct {
	// ClientSecrets is the OAuth client-secret file for the live flow.
	ClientSecrets string `json:"client_secrets" yaml:"client_secrets"`
	// Output is where the transcript artifact is written.
	Output string `json:"output" yaml:"output"`
	// PlaylistID is the watch-history collection to walk.
	PlaylistID string `json:"playlist_id" yaml:"playlist_id"`
	// Language is the caption language requested from the transcript source.
	// The transcript-api source accepts a comma-separated preference list.
	Language string `json:"language" yaml:"language"`
	// CaptionSource selects where transcripts come from.
	CaptionSource string `json:"caption_source" yaml:"caption_source"`

	// HTTPTimeout bounds each transcript request.
	HTTPTimeout Duration `json:"http_timeout" yaml:"http_timeout"`
	// RequestsPerSecond paces transcript requests per host (0 = unpaced).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	// UserAgent is sent with transcript requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		ClientSecrets:     "client_secret.json",
		Output:            "transcripts_yesterday.txt",
		PlaylistID:        "HL",
		Language:          "en",
		CaptionSource:     CaptionSourceTranscriptAPI,
		HTTPTimeout:       Duration(30 * time.Second),
		RequestsPerSecond: 0,
		UserAgent:         "ythistory/1.0",
		LogLevel:          "info",
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Config file is optional
	if err := cfg.loadFromFile(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load config file: %w", err)
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// searchPaths lists candidate config files in lookup order.
func searchPaths() []string {
	names := []string{"ythistory.yaml", "ythistory.yml", "ythistory.json"}
	paths := append([]string(nil), names...)
	if home, err := os.UserHomeDir(); err == nil {
		for _, n := range names {
			paths = append(paths, filepath.Join(home, ".config", "ythistory", n))
		}
	}
	return paths
}

// loadFromFile loads the first config file found in searchPaths.
func (c *Config) loadFromFile() error {
	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		return c.decode(path, data)
	}
	return os.ErrNotExist
}

// LoadFile overlays the config file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.decode(path, data)
}

func (c *Config) decode(path string, data []byte) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("YTHISTORY_CLIENT_SECRETS"); v != "" {
		c.ClientSecrets = v
	}
	if v := os.Getenv("YTHISTORY_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("YTHISTORY_PLAYLIST_ID"); v != "" {
		c.PlaylistID = v
	}
	if v := os.Getenv("YTHISTORY_LANG"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("YTHISTORY_CAPTION_SOURCE"); v != "" {
		c.CaptionSource = v
	}
	if v := os.Getenv("YTHISTORY_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("YTHISTORY_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = Duration(d)
	}
	if v := os.Getenv("YTHISTORY_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("YTHISTORY_RPS: %w", err)
		}
		c.RequestsPerSecond = f
	}
	if v := os.Getenv("YTHISTORY_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("YTHISTORY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.ClientSecrets == "" {
		return fmt.Errorf("client_secrets must not be empty")
	}
	if c.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if c.PlaylistID == "" {
		return fmt.Errorf("playlist_id must not be empty")
	}
	if c.Language == "" {
		return fmt.Errorf("language must not be empty")
	}
	switch c.CaptionSource {
	case CaptionSourceTranscriptAPI, CaptionSourceTimedtext:
	default:
		return fmt.Errorf("caption_source %q is not one of %s, %s", c.CaptionSource, CaptionSourceTranscriptAPI, CaptionSourceTimedtext)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be non-negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

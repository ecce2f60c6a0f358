package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// RunConfig controls a peuchre run. Every field has a default, so a config
// file only needs the values it changes.
type RunConfig struct {
	// ServerBinary is the euchred executable; ServerArgs precede "-p <port>".
	ServerBinary string   `json:"server_binary"`
	ServerArgs   []string `json:"server_args"`
	Host         string   `json:"host"`
	// GraceMillis is how long to wait for a fresh server to listen.
	GraceMillis int `json:"grace_ms"`
	// TimeoutSeconds is how long a game may go without any message.
	TimeoutSeconds float64 `json:"timeout_seconds"`

	Workers int `json:"workers"`
	// Games is the number of games to play; 0 plays until interrupted.
	Games int    `json:"games"`
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
	// Seed seeds the random strategies; 0 seeds from the clock.
	Seed int64 `json:"seed"`

	CallHandsPath        string `json:"call_hands_path"`
	FollowPath           string `json:"follow_path"`
	FlushIntervalSeconds int    `json:"flush_interval_seconds"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
	// StatusAddr is the listen address of the status server; empty disables it.
	StatusAddr string `json:"status_addr"`
}

var (
	ErrInvalidConfig = errors.New("invalid run config")
)

var (
	cfg      *RunConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the built-in configuration.
func Default() *RunConfig {
	return &RunConfig{
		ServerBinary:         "euchred",
		ServerArgs:           []string{"-m", "-L", "/dev/null"},
		Host:                 "127.0.0.1",
		GraceMillis:          100,
		TimeoutSeconds:       2,
		Workers:              1,
		Team1:                "random",
		Team2:                "random",
		CallHandsPath:        "chand.csv",
		FollowPath:           "follow.csv",
		FlushIntervalSeconds: 60,
		LogLevel:             "info",
		LogFormat:            "text",
	}
}

// Parse reads a JSON config on top of the defaults.
func Parse(data []byte) (*RunConfig, error) {
	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadRunConfig loads the run configuration from path once. An empty path
// loads the defaults.
func LoadRunConfig(path string) error {
	loadOnce.Do(func() {
		if path == "" {
			cfg = Default()
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read run config: %w", err)
			return
		}
		cfg, loadErr = Parse(data)
	})
	return loadErr
}

// GetRunConfig returns the loaded configuration, or the defaults when
// nothing was loaded.
func GetRunConfig() *RunConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}

// Validate checks the fields that have no safe interpretation.
func (c *RunConfig) Validate() error {
	switch {
	case c.ServerBinary == "":
		return fmt.Errorf("%w: server_binary is empty", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	case c.Games < 0:
		return fmt.Errorf("%w: games must not be negative, got %d", ErrInvalidConfig, c.Games)
	case c.TimeoutSeconds <= 0:
		return fmt.Errorf("%w: timeout_seconds must be positive", ErrInvalidConfig)
	case c.GraceMillis < 0:
		return fmt.Errorf("%w: grace_ms must not be negative", ErrInvalidConfig)
	case c.FlushIntervalSeconds < 0:
		return fmt.Errorf("%w: flush_interval_seconds must not be negative", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

func (c *RunConfig) Grace() time.Duration {
	return time.Duration(c.GraceMillis) * time.Millisecond
}

func (c *RunConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

func (c *RunConfig) FlushInterval() time.Duration {
	return time.Duration(c.FlushIntervalSeconds) * time.Second
}

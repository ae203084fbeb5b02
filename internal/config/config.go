// Package config loads run configuration: defaults, then an optional
// YAML file, then LOGTRIAGE_* environment overrides.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent everywhere else.
const (
	DefaultOutputDir     = "output"
	DefaultChunkSize     = 10
	DefaultProgressEvery = 100
	DefaultLogLevel      = "info"
)

// Config holds all logtriage configuration.
type Config struct {
	// Input is the path of the CSV dataset to analyze.
	Input string `yaml:"input"`

	// OutputDir receives the performance JSON and results CSV.
	OutputDir string `yaml:"output_dir"`

	// Workers is the parallel worker count. 0 means runtime.NumCPU().
	Workers int `yaml:"workers"`

	// ChunkSize is how many records a worker claims at a time.
	ChunkSize int `yaml:"chunk_size"`

	// ProgressEvery is the progress-notification cadence in records.
	// 0 disables progress output.
	ProgressEvery int `yaml:"progress_every"`

	// WebhookURL, when set, receives the run summary as a JSON POST.
	WebhookURL string `yaml:"webhook_url"`

	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// File, when set, additionally receives JSON-formatted log lines.
	File string `yaml:"file"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		OutputDir:     DefaultOutputDir,
		Workers:       runtime.NumCPU(),
		ChunkSize:     DefaultChunkSize,
		ProgressEvery: DefaultProgressEvery,
		Log:           LogConfig{Level: DefaultLogLevel},
	}
}

// Load builds the effective configuration: Default, overlaid with the
// YAML file at path (skipped when path is empty), overlaid with
// environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	return cfg, nil
}

// applyEnv overlays LOGTRIAGE_* environment variables.
func (c *Config) applyEnv() {
	c.Input = getenv("LOGTRIAGE_INPUT", c.Input)
	c.OutputDir = getenv("LOGTRIAGE_OUTPUT_DIR", c.OutputDir)
	c.Workers = getenvInt("LOGTRIAGE_WORKERS", c.Workers)
	c.ChunkSize = getenvInt("LOGTRIAGE_CHUNK_SIZE", c.ChunkSize)
	c.ProgressEvery = getenvInt("LOGTRIAGE_PROGRESS_EVERY", c.ProgressEvery)
	c.WebhookURL = getenv("LOGTRIAGE_WEBHOOK_URL", c.WebhookURL)
	c.Log.Level = getenv("LOGTRIAGE_LOG_LEVEL", c.Log.Level)
	c.Log.File = getenv("LOGTRIAGE_LOG_FILE", c.Log.File)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// internal/config/config.go
//
// This package handles configuration and the .jobdesk directory structure.
// Every place jobdesk runs from gets a .jobdesk/ folder holding the config
// file, the session state, and the journey log.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// JobdeskDir is the name of the directory we create in the working
	// directory.
	JobdeskDir = ".jobdesk"

	defaultAPIBaseURL     = "http://localhost:8000"
	defaultTimeoutSeconds = 15
)

const defaultConfigYAML = `# jobdesk configuration
version: 1

api:
  # Base URL of the marketplace API. Overridable with JOBDESK_API_URL.
  base_url: http://localhost:8000
  timeout_seconds: 15
`

// APIConfig holds the connection settings for the marketplace API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// FileConfig models .jobdesk/config.yaml.
type FileConfig struct {
	Version int       `yaml:"version"`
	API     APIConfig `yaml:"api"`
}

// Config holds the runtime configuration for jobdesk.
type Config struct {
	// WorkDir is the directory jobdesk was launched from.
	WorkDir string

	// JobdeskWorkDir is WorkDir/.jobdesk.
	JobdeskWorkDir string

	File FileConfig
}

// InitJobdeskDir creates the .jobdesk directory structure, writing a default
// config file when none exists.
//
// Structure created:
// .jobdesk/
// ├── logs/   <- journey log
// └── state/  <- persisted session (token + user)
func InitJobdeskDir(workDir string) error {
	jobdeskDir := filepath.Join(workDir, JobdeskDir)
	dirs := []string{
		filepath.Join(jobdeskDir, "logs"),
		filepath.Join(jobdeskDir, "state"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureConfigFile(filepath.Join(jobdeskDir, "config.yaml"))
}

// NewConfig creates a Config populated from .jobdesk/config.yaml with
// environment overrides applied. A .env file in the working directory is
// honored when present.
func NewConfig(workDir string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		WorkDir:        workDir,
		JobdeskWorkDir: filepath.Join(workDir, JobdeskDir),
		File:           defaultFileConfig(),
	}
	if err := cfg.loadFileConfig(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.JobdeskWorkDir, "logs")
}

// StateDir returns the path to the session state directory.
func (c *Config) StateDir() string {
	return filepath.Join(c.JobdeskWorkDir, "state")
}

// ConfigPath returns the on-disk location for the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.JobdeskWorkDir, "config.yaml")
}

// APIBaseURL returns the configured marketplace API base URL.
func (c *Config) APIBaseURL() string {
	return c.File.API.BaseURL
}

// APITimeout returns the per-request timeout.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.File.API.TimeoutSeconds) * time.Second
}

func (c *Config) loadFileConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.File = parsed
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if url := strings.TrimSpace(os.Getenv("JOBDESK_API_URL")); url != "" {
		c.File.API.BaseURL = url
	}
	if raw := strings.TrimSpace(os.Getenv("JOBDESK_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return fmt.Errorf("config: invalid JOBDESK_TIMEOUT_SECONDS %q", raw)
		}
		c.File.API.TimeoutSeconds = seconds
	}
	return nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version: 1,
		API: APIConfig{
			BaseURL:        defaultAPIBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
	}
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	fc.API.BaseURL = strings.TrimSpace(fc.API.BaseURL)
	if fc.API.BaseURL == "" {
		fc.API.BaseURL = defaultAPIBaseURL
	}
	if fc.API.TimeoutSeconds == 0 {
		fc.API.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (fc *FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if !strings.HasPrefix(fc.API.BaseURL, "http://") && !strings.HasPrefix(fc.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", fc.API.BaseURL)
	}
	if fc.API.TimeoutSeconds < 1 {
		return fmt.Errorf("api.timeout_seconds must be >= 1")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

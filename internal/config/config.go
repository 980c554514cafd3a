// Package config resolves run settings from defaults, an optional YAML file,
// the environment and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ryo246912/gh-unresolved-comments/internal/service"
	"gopkg.in/yaml.v3"
)

const (
	defaultCommentLimit = service.DefaultCommentLimit
	defaultFormat       = service.OutputIssue
	defaultLogLevel     = "info"
)

// Config holds the settings a run is built from
type Config struct {
	CommentLimit int           `yaml:"comment_limit"`
	CreateIssue  bool          `yaml:"create_issue"`
	Repo         string        `yaml:"repo"`
	Format       string        `yaml:"format"`
	Confirm      bool          `yaml:"confirm"`
	Timeout      time.Duration `yaml:"timeout"`
	LogLevel     string        `yaml:"log_level"`
	UseGHAuth    bool          `yaml:"gh_auth"`
}

// Overrides carries values set explicitly by flags or the environment.
// Nil fields are left alone.
type Overrides struct {
	CommentLimit *int
	CreateIssue  *bool
	Repo         *string
	Format       *string
	Confirm      *bool
	Timeout      *time.Duration
	LogLevel     *string
	UseGHAuth    *bool
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		CommentLimit: defaultCommentLimit,
		Format:       defaultFormat,
		LogLevel:     defaultLogLevel,
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// returns the defaults. Call Validate once every override is applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Apply sets every non-nil override on the config
func (c *Config) Apply(o Overrides) {
	if o.CommentLimit != nil {
		c.CommentLimit = *o.CommentLimit
	}
	if o.CreateIssue != nil {
		c.CreateIssue = *o.CreateIssue
	}
	if o.Repo != nil {
		c.Repo = *o.Repo
	}
	if o.Format != nil {
		c.Format = *o.Format
	}
	if o.Confirm != nil {
		c.Confirm = *o.Confirm
	}
	if o.Timeout != nil {
		c.Timeout = *o.Timeout
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.UseGHAuth != nil {
		c.UseGHAuth = *o.UseGHAuth
	}
}

// Validate checks values that cannot be fixed later
func (c *Config) Validate() error {
	if c.CommentLimit <= 0 {
		return fmt.Errorf("comment limit must be positive, got %d", c.CommentLimit)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return service.ValidateFormat(c.Format)
}

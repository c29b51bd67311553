// ABOUTME: Configuration loading and parsing for portfolio-admin
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete portfolio-admin configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Email    EmailConfig    `yaml:"email"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds the HTTP listen address
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds session manager configuration
type AuthConfig struct {
	DefaultPassword string `yaml:"default_password"`
	OwnerPassword   string `yaml:"owner_password"`
	TokenSecret     string `yaml:"token_secret"`
	MaxAttempts     int    `yaml:"max_attempts"`

	SessionTTL   time.Duration `yaml:"-"`
	LockDuration time.Duration `yaml:"-"`
	LoginDelay   time.Duration `yaml:"-"`
	UnlockDelay  time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	SessionTTLRaw   string `yaml:"session_ttl"`
	LockDurationRaw string `yaml:"lock_duration"`
	LoginDelayRaw   string `yaml:"login_delay"`
	UnlockDelayRaw  string `yaml:"unlock_delay"`
}

// EmailConfig holds EmailJS configuration. Values stored from the admin
// panel fill any field left empty here.
type EmailConfig struct {
	ServiceID  string `yaml:"service_id"`
	TemplateID string `yaml:"template_id"`
	PublicKey  string `yaml:"public_key"`
	ToEmail    string `yaml:"to_email"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults applied after parsing for fields left unset.
const (
	DefaultAdminPassword = "ayoub100"
	DefaultOwnerPassword = "owner_unlock_2024"
)

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyDefaults()

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = "localhost:8080"
	}
	if c.Auth.DefaultPassword == "" {
		c.Auth.DefaultPassword = DefaultAdminPassword
	}
	if c.Auth.OwnerPassword == "" {
		c.Auth.OwnerPassword = DefaultOwnerPassword
	}
	if c.Auth.MaxAttempts == 0 {
		c.Auth.MaxAttempts = 5
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 24 * time.Hour
	}
	if c.Auth.LockDuration == 0 {
		c.Auth.LockDuration = 15 * time.Minute
	}
	if c.Auth.LoginDelayRaw == "" {
		c.Auth.LoginDelay = 500 * time.Millisecond
	}
	if c.Auth.UnlockDelayRaw == "" {
		c.Auth.UnlockDelay = 300 * time.Millisecond
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("auth.token_secret is required (run 'portfolio-admin init' to generate one)")
	}
	if len(c.Auth.TokenSecret) < 32 {
		return fmt.Errorf("auth.token_secret must be at least 32 bytes")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	fields := []struct {
		raw  string
		name string
		dst  *time.Duration
	}{
		{cfg.Auth.SessionTTLRaw, "session_ttl", &cfg.Auth.SessionTTL},
		{cfg.Auth.LockDurationRaw, "lock_duration", &cfg.Auth.LockDuration},
		{cfg.Auth.LoginDelayRaw, "login_delay", &cfg.Auth.LoginDelay},
		{cfg.Auth.UnlockDelayRaw, "unlock_delay", &cfg.Auth.UnlockDelay},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", f.name, f.raw, err)
		}
		*f.dst = d
	}
	return nil
}

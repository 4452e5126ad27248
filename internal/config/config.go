package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/roberthamel/optiprompt/internal/prompt"
)

// Config holds the user's default settings.
type Config struct {
	Technique    string `yaml:"technique,omitempty"`
	OutputFormat string `yaml:"output-format,omitempty"`
	MaxTokens    int    `yaml:"max-tokens,omitempty"`
	QualityGate  int    `yaml:"quality-gate,omitempty"`
	ExpertRole   string `yaml:"expert-role,omitempty"`
	TemplatesDir string `yaml:"templates-dir,omitempty"`
	HistoryDir   string `yaml:"history-dir,omitempty"`
	LogLevel     string `yaml:"log-level,omitempty"`
}

// ValidKeys lists the allowed config keys.
var ValidKeys = []string{
	"technique", "output-format", "max-tokens", "quality-gate",
	"expert-role", "templates-dir", "history-dir", "log-level",
}

// EnvPrefix prefixes the environment overrides, e.g. OP_MAX_TOKENS.
const EnvPrefix = "OP"

var logLevels = []string{"debug", "info", "warn", "error"}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "op"), nil
}

// Path returns the location of the config file.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file from ~/.config/op/config.yaml.
// Returns an empty Config if the file doesn't exist.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to ~/.config/op/config.yaml.
func Save(cfg *Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(p, data, 0o644)
}

// Set validates and updates a single key in the config. An empty value
// clears the key.
func Set(key, value string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	if err := cfg.set(key, value); err != nil {
		return err
	}
	return Save(cfg)
}

func (c *Config) set(key, value string) error {
	switch key {
	case "technique":
		if value != "" && !prompt.Technique(value).Valid() {
			return fmt.Errorf("invalid technique %q", value)
		}
		c.Technique = value
	case "output-format":
		if value != "" && !prompt.OutputFormat(value).Valid() {
			return fmt.Errorf("invalid output format %q", value)
		}
		c.OutputFormat = value
	case "max-tokens":
		n, err := parseCount(key, value)
		if err != nil {
			return err
		}
		c.MaxTokens = n
	case "quality-gate":
		n, err := parseCount(key, value)
		if err != nil {
			return err
		}
		if n > 100 {
			return fmt.Errorf("invalid quality-gate %d: must be between 0 and 100", n)
		}
		c.QualityGate = n
	case "expert-role":
		c.ExpertRole = value
	case "templates-dir":
		c.TemplatesDir = value
	case "history-dir":
		c.HistoryDir = value
	case "log-level":
		if value != "" && !contains(logLevels, value) {
			return fmt.Errorf("invalid log-level %q (valid: %s)", value, strings.Join(logLevels, ", "))
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys, ", "))
	}
	return nil
}

func parseCount(key, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, value)
	}
	return n, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// List returns key-value pairs for display. Unset numeric keys are empty.
func List() (map[string]string, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	return cfg.values(), nil
}

func (c *Config) values() map[string]string {
	return map[string]string{
		"technique":     c.Technique,
		"output-format": c.OutputFormat,
		"max-tokens":    formatCount(c.MaxTokens),
		"quality-gate":  formatCount(c.QualityGate),
		"expert-role":   c.ExpertRole,
		"templates-dir": c.TemplatesDir,
		"history-dir":   c.HistoryDir,
		"log-level":     c.LogLevel,
	}
}

func formatCount(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Reset removes the config file.
func Reset() error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing config: %w", err)
	}
	return nil
}

// FromOptions extracts the configurable fields of opts, as set in a brief's
// frontmatter.
func FromOptions(opts prompt.Options) *Config {
	return &Config{
		Technique:    string(opts.Technique),
		OutputFormat: string(opts.OutputFormat),
		MaxTokens:    opts.MaxTokens,
		QualityGate:  opts.QualityGate,
		ExpertRole:   opts.ExpertRole,
	}
}

// Apply overlays the non-empty settings of c onto opts.
func (c *Config) Apply(opts prompt.Options) prompt.Options {
	if c.Technique != "" {
		opts.Technique = prompt.Technique(c.Technique)
	}
	if c.OutputFormat != "" {
		opts.OutputFormat = prompt.OutputFormat(c.OutputFormat)
	}
	if c.MaxTokens > 0 {
		opts.MaxTokens = c.MaxTokens
	}
	if c.QualityGate > 0 {
		opts.QualityGate = c.QualityGate
	}
	if c.ExpertRole != "" {
		opts.ExpertRole = c.ExpertRole
	}
	return opts
}

// Resolve merges settings in priority order:
// CLI flags > frontmatter > env vars (OP_*) > config file.
// Either cli or frontmatter may be nil.
func Resolve(cli, frontmatter *Config) (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if _, err := os.Stat(p); err == nil {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	r := &Config{}
	for _, key := range ValidKeys {
		if err := r.set(key, v.GetString(key)); err != nil {
			return nil, fmt.Errorf("resolving %s: %w", key, err)
		}
	}

	r.overlay(frontmatter)
	r.overlay(cli)
	return r, nil
}

func (c *Config) overlay(o *Config) {
	if o == nil {
		return
	}
	if o.Technique != "" {
		c.Technique = o.Technique
	}
	if o.OutputFormat != "" {
		c.OutputFormat = o.OutputFormat
	}
	if o.MaxTokens > 0 {
		c.MaxTokens = o.MaxTokens
	}
	if o.QualityGate > 0 {
		c.QualityGate = o.QualityGate
	}
	if o.ExpertRole != "" {
		c.ExpertRole = o.ExpertRole
	}
	if o.TemplatesDir != "" {
		c.TemplatesDir = o.TemplatesDir
	}
	if o.HistoryDir != "" {
		c.HistoryDir = o.HistoryDir
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

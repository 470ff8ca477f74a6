// Package config loads and manages deskroute configuration.
// Configuration source priority (highest to lowest):
// 1. Environment variables (DESKROUTE_*), with .env support
// 2. Config file path specified via --config flag
// 3. deskroute.yaml in the working directory
// 4. Built-in defaults
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/deskroute/deskroute/internal/hygiene"
	"github.com/deskroute/deskroute/internal/router"
)

// DefaultConfigFile is the config file picked up from the working
// directory when --config is not given.
const DefaultConfigFile = "deskroute.yaml"

// Config is the full deskroute configuration.
type Config struct {
	// Corpus is the path of the JSONL evaluation corpus.
	Corpus string `yaml:"corpus" env:"DESKROUTE_CORPUS"`
	// Report is the path the JSON report is written to.
	Report string `yaml:"report" env:"DESKROUTE_REPORT"`
	// PassThreshold is the minimum pass percentage (0-100) for an eval
	// run to exit zero.
	PassThreshold float64 `yaml:"pass_threshold" env:"DESKROUTE_PASS_THRESHOLD"`
	// Workers is the number of concurrent case evaluations (1 = sequential).
	Workers int `yaml:"workers" env:"DESKROUTE_WORKERS"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level" env:"DESKROUTE_LOG_LEVEL"`

	// Hygiene configures the content scanner.
	Hygiene hygiene.Config `yaml:"hygiene"`

	// Rules optionally overrides keyword tables of the default rule
	// set. Only non-empty tables take effect.
	Rules *router.RuleSet `yaml:"rules"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Corpus:        "corpus/cases.jsonl",
		Report:        "report.json",
		PassThreshold: 100.0,
		Workers:       1,
		LogLevel:      "info",
		Hygiene:       hygiene.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, the config file and the
// environment. path may be empty, in which case DefaultConfigFile is
// used when present.
func Load(path string) (*Config, error) {
	// .env is optional; ignore when absent.
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults apply.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.PassThreshold < 0 || c.PassThreshold > 100 {
		return fmt.Errorf("pass_threshold must be within 0-100, got %v", c.PassThreshold)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Corpus == "" {
		return fmt.Errorf("corpus path must not be empty")
	}
	if c.Report == "" {
		return fmt.Errorf("report path must not be empty")
	}
	return nil
}

// RuleSet returns the effective routing rule set: the defaults with
// any configured overrides merged in.
func (c *Config) RuleSet() router.RuleSet {
	rules := router.DefaultRuleSet()
	if c.Rules != nil {
		rules = rules.Merge(*c.Rules)
	}
	return rules
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskroute/deskroute/internal/router"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deskroute.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	// Point at a directory without a deskroute.yaml.
	// t.Chdir requires Go 1.24; emulate it for older toolchains.
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(prev) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "corpus/cases.jsonl", cfg.Corpus)
	assert.Equal(t, "report.json", cfg.Report)
	assert.Equal(t, 100.0, cfg.PassThreshold)
	assert.Equal(t, 1, cfg.Workers)
	assert.NotEmpty(t, cfg.Hygiene.BannedTerms)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
corpus: other/cases.jsonl
pass_threshold: 90
workers: 4
log_level: debug
rules:
  contact:
    - opening times
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other/cases.jsonl", cfg.Corpus)
	assert.Equal(t, 90.0, cfg.PassThreshold)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched keys keep defaults.
	assert.Equal(t, "report.json", cfg.Report)

	rules := cfg.RuleSet()
	assert.Equal(t, []string{"opening times"}, rules.Contact)
	assert.Equal(t, router.DefaultRuleSet().Billing, rules.Billing)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "pass_threshold: 90\n")
	t.Setenv("DESKROUTE_PASS_THRESHOLD", "75.5")
	t.Setenv("DESKROUTE_WORKERS", "8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75.5, cfg.PassThreshold)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "threshold_too_high", mutate: func(c *Config) { c.PassThreshold = 101 }, wantErr: "pass_threshold"},
		{name: "threshold_negative", mutate: func(c *Config) { c.PassThreshold = -1 }, wantErr: "pass_threshold"},
		{name: "no_workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: "workers"},
		{name: "no_corpus", mutate: func(c *Config) { c.Corpus = "" }, wantErr: "corpus"},
		{name: "no_report", mutate: func(c *Config) { c.Report = "" }, wantErr: "report"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRuleSetWithoutOverrides(t *testing.T) {
	cfg := Default()
	assert.Equal(t, router.DefaultRuleSet(), cfg.RuleSet())
}

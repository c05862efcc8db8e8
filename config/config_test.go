package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/statbench/report"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "statbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Each)
	assert.Equal(t, "test_", cfg.Prefix)
	assert.Equal(t, report.DefaultOrder(), cfg.Order)
	assert.Equal(t, "%-.4g", cfg.NumberFormat)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
each: 9
format: csv
sort_by: name
order: [name, mean, var]
header: [Routine, Mean, Variance]
suites: [sorting]
seed: 42
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 9, cfg.Each)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, "name", cfg.SortBy)
	assert.Equal(t, []string{"name", "mean", "var"}, cfg.Order)
	assert.Equal(t, []string{"sorting"}, cfg.Suites)
	assert.Equal(t, int64(42), cfg.Seed)

	// Untouched keys keep their defaults.
	assert.Equal(t, "test_", cfg.Prefix)
	assert.Equal(t, "eachTearDown", cfg.EachTearDown)
	assert.Equal(t, "Benchmark Report", cfg.Title)

	assert.Equal(t, 9, cfg.Harness().Each)
	assert.Equal(t, "csv", cfg.Report().Format)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "each: [not, a, number]"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero each", func(c *Config) { c.Each = 0 }, ErrInvalidConfig},
		{"unknown sort", func(c *Config) { c.SortBy = "speed" }, report.ErrUnknownField},
		{"unknown order", func(c *Config) { c.Order = []string{"name", "p99"} }, report.ErrUnknownField},
		{"header mismatch", func(c *Config) { c.Header = []string{"only"} }, report.ErrHeaderMismatch},
		{"header against default order", func(c *Config) {
			c.Order = nil
			c.Header = []string{"only"}
		}, report.ErrHeaderMismatch},
		{"string number format", func(c *Config) { c.NumberFormat = "%s" }, report.ErrNumberFormat},
		{"two number verbs", func(c *Config) { c.NumberFormat = "%f/%f" }, report.ErrNumberFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	cfg := Default()
	cfg.SortBy = "sumOfSquares"
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.NumberFormat = "%d"
	assert.NoError(t, cfg.Validate())
}

func TestLoadEmptyOrderWithHeader(t *testing.T) {
	path := writeFile(t, `
order: []
header: [Routine, Rank, Runs, Mean, Stdev, Baseline]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Order)

	_, err = report.NewTable(nil).Render(cfg.Report())
	assert.NoError(t, err)
}

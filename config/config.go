// Package config loads the shared settings applied to every suite in a
// report: engine parameters, rendering options and suite selection.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/weiihann/statbench/harness"
	"github.com/weiihann/statbench/report"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every recognized option. Keys match the YAML file.
type Config struct {
	Each         int      `yaml:"each"`
	Prefix       string   `yaml:"prefix"`
	SetUp        string   `yaml:"set_up"`
	TearDown     string   `yaml:"tear_down"`
	EachSetUp    string   `yaml:"each_set_up"`
	EachTearDown string   `yaml:"each_tear_down"`
	Format       string   `yaml:"format"`
	SortBy       string   `yaml:"sort_by"`
	Order        []string `yaml:"order"`
	Header       []string `yaml:"header"`
	NumberFormat string   `yaml:"number_format"`
	Title        string   `yaml:"title"`
	Seed         int64    `yaml:"seed"`
	Suites       []string `yaml:"suites"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	h := harness.DefaultConfig()

	return Config{
		Each:         h.Each,
		Prefix:       h.Prefix,
		SetUp:        h.SetUp,
		TearDown:     h.TearDown,
		EachSetUp:    h.EachSetUp,
		EachTearDown: h.EachTearDown,
		Format:       "markdown",
		SortBy:       report.FieldMean,
		Order:        report.DefaultOrder(),
		NumberFormat: report.DefaultNumberFormat,
		Title:        "Benchmark Report",
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values that would fail later during a run or report.
func (c Config) Validate() error {
	if c.Each < 1 {
		return fmt.Errorf("%w: each must be >= 1, got %d", ErrInvalidConfig, c.Each)
	}

	if c.SortBy != "" {
		if _, ok := report.CanonicalField(c.SortBy); !ok {
			return fmt.Errorf("%w: sort_by: %w: %q",
				ErrInvalidConfig, report.ErrUnknownField, c.SortBy)
		}
	}

	for _, f := range c.Order {
		if _, ok := report.CanonicalField(f); !ok {
			return fmt.Errorf("%w: order: %w: %q",
				ErrInvalidConfig, report.ErrUnknownField, f)
		}
	}

	order := c.Order
	if len(order) == 0 {
		order = report.DefaultOrder()
	}

	if len(c.Header) > 0 && len(c.Header) != len(order) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, report.ErrHeaderMismatch)
	}

	if c.NumberFormat != "" {
		if err := report.CheckNumberFormat(c.NumberFormat); err != nil {
			return fmt.Errorf("%w: number_format: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

// Harness returns the engine parameters.
func (c Config) Harness() harness.Config {
	return harness.Config{
		Each:         c.Each,
		Prefix:       c.Prefix,
		SetUp:        c.SetUp,
		TearDown:     c.TearDown,
		EachSetUp:    c.EachSetUp,
		EachTearDown: c.EachTearDown,
	}
}

// Report returns the rendering options.
func (c Config) Report() report.Options {
	return report.Options{
		Format:       c.Format,
		SortBy:       c.SortBy,
		Order:        c.Order,
		Header:       c.Header,
		NumberFormat: c.NumberFormat,
	}
}

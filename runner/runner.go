// Package runner benchmarks a set of suites with shared settings and
// assembles their tables into a single titled report.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weiihann/statbench/config"
	"github.com/weiihann/statbench/harness"
	"github.com/weiihann/statbench/report"
	"github.com/weiihann/statbench/suite"
)

// Version is reported in the environment banner.
var Version = "0.1.0"

// Outcome is the result of benchmarking one suite.
type Outcome struct {
	Suite     *suite.Suite
	TotalRuns int
	Table     *report.Table
}

// Program runs suites with one shared configuration.
type Program struct {
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
	runID  string
}

// New creates a Program.
func New(cfg config.Config, logger *slog.Logger) *Program {
	return &Program{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		runID:  uuid.NewString(),
	}
}

// RunID identifies this program invocation in logs and the banner.
func (p *Program) RunID() string { return p.runID }

// Run benchmarks each suite in order. The first failure aborts the
// remaining suites.
func (p *Program) Run(ctx context.Context, suites []*suite.Suite) ([]Outcome, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	seed := p.cfg.Seed
	if seed == 0 {
		seed = p.now().UnixNano()
	}

	p.logger.InfoContext(ctx, "starting benchmark",
		slog.String("run_id", p.runID),
		slog.Int("suites", len(suites)),
		slog.Int("each", p.cfg.Each),
		slog.Int64("seed", seed),
	)

	outcomes := make([]Outcome, 0, len(suites))

	for i, s := range suites {
		engine := harness.New(s, p.cfg.Harness(),
			harness.WithRand(rand.New(rand.NewSource(seed+int64(i)))),
			harness.WithLogger(p.logger),
		)

		if err := engine.Run(ctx); err != nil {
			return nil, fmt.Errorf("run %s: %w", s.Name, err)
		}

		tbl, err := engine.Table()
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", s.Name, err)
		}

		outcomes = append(outcomes, Outcome{
			Suite:     s,
			TotalRuns: engine.TotalRuns(),
			Table:     tbl,
		})
	}

	return outcomes, nil
}

// Write renders the report: title, one section per suite, then the
// environment banner.
func (p *Program) Write(w io.Writer, outcomes []Outcome) error {
	format := p.cfg.Format
	opts := p.cfg.Report()

	var b strings.Builder

	b.WriteString(report.Heading(format, p.cfg.Title, 1))
	b.WriteString("\n\n")

	totalRuns := 0

	for _, o := range outcomes {
		text, err := o.Table.Render(opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", o.Suite.Name, err)
		}

		b.WriteString(report.Heading(format, o.Suite.Title(), 2))
		b.WriteString("\n\n")
		b.WriteString(text)
		b.WriteString("\n\n")

		totalRuns += o.TotalRuns
	}

	b.WriteString(p.banner(totalRuns))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// WriteJSON writes the outcomes as JSON sections, sorted by the
// configured field.
func (p *Program) WriteJSON(w io.Writer, outcomes []Outcome) error {
	sortBy := p.cfg.SortBy
	if sortBy == "" {
		sortBy = report.FieldMean
	}

	sections := make([]report.Section, 0, len(outcomes))

	for _, o := range outcomes {
		if err := o.Table.SortBy(sortBy); err != nil {
			return fmt.Errorf("sort %s: %w", o.Suite.Name, err)
		}

		sections = append(sections, report.Section{
			Title: o.Suite.Title(),
			Runs:  o.TotalRuns,
			Rows:  o.Table.Rows,
		})
	}

	return report.GenerateJSON(w, sections)
}

func (p *Program) banner(totalRuns int) string {
	lines := []string{
		fmt.Sprintf("Total runs: %d run in arbitrary order", totalRuns),
		fmt.Sprintf("Go version: %s", runtime.Version()),
		fmt.Sprintf("System: %s %s", runtime.GOARCH, runtime.GOOS),
		fmt.Sprintf("Version: statbench v%s", Version),
		fmt.Sprintf("Date: %s", p.now().UTC().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Run ID: %s", p.runID),
	}

	return strings.Join(lines, "\n") + "\n"
}

package harness

import (
	"context"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/weiihann/statbench/report"
	"github.com/weiihann/statbench/stats"
	"github.com/weiihann/statbench/suite"
)

// Defaults for Config.
const (
	DefaultEach         = 5
	DefaultPrefix       = "test_"
	DefaultSetUp        = "setUp"
	DefaultTearDown     = "tearDown"
	DefaultEachSetUp    = "eachSetUp"
	DefaultEachTearDown = "eachTearDown"
)

// Config holds the parameters fixed when an Engine is created.
// Zero fields take their defaults.
type Config struct {
	Each         int
	Prefix       string
	SetUp        string
	TearDown     string
	EachSetUp    string
	EachTearDown string
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Each < 1 {
		c.Each = DefaultEach
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.SetUp == "" {
		c.SetUp = DefaultSetUp
	}
	if c.TearDown == "" {
		c.TearDown = DefaultTearDown
	}
	if c.EachSetUp == "" {
		c.EachSetUp = DefaultEachSetUp
	}
	if c.EachTearDown == "" {
		c.EachTearDown = DefaultEachTearDown
	}

	return c
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the source used to shuffle the schedule.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock sets the time source used to measure routines.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// Engine benchmarks the routines of a single suite.
type Engine struct {
	suite  *suite.Suite
	cfg    Config
	n      int
	rng    *rand.Rand
	now    func() time.Time
	logger *slog.Logger

	routines []string
	results  []stats.Accumulator
	schedule []int
	mode     HookMode
	table    *report.Table
}

// New creates an Engine for s. The suite's own Each, when set, takes
// precedence over cfg.Each.
func New(s *suite.Suite, cfg Config, opts ...Option) *Engine {
	cfg = cfg.withDefaults()

	e := &Engine{
		suite: s,
		cfg:   cfg,
		n:     cfg.Each,
		now:   time.Now,
	}
	if s.Each > 0 {
		e.n = s.Each
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e.logger = e.logger.With(slog.String("suite", s.Name))

	return e
}

// Each returns the repetition count used for every routine.
func (e *Engine) Each() int { return e.n }

// Discover returns the suite members whose names start with the routine
// prefix, in registration order.
func (e *Engine) Discover() []string {
	return e.suite.WithPrefix(e.cfg.Prefix)
}

// TotalRuns returns the number of timed executions a run performs.
func (e *Engine) TotalRuns() int {
	if e.routines != nil {
		return e.n * len(e.routines)
	}

	return e.n * len(e.Discover())
}

// Mode returns the hook pattern chosen by the last run.
func (e *Engine) Mode() HookMode { return e.mode }

// Schedule returns the routine order executed by the last run.
func (e *Engine) Schedule() []string {
	out := make([]string, len(e.schedule))
	for i, idx := range e.schedule {
		out[i] = e.routines[idx]
	}

	return out
}

// Table returns the result of the last completed run.
func (e *Engine) Table() (*report.Table, error) {
	if e.table == nil {
		return nil, ErrNotRun
	}

	return e.table, nil
}

// Run executes every routine Each times in shuffled order and builds the
// result table. Any routine or hook error aborts the run and leaves no
// table behind. ctx is only checked between executions.
func (e *Engine) Run(ctx context.Context) error {
	e.table = nil

	e.routines = e.Discover()
	if len(e.routines) == 0 {
		return &ExecutionError{Suite: e.suite.Name, Member: e.cfg.Prefix + "*", Err: ErrNoRoutines}
	}

	e.logger.InfoContext(ctx, "running suite",
		slog.Int("routines", len(e.routines)),
		slog.Int("each", e.n),
	)

	wallStart := time.Now()

	if err := e.callHook(e.cfg.SetUp); err != nil {
		return err
	}

	e.results = make([]stats.Accumulator, len(e.routines))
	e.schedule = buildSchedule(len(e.routines), e.n, e.rng)

	if err := e.execute(ctx); err != nil {
		e.results = nil
		return err
	}

	if err := e.callHook(e.cfg.TearDown); err != nil {
		e.results = nil
		return err
	}

	e.table = e.buildTable()

	e.logger.InfoContext(ctx, "suite finished",
		slog.Int("total_runs", e.TotalRuns()),
		slog.String("hook_mode", e.mode.String()),
		slog.Duration("wall_time", time.Since(wallStart)),
	)

	return nil
}

func (e *Engine) execute(ctx context.Context) error {
	eachSetUp, hasSetUp := e.suite.Lookup(e.cfg.EachSetUp)
	eachTearDown, hasTearDown := e.suite.Lookup(e.cfg.EachTearDown)

	switch {
	case hasSetUp && hasTearDown:
		e.mode = HookBoth
	case hasSetUp:
		e.mode = HookSetUpOnly
	case hasTearDown:
		e.mode = HookTearDownOnly
	default:
		e.mode = HookNone
	}

	switch e.mode {
	case HookBoth:
		for _, idx := range e.schedule {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.wrap(e.cfg.EachSetUp, eachSetUp()); err != nil {
				return err
			}
			if err := e.timeRoutine(idx); err != nil {
				return err
			}
			if err := e.wrap(e.cfg.EachTearDown, eachTearDown()); err != nil {
				return err
			}
		}
	case HookSetUpOnly:
		for _, idx := range e.schedule {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.wrap(e.cfg.EachSetUp, eachSetUp()); err != nil {
				return err
			}
			if err := e.timeRoutine(idx); err != nil {
				return err
			}
		}
	case HookTearDownOnly:
		for _, idx := range e.schedule {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.timeRoutine(idx); err != nil {
				return err
			}
			if err := e.wrap(e.cfg.EachTearDown, eachTearDown()); err != nil {
				return err
			}
		}
	default:
		for _, idx := range e.schedule {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.timeRoutine(idx); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Engine) timeRoutine(idx int) error {
	name := e.routines[idx]
	fn, _ := e.suite.Lookup(name)

	start := e.now()
	err := fn()
	elapsed := e.now().Sub(start)

	if err != nil {
		return e.wrap(name, err)
	}

	e.results[idx].Add(elapsed)

	return nil
}

func (e *Engine) callHook(name string) error {
	fn, ok := e.suite.Lookup(name)
	if !ok {
		return nil
	}

	return e.wrap(name, fn())
}

func (e *Engine) wrap(member string, err error) error {
	if err == nil {
		return nil
	}

	e.logger.Error("benchmark aborted",
		slog.String("member", member),
		slog.String("error", err.Error()),
	)

	return &ExecutionError{Suite: e.suite.Name, Member: member, Err: err}
}

func (e *Engine) buildTable() *report.Table {
	rows := make([]report.Row, len(e.routines))

	for i, name := range e.routines {
		acc := &e.results[i]
		total := acc.Total()

		row := report.Row{
			Name:         suite.DisplayName(e.cfg.Prefix, name),
			Runs:         e.n,
			Mean:         total / float64(e.n),
			Total:        total,
			SumOfSquares: acc.SumOfSquares(),
		}

		if v, ok := acc.Variance(); ok {
			row.HasVariance = true
			row.Variance = v
			row.Stdev = math.Sqrt(v)
		}

		rows[i] = row
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Mean < rows[j].Mean
	})

	minMean := rows[0].Mean
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Baseline = baseline(rows[i].Mean, minMean)
	}

	return report.NewTable(rows)
}

func baseline(mean, minMean float64) float64 {
	if minMean > 0 {
		return mean / minMean
	}
	if mean == 0 {
		return 1
	}

	return math.Inf(1)
}

// Package main provides the CLI entry point for statbench, a
// microbenchmark harness that times routines in shuffled order and ranks
// them by mean cost.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/weiihann/statbench/config"
	"github.com/weiihann/statbench/harness"
	"github.com/weiihann/statbench/report"
	"github.com/weiihann/statbench/runner"
	"github.com/weiihann/statbench/suite"
	_ "github.com/weiihann/statbench/suites"
)

const formatAuto = "auto"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger, suite.Default)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger, registry *suite.Registry) *cobra.Command {
	root := &cobra.Command{
		Use:   "statbench",
		Short: "Randomized microbenchmark harness",
		Long: `Statbench runs every routine of a benchmark suite several times in a
shuffled, interleaved order, then reports mean, standard deviation, rank
and baseline per routine as a markdown, grid, CSV or plain table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(logger, registry),
		newListCmd(registry),
		newExecCmd(logger),
	)

	return root
}

// reportFlags are shared by run and exec.
type reportFlags struct {
	configPath   string
	each         int
	prefix       string
	format       string
	sortBy       string
	order        []string
	header       []string
	numberFormat string
	title        string
	seed         int64
	outputJSON   bool
}

func (f *reportFlags) register(flags *pflag.FlagSet) {
	defaults := config.Default()

	flags.StringVar(&f.configPath, "config", "",
		"Path to a YAML configuration file")
	flags.IntVar(&f.each, "each", defaults.Each,
		"Number of times each routine runs")
	flags.StringVar(&f.prefix, "prefix", defaults.Prefix,
		"Name prefix identifying routines")
	flags.StringVar(&f.format, "format", formatAuto,
		"Output format: markdown, grid, csv, plain or auto")
	flags.StringVar(&f.sortBy, "sort-by", defaults.SortBy,
		"Field to sort the tables by")
	flags.StringSliceVar(&f.order, "order", defaults.Order,
		"Fields to display, in order")
	flags.StringSliceVar(&f.header, "header", nil,
		"Column labels (default: the field names)")
	flags.StringVar(&f.numberFormat, "number-format", defaults.NumberFormat,
		"printf format applied to numeric cells")
	flags.StringVar(&f.title, "title", defaults.Title,
		"Report title")
	flags.Int64Var(&f.seed, "seed", 0,
		"Shuffle seed (0 = use current time)")
	flags.BoolVar(&f.outputJSON, "json", false,
		"Output results as JSON instead of tables")
}

// resolve loads the config file, if any, and applies the flags that were
// set explicitly on top of it.
func (f *reportFlags) resolve(cmd *cobra.Command, stdout io.Writer) (config.Config, error) {
	cfg := config.Default()

	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()

	if flags.Changed("each") {
		cfg.Each = f.each
	}
	if flags.Changed("prefix") {
		cfg.Prefix = f.prefix
	}
	if flags.Changed("sort-by") {
		cfg.SortBy = f.sortBy
	}
	if flags.Changed("order") {
		cfg.Order = f.order
	}
	if flags.Changed("header") {
		cfg.Header = f.header
	}
	if flags.Changed("number-format") {
		cfg.NumberFormat = f.numberFormat
	}
	if flags.Changed("title") {
		cfg.Title = f.title
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}

	if flags.Changed("format") || f.configPath == "" {
		cfg.Format = f.format
	}
	if cfg.Format == formatAuto {
		cfg.Format = autoFormat(stdout)
	}

	return cfg, cfg.Validate()
}

// autoFormat picks the plain renderer for terminals and markdown for
// pipes and files.
func autoFormat(w io.Writer) string {
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return "plain"
	}

	return "markdown"
}

func newRunCmd(logger *slog.Logger, registry *suite.Registry) *cobra.Command {
	var (
		flags  reportFlags
		suites []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run registered benchmark suites",
		Long: `Run the selected registered suites (all of them by default) with
shared settings and print one report.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.resolve(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("suites") {
				cfg.Suites = suites
			}

			selected, err := registry.Select(cfg.Suites)
			if err != nil {
				return err
			}

			return runReport(cmd.Context(), logger, cmd.OutOrStdout(), cfg, selected, flags.outputJSON)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&suites, "suites", nil,
		"Suites to run (default: all registered suites)")

	return cmd
}

func newListCmd(registry *suite.Registry) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered suites and their routines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			for _, s := range registry.Suites() {
				fmt.Fprintf(w, "%s: %s\n", s.Name, s.Title())

				for _, name := range s.WithPrefix(prefix) {
					fmt.Fprintf(w, "  - %s\n", suite.DisplayName(prefix, name))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", harness.DefaultPrefix,
		"Name prefix identifying routines")

	return cmd
}

func newExecCmd(logger *slog.Logger) *cobra.Command {
	var (
		flags    reportFlags
		commands []string
		env      []string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Benchmark external commands against each other",
		Long: `Run each --cmd as a routine of one suite. Commands are split like a
shell would split them but are not run through a shell.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(commands) == 0 {
				return fmt.Errorf("at least one command must be specified via --cmd")
			}

			cfg, err := flags.resolve(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			s, err := harness.CommandSuite(cmd.Context(), name, cfg.Prefix, commands, env)
			if err != nil {
				return err
			}

			return runReport(cmd.Context(), logger, cmd.OutOrStdout(), cfg, []*suite.Suite{s}, flags.outputJSON)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringArrayVar(&commands, "cmd", nil,
		"Command line to benchmark (repeatable)")
	cmd.Flags().StringSliceVar(&env, "env", nil,
		"Extra environment variables (KEY=VALUE) for the commands")
	cmd.Flags().StringVar(&name, "name", "commands",
		"Suite name used as the report heading")

	return cmd
}

func runReport(
	ctx context.Context,
	logger *slog.Logger,
	w io.Writer,
	cfg config.Config,
	suites []*suite.Suite,
	outputJSON bool,
) error {
	program := runner.New(cfg, logger)

	outcomes, err := program.Run(ctx, suites)
	if err != nil {
		return err
	}

	if outputJSON {
		if err := program.WriteJSON(w, outcomes); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else if err := program.Write(w, outcomes); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.String("run_id", program.RunID()),
		slog.String("format", report.ParseFormat(cfg.Format).String()),
	)

	return nil
}

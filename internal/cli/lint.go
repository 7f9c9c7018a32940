package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sharplint/internal/configloader"
	"github.com/yaklabco/sharplint/internal/logging"
	"github.com/yaklabco/sharplint/pkg/cache"
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/reporter"
	"github.com/yaklabco/sharplint/pkg/runner"
)

type lintFlags struct {
	format       string
	include      []string
	ignore       []string
	enable       []string
	disable      []string
	strict       bool
	concurrent   bool
	noContext    bool
	compact      bool
	perFile      bool
	showFadeOut  bool
	reportFaults bool
	generated    bool
	useCache     bool
	noCache      bool
	cacheDir     string
	ruleFormat   string
	summaryOrder string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Analyze C# files",
		Long:  lintLongDescription + "\n\n" + envHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Analyze C# files for redundant and simplifiable code.

By default, analyzes every .cs file under the current directory. Generated
files and third-party directories are skipped. Specify paths to analyze
specific files or directories.

Examples:
  sharplint lint                      # Analyze current directory
  sharplint lint src/                 # Analyze src directory
  sharplint lint Program.cs           # Analyze a single file
  sharplint lint --format sarif       # Output SARIF for code scanning
  sharplint lint --enable remove-braces
  sharplint lint --show-fade-out      # Include fade-out spans
  sharplint lint --strict             # Treat warnings as errors`

// envHelp lists the SHARPLINT_* variables the configuration loader honors.
func envHelp() string {
	vars := configloader.ListEnvVars()
	var b strings.Builder
	b.WriteString("Environment:")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "\n  %-35s %s", name, vars[name])
	}
	return b.String()
}

// cliConfig maps flags that were explicitly set onto a config layer.
func cliConfig(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) (*config.Config, error) {
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return nil, errors.Join(ErrUsage, err)
		}
		cfg.Format = config.OutputFormat(format)
	}
	if !reporter.SummaryOrder(flags.summaryOrder).IsValid() {
		return nil, fmt.Errorf("%w: invalid summary order %q (valid: rules, files, categories)", ErrUsage, flags.summaryOrder)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("include") {
		cfg.Include = flags.include
	}
	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.ShowFadeOut = flags.showFadeOut
	cfg.ReportFaults = flags.reportFaults
	cfg.GeneratedCode.Analyze = flags.generated
	cfg.Cache.Enabled = flags.useCache
	cfg.Cache.Dir = flags.cacheDir
	cfg.NoCache = flags.noCache

	return cfg, nil
}

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg, err := cliConfig(cmd, cfg, flags)
	if err != nil {
		return err
	}

	loadResult, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}
	finalCfg := loadResult.Config

	// Booleans that default to true can only be turned off on the command line.
	if cmd.Flags().Changed("concurrent") {
		finalCfg.Concurrent = flags.concurrent
	}

	logger.Debug("configuration loaded",
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldConcurrent, finalCfg.Concurrent,
		logging.FieldFormat, finalCfg.Format,
	)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	lintRunner := runner.New(newEngine(), openCache(ctx, finalCfg))

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}
	for _, runErr := range result.Errors {
		logger.Warn("analysis problem", logging.FieldError, runErr)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       reporter.Format(finalCfg.Format),
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		ShowFadeOut:  finalCfg.ShowFadeOut,
		GroupByFile:  true,
		Compact:      flags.compact,
		PerFile:      flags.perFile,
		RuleFormat:   finalCfg.RuleFormat,
		SummaryOrder: reporter.SummaryOrder(flags.summaryOrder),
		WorkingDir:   workDir,
		Descriptors:  lint.DefaultRegistry.Descriptors(),
		ToolVersion:  info.Version,
	})
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("lint run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldCacheHits, result.Stats.FilesCached,
		logging.FieldFaults, result.Stats.Faults,
	)

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrLintIssuesFound}
	}

	return nil
}

// openCache opens the diagnostics cache when enabled. Failing to open it
// only disables caching for this run.
func openCache(ctx context.Context, cfg *config.Config) *cache.Cache {
	if !cfg.Cache.Enabled || cfg.NoCache {
		return nil
	}

	c, err := cache.Open(cfg.Cache.Dir)
	if err != nil {
		logging.FromContext(ctx).Warn("cache disabled", logging.FieldError, err)
		return nil
	}
	logging.FromContext(ctx).Debug("cache enabled", logging.FieldCache, c.Dir())
	return c
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.concurrent, "concurrent", true, "walk files in parallel when every analyzer allows it")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns selecting files (default **/*.cs)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.showFadeOut, "show-fade-out", false, "include fade-out spans in output")
	cmd.Flags().BoolVar(&flags.reportFaults, "report-faults", false, "report analyzer crashes as SL0000 diagnostics")
	cmd.Flags().BoolVar(&flags.generated, "generated", false, "analyze generated files")
	cmd.Flags().BoolVar(&flags.useCache, "cache", false, "cache results between runs")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the results cache for this run")
	cmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "results cache directory (default: user cache dir)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files, categories")
}

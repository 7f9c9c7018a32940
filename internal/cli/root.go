// Package cli implements the sharplint command line on top of cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sharplint/internal/configloader"
	"github.com/yaklabco/sharplint/internal/logging"
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/parser/csharp"
	"github.com/yaklabco/sharplint/pkg/semantic"
)

// BuildInfo identifies the binary. The values come from -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

const rootLongDescription = `sharplint analyzes C# source files for redundant and simplifiable code.

Analyzers subscribe to syntax node kinds and report diagnostics through a
shared dispatcher. Redundant tokens are reported as fade-out spans, which
editors render dimmed through the built-in language server.`

// NewRootCommand assembles the sharplint command tree. Flag errors are
// wrapped in ErrUsage so they map to ExitInvalidUsage.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "sharplint",
		Short:         "A fast C# analyzer with IDE fade-out hints",
		Long:          rootLongDescription,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.String("config", "", "path to config file")
	flags.String("color", "auto", "colorize output: auto, always, never")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	root.AddCommand(
		newLintCommand(info),
		newRulesCommand(),
		newServeCommand(info),
		newInitCommand(),
		newCacheCommand(),
		newVersionCommand(info),
	)
	return root
}

// newEngine builds the analysis engine over the built-in rules.
func newEngine() *lint.Engine {
	return lint.NewEngine(csharp.New(), lint.DefaultRegistry, semantic.Factory)
}

// commandContext returns the command's context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves configuration for cmd with cliCfg as the top layer.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     lint.DefaultRegistry,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	return loadResult, nil
}

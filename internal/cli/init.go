package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sharplint/internal/logging"
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/fsutil"
	"github.com/yaklabco/sharplint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	pack   string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new sharplint configuration file",
		Long: `Create a new .sharplint.yml configuration file in the current directory.
The file can be customized to enable or disable rules, change severities,
and configure other options.

Examples:
  sharplint init                    Create minimal .sharplint.yml
  sharplint init --full             Create full config with all rules documented
  sharplint init --pack strict      Start from the strict rule pack
  sharplint init --format toml      Create .sharplint.toml instead
  sharplint init --output ci.yml    Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", string(config.CodecYAML), "Output format: yaml or toml")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Rule pack to start from: "+strings.Join(rules.PackNames(), ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .sharplint.yml or .sharplint.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format := config.Codec(flags.format)
	if format != config.CodecYAML && format != config.CodecTOML {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrUsage, flags.format)
	}

	opts := config.TemplateOptions{
		Full:   flags.full,
		Format: format,
	}
	if flags.pack != "" {
		pack := rules.PackByName(flags.pack)
		if pack == nil {
			return fmt.Errorf("%w: unknown pack %q; valid packs: %s",
				ErrUsage, flags.pack, strings.Join(rules.PackNames(), ", "))
		}
		opts.Base = config.NewConfig()
		pack.Apply(opts.Base)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".sharplint.yml"
		if format == config.CodecTOML {
			outputPath = ".sharplint.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if flags.force {
		err = fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions)
	} else {
		err = fsutil.WriteNew(ctx, absPath, content, configFilePermissions)
	}
	if errors.Is(err, fsutil.ErrExists) {
		return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
	}
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template includes all rules with their defaults")
	}
	logger.Info("run 'sharplint rules' to see all available rules")

	return nil
}

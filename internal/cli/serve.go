package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/sharplint/internal/logging"
	"github.com/yaklabco/sharplint/pkg/lsp"
)

func newServeCommand(info BuildInfo) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the language server over stdio",
		Long: `Run a Language Server Protocol server on stdin/stdout.

Open C# documents are analyzed on open, change and save. Fade-out spans are
published as hints with the unnecessary tag, so editors render them dimmed.
Logs go to stderr; stdout carries protocol traffic only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), logLevel)
			logging.SetDefault(logger)

			ctx := commandContext(cmd)
			loadResult, err := loadConfig(ctx, cmd, nil)
			if err != nil {
				return err
			}

			srv, err := lsp.New(lsp.Options{
				Engine:  newEngine(),
				Config:  loadResult.Config,
				Version: info.Version,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			logger.Info("language server starting", logging.FieldVersion, info.Version)
			return srv.RunStdio()
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "server log level: debug, info, warn, error")

	return cmd
}

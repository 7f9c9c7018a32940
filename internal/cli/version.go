package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sharplint/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit and build date of this sharplint binary.
With --short only the version is printed, for use in scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return err
			}
			logging.NewWithWriter(cmd.OutOrStdout(), "info").Info("sharplint",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}

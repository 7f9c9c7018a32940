package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sharplint/internal/logging"
	"github.com/yaklabco/sharplint/pkg/cache"
)

func newCacheCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the results cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "results cache directory (default: configured or user cache dir)")

	resolve := func(cmd *cobra.Command) (*cache.Cache, error) {
		if dir == "" {
			ctx := commandContext(cmd)
			loadResult, err := loadConfig(ctx, cmd, nil)
			if err != nil {
				return nil, err
			}
			dir = loadResult.Config.Cache.Dir
		}
		c, err := cache.Open(dir)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		return c, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := resolve(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c.Dir())
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := resolve(cmd)
			if err != nil {
				return err
			}
			if err := c.Clear(); err != nil {
				return err
			}
			logging.FromContext(commandContext(cmd)).Info("cache cleared", logging.FieldCache, c.Dir())
			return nil
		},
	})

	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/shelf/internal/app"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the shared library cache",
	}

	cmd.AddCommand(c.newCacheListCmd())
	cmd.AddCommand(c.newCacheClearCmd())
	cmd.AddCommand(c.newCacheSweepCmd())
	cmd.AddCommand(c.newCacheGCCmd())
	cmd.AddCommand(c.newCacheStatsCmd())

	return cmd
}

func (c *CLI) newCacheListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			infos, err := c.app.CacheList(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), infos)
			}
			return renderEntries(cmd.OutOrStdout(), infos)
		},
	}
	cmd.Flags().Bool("json", false, "Print the entries as JSON")
	return cmd
}

func (c *CLI) newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cache entries without locking (do not run during loads)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			version, _ := cmd.Flags().GetString("version")

			removed, err := c.app.CacheClear(cmd.Context(), app.ClearOptions{Name: name, Version: version})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d cache entries removed\n", removed)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Only remove the entry of this configured library")
	cmd.Flags().String("version", "", "Version of the library named by --name")
	return cmd
}

func (c *CLI) newCacheSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one cleanup pass over the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.CacheSweep(cmd.Context())
			if err != nil {
				return err
			}
			return renderReport(cmd.OutOrStdout(), report)
		},
	}
}

func (c *CLI) newCacheGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Run cleanup passes periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CacheGC(cmd.Context())
		},
	}
}

func (c *CLI) newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print cache metrics in Prometheus text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CacheStats(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local geometry and scene cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. Entries are
// reported per pipeline stage (geometry, scene, http) so it is visible what
// the next run will have to redo.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear cached geometry responses and composed scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			removed, err := cache.ClearDir(dir)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if len(removed) == 0 {
				printInfo("Cache is empty")
				return nil
			}

			stages := make([]string, 0, len(removed))
			total := 0
			for stage, n := range removed {
				stages = append(stages, stage)
				total += n
			}
			sort.Strings(stages)

			printSuccess("Cleared %d cached entries", total)
			for _, stage := range stages {
				printDetail("%s: %d", stage, removed[stage])
			}
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

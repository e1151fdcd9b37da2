package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/pipeline"
)

// sceneCommand creates the scene command.
func (c *CLI) sceneCommand() *cobra.Command {
	var (
		gmlIDs    string
		attribute string
		output    string
		refresh   bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "scene [building-id]",
		Short: "Fetch geometry and write the composed scene artifact",
		Long: `Fetch a building's geometry, normalize ring winding, partition features
by the selected attribute, and write the composed scene as JSON.

The building ID is resolved through the building registry. Pass --gmlid to
skip the registry and address geometry directly.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Attribute: attribute,
				Refresh:   refresh,
				Logger:    c.Logger,
			}
			if len(args) > 0 {
				opts.BuildingID = args[0]
			}
			if gmlIDs != "" {
				opts.GMLIDs = splitIDs(gmlIDs)
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}

			prog := newProgress(c.Logger)
			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				printError("Scene build failed")
				return err
			}
			prog.done(fmt.Sprintf("Composed %d layers", result.Stats.LayerCount))

			for _, w := range result.Scene.Warnings {
				printWarning("%s", w)
			}

			if output == "" || output == "-" {
				_, err := os.Stdout.Write(append(result.Artifact, '\n'))
				return err
			}
			if err := os.WriteFile(output, result.Artifact, 0o644); err != nil {
				return fmt.Errorf("write artifact: %w", err)
			}

			printSuccess("Scene written")
			printFile(output)
			printStats(result.Stats.RecordCount, result.Stats.LayerCount, result.CacheInfo.SceneHit)
			return nil
		},
	}

	cmd.Flags().StringVar(&gmlIDs, "gmlid", "", "GML identifier(s), comma-separated (bypasses the registry)")
	cmd.Flags().StringVarP(&attribute, "attribute", "a", "", "attribute to categorize by (e.g. usage)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and refetch")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func splitIDs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

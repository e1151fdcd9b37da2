package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Farzan505/UrbanAI-App-sub000/internal/tui"
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		gmlIDs     string
		attribute  string
		attributes []string
		threshold  float64
		refresh    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "view [building-id]",
		Short: "Explore a building's scene interactively in the terminal",
		Long: `Open the terminal viewer for a building's scene.

Zoom with +/- to switch between the detailed polygon view and the overview
point view. Cycle categorization attributes with tab.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}

			ids := splitIDs(gmlIDs)
			if len(ids) == 0 {
				if len(args) == 0 {
					return fmt.Errorf("a building ID or --gmlid is required")
				}
				if runner.Buildings == nil {
					return fmt.Errorf("building registry not configured, pass --gmlid")
				}
				b, err := runner.Buildings.Lookup(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				ids = b.GMLIDs
			}

			envelope, _, err := runner.FetchWithCacheInfo(cmd.Context(), ids, refresh)
			if err != nil {
				return err
			}

			if threshold == 0 {
				threshold = c.cfg.Viewer.DetailThreshold
			}
			if attribute == "" {
				attribute = c.cfg.Viewer.Attribute
			}

			model := tui.New(tui.Options{
				Envelope:        envelope,
				Attributes:      attributes,
				Attribute:       attribute,
				DetailThreshold: threshold,
				FramingDuration: c.cfg.FramingDuration(),
				Logger:          c.Logger,
			})

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&gmlIDs, "gmlid", "", "GML identifier(s), comma-separated (bypasses the registry)")
	cmd.Flags().StringVarP(&attribute, "attribute", "a", "", "attribute preselected for categorization")
	cmd.Flags().StringSliceVar(&attributes, "attributes", []string{"usage", "function", "year"}, "attributes offered for cycling")
	cmd.Flags().Float64Var(&threshold, "detail-threshold", 0, "zoom level for the detailed representation")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and refetch")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/engine"
)

func newStatusCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the last generated overlay",
		Long: `Display the last successful generation for the game configuration and
whether the overlay on disk still matches it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.DefaultPaths(global.openmwCfg)
			if err != nil {
				return fmt.Errorf("%w: %w", engine.ErrGameConfig, err)
			}
			eng, err := newEngine(paths)
			if err != nil {
				return err
			}

			result, err := eng.Status(cmd.Context(), &engine.StatusRequest{Paths: *paths})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if global.jsonOutput {
				return outputJSON(out, result)
			}

			run := result.Run
			PrintSection(out, "Last generation")
			PrintLabelValue(out, "Overlay", run.OutputPath)
			PrintLabelValue(out, "Generated", run.GeneratedAt.Local().Format(time.RFC1123))
			PrintLabelValue(out, "Records", fmt.Sprintf("%d (%d lights, %d cells)", run.RecordCount, run.Lights, run.Cells))
			switch {
			case !result.OverlayExists:
				PrintLabelValueWithColor(out, "State", "missing", errorColor)
			case result.Modified:
				PrintLabelValueWithColor(out, "State", "modified since generation", warningColor)
			default:
				PrintLabelValueWithColor(out, "State", "up to date", successColor)
			}
			PrintLabelValue(out, "Enabled", fmt.Sprintf("%v", result.Enabled))

			PrintSection(out, "Masters")
			if len(run.Masters) == 0 {
				PrintEmptyState(out, "none")
			}
			rows := make([][]string, 0, len(run.Masters))
			for _, m := range run.Masters {
				rows = append(rows, []string{m.Name, fmt.Sprintf("%d", m.Size)})
			}
			PrintTable(out, []string{"NAME", "SIZE"}, rows)

			if len(run.Failed) > 0 {
				PrintSection(out, "Unreadable packages")
				PrintList(out, run.Failed, 1)
			}
			return nil
		},
	}
}

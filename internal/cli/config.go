package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/engine"
)

func newConfigCmd(global *globalOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the light configuration",
	}

	var classic bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration a generate run would use: lightconfig.yaml, or the
defaults if it does not exist, with the environment flags applied.`,
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

			result, err := eng.ShowConfig(cmd.Context(), &engine.ConfigRequest{
				Paths:   *paths,
				Env:     config.EnvFlagsFromEnv(),
				Classic: classic,
			})
			if err != nil {
				return err
			}

			for _, key := range result.Effective.UnknownKeys {
				PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("unknown key %q in %s is ignored", key, result.Source))
			}
			for _, d := range result.Dropped {
				PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("%s: pattern %q is invalid and will be ignored: %v", d.Kind, d.Pattern, d.Err))
			}

			data, err := result.Effective.Marshal()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result.Source == "" {
				_, _ = fmt.Fprintln(out, "# defaults (no lightconfig.yaml yet)")
			} else {
				_, _ = fmt.Fprintf(out, "# %s\n", result.Source)
			}
			_, err = out.Write(data)
			return err
		},
	}
	showCmd.Flags().BoolVarP(&classic, "classic", "7", false, "Apply classic mode")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the files lightfix reads and writes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.DefaultPaths(global.openmwCfg)
			if err != nil {
				return fmt.Errorf("%w: %w", engine.ErrGameConfig, err)
			}

			out := cmd.OutOrStdout()
			if global.jsonOutput {
				s, err := formatJSON(paths)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, s)
				return nil
			}
			PrintLabelValue(out, "Game config", paths.GameConfig)
			PrintLabelValue(out, "Light config", paths.LightConfig)
			PrintLabelValue(out, "Log", paths.Log)
			PrintLabelValue(out, "State", paths.State)
			return nil
		},
	}

	configCmd.AddCommand(showCmd, pathCmd)
	return configCmd
}

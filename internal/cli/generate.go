package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/engine"
	"github.com/danieljhkim/lightfix/internal/logger"
	"github.com/danieljhkim/lightfix/internal/override"
)

// generateOptions holds the generate flags. Only flags the user actually set
// reach the configuration; see patch.
type generateOptions struct {
	classic         bool
	output          string
	writeLog        bool
	autoEnable      bool
	noNotifications bool
	debug           bool
	info            bool
	noFlicker       bool
	noPulse         bool

	standardHue        float64
	standardSaturation float64
	standardValue      float64
	standardRadius     float64

	coloredHue        float64
	coloredSaturation float64
	coloredValue      float64
	coloredRadius     float64

	durationMult float64

	excludedIDs     []string
	excludedPlugins []string
	lights          []string
	ambients        []string

	updateLightConfig bool
}

func newGenerateCmd(global *globalOptions, opts *generateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the light overlay",
		Long: `Generate S3LightFixes.omwaddon from the content files of the load order.

Light overrides are given as <pattern>=<key>=<value>,... and may be repeated
or separated with ';':

  --light "torch_001=radius=255,hue=240,duration=1200,flag=FLICKERSLOW"
  --light "torch_002=radius_mult=2.0,hue_mult=1.3;candle.*=flag=NONE"

Hue is 0-360, saturation and value are 0.0-1.0. A fixed value and a
multiplier for the same channel cannot be combined.

Ambient overrides replace interior atmosphere colors, given as h:s:v:

  --ambient "balmora.*=ambient=30:0.2:0.4,fog_density=0.5"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, global, opts)
		},
	}
	addGenerateFlags(cmd, opts)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command, o *generateOptions) {
	f := cmd.Flags()
	f.BoolVarP(&o.classic, "classic", "7", false, "Classic mode: standard radius 2.0 and no interior sunlight")
	f.StringVarP(&o.output, "output", "o", "", "Output directory for the overlay")
	f.BoolVarP(&o.writeLog, "write-log", "l", false, "Write a text dump of the generated overlay (very verbose)")
	f.BoolVarP(&o.autoEnable, "auto-enable", "e", false, "Add the overlay to the load order in openmw.cfg")
	f.BoolVarP(&o.noNotifications, "no-notifications", "n", false, "Plain output without colors")
	f.BoolVarP(&o.debug, "debug", "d", false, "Log debugging information")
	f.BoolVarP(&o.info, "info", "i", false, "Print version information and exit")
	f.BoolVarP(&o.noFlicker, "no-flicker", "f", false, "Disable flickering lights")
	f.BoolVarP(&o.noPulse, "no-pulse", "p", false, "Disable pulsing lights")

	// -h is taken by help, so standard-hue has no shorthand.
	f.Float64Var(&o.standardHue, "standard-hue", config.DefaultStandardHue, "Hue multiplier for orange lights")
	f.Float64VarP(&o.standardSaturation, "standard-saturation", "s", config.DefaultStandardSaturation, "Saturation multiplier for orange lights")
	f.Float64VarP(&o.standardValue, "standard-value", "v", config.DefaultStandardValue, "Value multiplier for orange lights")
	f.Float64VarP(&o.standardRadius, "standard-radius", "r", config.DefaultStandardRadius, "Radius multiplier for orange lights")

	f.Float64VarP(&o.coloredHue, "colored-hue", "H", config.DefaultColoredHue, "Hue multiplier for colored lights")
	f.Float64VarP(&o.coloredSaturation, "colored-saturation", "S", config.DefaultColoredSaturation, "Saturation multiplier for colored lights")
	f.Float64VarP(&o.coloredValue, "colored-value", "V", config.DefaultColoredValue, "Value multiplier for colored lights")
	f.Float64VarP(&o.coloredRadius, "colored-radius", "R", config.DefaultColoredRadius, "Radius multiplier for colored lights")

	f.Float64VarP(&o.durationMult, "duration-mult", "M", config.DefaultDurationMult, "Duration multiplier for carryable lights")

	f.StringSliceVarP(&o.excludedIDs, "excluded-ids", "x", nil, "Patterns of light ids to exclude, merged onto lightconfig.yaml")
	f.StringSliceVarP(&o.excludedPlugins, "excluded-plugins", "X", nil, "Patterns of plugins to exclude, merged onto lightconfig.yaml")
	f.StringArrayVar(&o.lights, "light", nil, "Light override <pattern>=<key>=<value>,... (repeatable, ';'-separated)")
	f.StringArrayVar(&o.ambients, "ambient", nil, "Ambient override <pattern>=<key>=<value>,... (repeatable, ';'-separated)")

	f.BoolVarP(&o.updateLightConfig, "update-light-config", "U", false, "Save lightconfig.yaml on this run")
}

// patch converts the flags the user set into a configuration patch. Flags
// left at their defaults do not touch the persisted values.
func (o *generateOptions) patch(flags *pflag.FlagSet) (config.Patch, error) {
	var p config.Patch

	bools := []struct {
		name string
		src  bool
		dst  **bool
	}{
		{"write-log", o.writeLog, &p.SaveLog},
		{"auto-enable", o.autoEnable, &p.AutoEnable},
		{"no-notifications", o.noNotifications, &p.NoNotifications},
		{"debug", o.debug, &p.Debug},
		{"no-flicker", o.noFlicker, &p.DisableFlickering},
		{"no-pulse", o.noPulse, &p.DisablePulse},
	}
	for _, b := range bools {
		if flags.Changed(b.name) {
			v := b.src
			*b.dst = &v
		}
	}

	floats := []struct {
		name string
		src  float64
		dst  **float64
	}{
		{"standard-hue", o.standardHue, &p.StandardHue},
		{"standard-saturation", o.standardSaturation, &p.StandardSaturation},
		{"standard-value", o.standardValue, &p.StandardValue},
		{"standard-radius", o.standardRadius, &p.StandardRadius},
		{"colored-hue", o.coloredHue, &p.ColoredHue},
		{"colored-saturation", o.coloredSaturation, &p.ColoredSaturation},
		{"colored-value", o.coloredValue, &p.ColoredValue},
		{"colored-radius", o.coloredRadius, &p.ColoredRadius},
		{"duration-mult", o.durationMult, &p.DurationMult},
	}
	for _, fl := range floats {
		if flags.Changed(fl.name) {
			v := fl.src
			*fl.dst = &v
		}
	}

	if flags.Changed("output") {
		dir, err := filepath.Abs(o.output)
		if err != nil {
			return p, fmt.Errorf("invalid output directory %q: %w", o.output, err)
		}
		p.OutputDir = &dir
	}

	p.ExcludedIDs = nonEmpty(o.excludedIDs)
	p.ExcludedPlugins = nonEmpty(o.excludedPlugins)

	for _, spec := range splitSpecs(o.lights) {
		pattern, ov, err := override.ParseLightOverride(spec)
		if err != nil {
			return p, fmt.Errorf("--light %q: %w", spec, err)
		}
		p.LightOverrides.Set(pattern, ov)
	}
	for _, spec := range splitSpecs(o.ambients) {
		pattern, ov, err := override.ParseAmbientOverride(spec)
		if err != nil {
			return p, fmt.Errorf("--ambient %q: %w", spec, err)
		}
		p.AmbientOverrides.Set(pattern, ov)
	}

	return p, nil
}

// splitSpecs flattens repeated, ';'-separated override values.
func splitSpecs(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ";") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func runGenerate(cmd *cobra.Command, global *globalOptions, opts *generateOptions) error {
	if opts.info {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cmd.Root().Version)
		return nil
	}

	patch, err := opts.patch(cmd.Flags())
	if err != nil {
		return err
	}

	paths, err := config.DefaultPaths(global.openmwCfg)
	if err != nil {
		return fmt.Errorf("%w: %w", engine.ErrGameConfig, err)
	}
	cwd, err := getwd()
	if err != nil {
		return err
	}

	eng, err := newEngine(paths)
	if err != nil {
		return err
	}

	env := config.EnvFlagsFromEnv()

	// The effective debug and no_notifications flags decide how the run
	// itself reports, so resolve them first.
	preview, err := eng.ShowConfig(cmd.Context(), &engine.ConfigRequest{
		Paths:   *paths,
		Env:     env,
		Patch:   patch,
		Classic: opts.classic,
	})
	if err != nil {
		return err
	}
	plain := preview.Effective.NoNotifications
	setPlain(plain)

	log := logger.New(logger.ForDebug(preview.Effective.Debug), cmd.ErrOrStderr())
	ctx := logger.WithLogger(cmd.Context(), log)
	log.Debug("using game configuration", "path", paths.GameConfig, "light_config", paths.LightConfig)

	result, err := eng.Generate(ctx, &engine.GenerateRequest{
		Paths:      *paths,
		CWD:        cwd,
		Env:        env,
		Patch:      patch,
		Classic:    opts.classic,
		SaveConfig: opts.updateLightConfig,
	})
	if err != nil {
		return err
	}

	if global.jsonOutput {
		return outputJSON(cmd.OutOrStdout(), generateSummary(result))
	}

	out := cmd.OutOrStdout()
	for _, w := range result.Warnings {
		PrintWarning(out, w)
	}
	for _, name := range result.Failed {
		PrintWarning(out, fmt.Sprintf("%s could not be read and was skipped", name))
	}

	PrintSuccess(out, fmt.Sprintf("%s generated and saved in %s", engine.OverlayName, filepath.Dir(result.OutputPath)))
	PrintLabelValue(out, "Lights", fmt.Sprintf("%d", len(result.Overlay.Lights)))
	PrintLabelValue(out, "Cells", fmt.Sprintf("%d", len(result.Overlay.Cells)))
	PrintLabelValue(out, "Masters", PrintCount(len(result.Overlay.Header.Masters), "package", "packages"))
	if preview.Effective.Debug {
		PrintList(out, result.Overlay.Header.Masters.Names(), 2)
	}
	if result.Persisted {
		PrintLabelValueWithColor(out, "Saved", paths.LightConfig, infoColor)
	}
	if result.LogPath != "" {
		PrintLabelValue(out, "Log", result.LogPath)
	}
	if result.Enabled {
		PrintSuccess(out, fmt.Sprintf("Enabled in %s", paths.GameConfig))
	}
	return nil
}

// generateSummaryJSON is the JSON form of a generation.
type generateSummaryJSON struct {
	OutputPath string   `json:"outputPath"`
	Lights     int      `json:"lights"`
	Cells      int      `json:"cells"`
	Masters    []string `json:"masters"`
	Persisted  bool     `json:"persisted"`
	Enabled    bool     `json:"enabled"`
	Failed     []string `json:"failed,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

func generateSummary(r *engine.GenerateResult) generateSummaryJSON {
	return generateSummaryJSON{
		OutputPath: r.OutputPath,
		Lights:     len(r.Overlay.Lights),
		Cells:      len(r.Overlay.Cells),
		Masters:    r.Overlay.Header.Masters.Names(),
		Persisted:  r.Persisted,
		Enabled:    r.Enabled,
		Failed:     r.Failed,
		Warnings:   r.Warnings,
	}
}

// setPlain turns colored decoration off when notifications are suppressed.
func setPlain(plain bool) {
	if plain {
		color.NoColor = true
	}
}

package config

import "github.com/danieljhkim/lightfix/internal/override"

// Patch carries explicitly supplied values. A nil field was not supplied and
// leaves the base value alone; list fields are appended.
type Patch struct {
	DisableInteriorSun *bool
	DisableFlickering  *bool
	DisablePulse       *bool
	SaveLog            *bool
	AutoEnable         *bool
	NoNotifications    *bool
	Debug              *bool
	SaveConfig         *bool

	StandardHue        *float64
	StandardSaturation *float64
	StandardValue      *float64
	StandardRadius     *float64

	ColoredHue        *float64
	ColoredSaturation *float64
	ColoredValue      *float64
	ColoredRadius     *float64

	DurationMult *float64

	OutputDir *string

	ExcludedIDs      []string
	ExcludedPlugins  []string
	LightOverrides   override.Table[override.LightOverride]
	AmbientOverrides override.Table[override.AmbientOverride]
}

// Merge applies p on top of base and returns the result. base is not modified.
func Merge(base Document, p Patch) Document {
	out := base.Clone()

	setBool(&out.DisableInteriorSun, p.DisableInteriorSun)
	setBool(&out.DisableFlickering, p.DisableFlickering)
	setBool(&out.DisablePulse, p.DisablePulse)
	setBool(&out.SaveLog, p.SaveLog)
	setBool(&out.AutoEnable, p.AutoEnable)
	setBool(&out.NoNotifications, p.NoNotifications)
	setBool(&out.Debug, p.Debug)
	setBool(&out.SaveConfig, p.SaveConfig)

	setFloat(&out.StandardHue, p.StandardHue)
	setFloat(&out.StandardSaturation, p.StandardSaturation)
	setFloat(&out.StandardValue, p.StandardValue)
	setFloat(&out.StandardRadius, p.StandardRadius)

	setFloat(&out.ColoredHue, p.ColoredHue)
	setFloat(&out.ColoredSaturation, p.ColoredSaturation)
	setFloat(&out.ColoredValue, p.ColoredValue)
	setFloat(&out.ColoredRadius, p.ColoredRadius)

	setFloat(&out.DurationMult, p.DurationMult)

	if p.OutputDir != nil {
		out.OutputDir = *p.OutputDir
	}

	out.ExcludedIDs = append(out.ExcludedIDs, p.ExcludedIDs...)
	out.ExcludedPlugins = append(out.ExcludedPlugins, p.ExcludedPlugins...)
	out.LightOverrides.Extend(p.LightOverrides)
	out.AmbientOverrides.Extend(p.AmbientOverrides)

	return out
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

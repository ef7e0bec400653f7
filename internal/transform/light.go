// Package transform computes the final values of admitted light records and
// interior cell atmospheres.
package transform

import (
	"math"

	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/hsv"
	"github.com/danieljhkim/lightfix/internal/override"
	"github.com/danieljhkim/lightfix/internal/records"
)

// Multipliers is the global multiplier set for one hue class.
type Multipliers struct {
	Hue        float64
	Saturation float64
	Value      float64
	Radius     float64
}

// Settings is the numeric slice of the effective configuration a light
// transform needs.
type Settings struct {
	DisableFlicker bool
	DisablePulse   bool
	Standard       Multipliers
	Colored        Multipliers
	DurationMult   float64
}

// SettingsFrom extracts Settings from an effective configuration.
func SettingsFrom(doc *config.Document) Settings {
	return Settings{
		DisableFlicker: doc.DisableFlickering,
		DisablePulse:   doc.DisablePulse,
		Standard: Multipliers{
			Hue:        doc.StandardHue,
			Saturation: doc.StandardSaturation,
			Value:      doc.StandardValue,
			Radius:     doc.StandardRadius,
		},
		Colored: Multipliers{
			Hue:        doc.ColoredHue,
			Saturation: doc.ColoredSaturation,
			Value:      doc.ColoredValue,
			Radius:     doc.ColoredRadius,
		},
		DurationMult: doc.DurationMult,
	}
}

// For returns the multiplier set of a hue class.
func (s Settings) For(c hsv.Class) Multipliers {
	if c == hsv.Colored {
		return s.Colored
	}
	return s.Standard
}

// Light returns the transformed copy of rec. ov is the matching override, or
// nil.
//
// Negative lights are neutralized and returned as-is otherwise. For every
// other light each channel takes the override's multiplier, else its fixed
// value, else the global multiplier of the light's hue class. A flag
// replacement replaces the whole flag set, after flicker/pulse stripping.
func Light(s Settings, ov *override.LightOverride, rec records.LightRecord) records.LightRecord {
	if rec.Flags.Has(records.FlagNegative) {
		rec.Flags = rec.Flags.Without(records.FlagNegative)
		rec.Radius = 0
		rec.Color = records.RGB8{}
		return rec
	}

	if s.DisableFlicker {
		rec.Flags = rec.Flags.Without(records.FlickerFlags)
	}
	if s.DisablePulse {
		rec.Flags = rec.Flags.Without(records.PulseFlags)
	}

	color := hsv.FromRGB8(rec.Color)
	global := s.For(hsv.Classify(color.H))

	if ov == nil {
		ov = &override.LightOverride{}
	}

	color.H = ov.Hue.Resolve(color.H, global.Hue)
	color.S = ov.Saturation.Resolve(color.S, global.Saturation)
	color.V = ov.Value.Resolve(color.V, global.Value)
	rec.Radius = scaleRadius(ov.Radius, rec.Radius, global.Radius)
	rec.Duration = scaleDuration(ov.Duration, rec.Duration, s.DurationMult)

	if ov.Flag != nil {
		rec.Flags = ov.Flag.Flags()
	}

	rec.Color = color.ToRGB8()
	return rec
}

// scaleRadius truncates toward zero and saturates into the uint32 range.
func scaleRadius(ch override.Channel, radius uint32, global float64) uint32 {
	return saturateUint32(ch.Resolve(float64(radius), global))
}

// scaleDuration truncates toward zero. A multiplier that would turn a
// non-negative duration negative yields zero; a duration that was already
// negative keeps whatever sign the product has. Fixed durations are taken
// as given.
func scaleDuration(ch override.Channel, duration int32, global float64) int32 {
	mult := global
	switch ch.Kind() {
	case override.Fixed:
		return saturateInt32(ch.Value())
	case override.Multiplier:
		mult = ch.Value()
	}
	scaled := float64(duration) * mult
	if math.IsNaN(scaled) || (scaled < 0 && duration >= 0) {
		return 0
	}
	return saturateInt32(scaled)
}

func saturateUint32(v float64) uint32 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}

func saturateInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

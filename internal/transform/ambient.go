package transform

import (
	"github.com/danieljhkim/lightfix/internal/override"
	"github.com/danieljhkim/lightfix/internal/records"
)

// Ambient applies interior-sun suppression and ov to atmo. It reports whether
// anything was replaced; callers drop the cell when it was not.
func Ambient(disableSun bool, ov *override.AmbientOverride, atmo records.Atmosphere) (records.Atmosphere, bool) {
	changed := false

	if disableSun {
		atmo.Sunlight = records.RGB8{}
		changed = true
	}

	if ov == nil {
		return atmo, changed
	}

	if ov.Ambient != nil {
		atmo.Ambient = ov.Ambient.ToRGB8()
		changed = true
	}
	if ov.Sunlight != nil {
		atmo.Sunlight = ov.Sunlight.ToRGB8()
		changed = true
	}
	if ov.Fog != nil {
		atmo.Fog = ov.Fog.ToRGB8()
		changed = true
	}
	if ov.FogDensity != nil {
		atmo.FogDensity = *ov.FogDensity
		changed = true
	}

	return atmo, changed
}

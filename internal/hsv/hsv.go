// Package hsv converts record colors between 8-bit RGB and hue/saturation/value
// and classifies lights by hue.
package hsv

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/danieljhkim/lightfix/internal/records"
)

// Standard lights are the warm orange band: StandardHueMin <= hue < StandardHueMax.
const (
	StandardHueMin = 14.0
	StandardHueMax = 64.0
)

// Class selects which global multiplier set applies to a light.
type Class int

const (
	Standard Class = iota
	Colored
)

func (c Class) String() string {
	if c == Colored {
		return "colored"
	}
	return "standard"
}

// HSV is a color with hue in degrees and saturation/value in [0,1].
// Values outside those ranges are allowed in flight and clamped on conversion.
type HSV struct {
	H float64
	S float64
	V float64
}

// FromRGB8 converts an 8-bit color. Gray colors get hue 0.
func FromRGB8(c records.RGB8) HSV {
	h, s, v := colorful.Color{
		R: float64(c[0]) / 255.0,
		G: float64(c[1]) / 255.0,
		B: float64(c[2]) / 255.0,
	}.Hsv()
	return HSV{H: h, S: s, V: v}
}

// ToRGB8 converts back to 8-bit RGB. Hue wraps into [0,360) and each RGB
// channel is clamped before rounding.
func (c HSV) ToRGB8() records.RGB8 {
	r, g, b := colorful.Hsv(WrapHue(c.H), c.S, c.V).Clamped().RGB255()
	return records.RGB8{r, g, b}
}

// WrapHue maps any hue in degrees into [0,360).
func WrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Classify returns Standard for hues in [StandardHueMin, StandardHueMax) and
// Colored for everything else.
func Classify(hue float64) Class {
	if hue >= StandardHueMin && hue < StandardHueMax {
		return Standard
	}
	return Colored
}

package override

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/lightfix/internal/hsv"
)

// Keys accepted in an ambient override.
const (
	KeyAmbient    = "ambient"
	KeySunlight   = "sunlight"
	KeyFog        = "fog"
	KeyFogDensity = "fog_density"
)

var ambientKeys = map[string]bool{
	KeyAmbient: true, KeySunlight: true, KeyFog: true, KeyFogDensity: true,
}

// AmbientOverride replaces atmosphere values of the interior cells whose
// identity matches its pattern. Every field is optional; nil leaves the
// cell's value untouched.
type AmbientOverride struct {
	Ambient    *hsv.HSV
	Sunlight   *hsv.HSV
	Fog        *hsv.HSV
	FogDensity *float64
}

// IsEmpty reports whether the override changes nothing.
func (o AmbientOverride) IsEmpty() bool {
	return o.Ambient == nil && o.Sunlight == nil && o.Fog == nil && o.FogDensity == nil
}

// ParseColor parses "h:s:v". Hue is clamped to [0,360], saturation and value to [0,1].
func ParseColor(s string) (hsv.HSV, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return hsv.HSV{}, fmt.Errorf("%w: %q (expected hue:saturation:value)", ErrBadColor, s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := parseFloat("color", p)
		if err != nil {
			return hsv.HSV{}, fmt.Errorf("%w: %q: %v", ErrBadColor, s, err)
		}
		vals[i] = v
	}
	return clampColor(hsv.HSV{H: vals[0], S: vals[1], V: vals[2]}), nil
}

func clampColor(c hsv.HSV) hsv.HSV {
	return hsv.HSV{H: clamp(c.H, 0, 360), S: clamp(c.S, 0, 1), V: clamp(c.V, 0, 1)}
}

// Set assigns one key from its textual value.
func (o *AmbientOverride) Set(key, raw string) error {
	switch key {
	case KeyAmbient, KeySunlight, KeyFog:
		c, err := ParseColor(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case KeyAmbient:
			o.Ambient = &c
		case KeySunlight:
			o.Sunlight = &c
		default:
			o.Fog = &c
		}
		return nil
	case KeyFogDensity:
		v, err := parseFloat(key, raw)
		if err != nil {
			return err
		}
		o.FogDensity = &v
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
}

// ParseAmbientSpec parses "ambient=h:s:v,sunlight=h:s:v,fog=h:s:v,fog_density=x"
// with any subset of the keys.
func ParseAmbientSpec(s string) (AmbientOverride, error) {
	var o AmbientOverride
	err := parsePairs(s, o.Set)
	return o, err
}

// ParseAmbientOverride parses "<pattern>=<spec>".
func ParseAmbientOverride(s string) (string, AmbientOverride, error) {
	pattern, spec, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(pattern) == "" {
		return "", AmbientOverride{}, fmt.Errorf("%w: %q", ErrBadPair, s)
	}
	o, err := ParseAmbientSpec(spec)
	if err != nil {
		return "", AmbientOverride{}, fmt.Errorf("ambient override %q: %w", pattern, err)
	}
	return strings.TrimSpace(pattern), o, nil
}

// yamlColor is the document form of a color.
type yamlColor struct {
	Hue        float64 `yaml:"hue"`
	Saturation float64 `yaml:"saturation"`
	Value      float64 `yaml:"value"`
}

type rawAmbientOverride struct {
	Ambient    *yamlColor `yaml:"ambient,omitempty"`
	Sunlight   *yamlColor `yaml:"sunlight,omitempty"`
	Fog        *yamlColor `yaml:"fog,omitempty"`
	FogDensity *float64   `yaml:"fog_density,omitempty"`
}

func (c *yamlColor) toHSV() *hsv.HSV {
	if c == nil {
		return nil
	}
	v := clampColor(hsv.HSV{H: c.Hue, S: c.Saturation, V: c.Value})
	return &v
}

func fromHSV(c *hsv.HSV) *yamlColor {
	if c == nil {
		return nil
	}
	return &yamlColor{Hue: c.H, Saturation: c.S, Value: c.V}
}

// UnmarshalYAML decodes an ambient override mapping. Colors may be written
// either as {hue, saturation, value} mappings or as "h:s:v" strings.
func (o *AmbientOverride) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, ambientKeys); err != nil {
		return err
	}

	var out AmbientOverride
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if key == KeyFogDensity {
			var d float64
			if err := val.Decode(&d); err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, key, err)
			}
			out.FogDensity = &d
			continue
		}

		var c hsv.HSV
		if val.Kind == yaml.ScalarNode {
			parsed, err := ParseColor(val.Value)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, key, err)
			}
			c = parsed
		} else {
			var yc yamlColor
			if err := val.Decode(&yc); err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, key, err)
			}
			c = *yc.toHSV()
		}
		switch key {
		case KeyAmbient:
			out.Ambient = &c
		case KeySunlight:
			out.Sunlight = &c
		case KeyFog:
			out.Fog = &c
		}
	}

	*o = out
	return nil
}

// MarshalYAML writes colors as mappings.
func (o AmbientOverride) MarshalYAML() (interface{}, error) {
	return rawAmbientOverride{
		Ambient:    fromHSV(o.Ambient),
		Sunlight:   fromHSV(o.Sunlight),
		Fog:        fromHSV(o.Fog),
		FogDensity: o.FogDensity,
	}, nil
}

package override

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys accepted in a light override.
const (
	KeyHue            = "hue"
	KeyHueMult        = "hue_mult"
	KeySaturation     = "saturation"
	KeySaturationMult = "saturation_mult"
	KeyValue          = "value"
	KeyValueMult      = "value_mult"
	KeyRadius         = "radius"
	KeyRadiusMult     = "radius_mult"
	KeyDuration       = "duration"
	KeyDurationMult   = "duration_mult"
	KeyFlag           = "flag"
)

var lightKeys = map[string]bool{
	KeyHue: true, KeyHueMult: true,
	KeySaturation: true, KeySaturationMult: true,
	KeyValue: true, KeyValueMult: true,
	KeyRadius: true, KeyRadiusMult: true,
	KeyDuration: true, KeyDurationMult: true,
	KeyFlag: true,
}

// LightOverride adjusts the lights whose identity matches its pattern.
// Fixed hue is clamped to [0,360] and fixed saturation/value to [0,1] when set.
type LightOverride struct {
	Hue        Channel
	Saturation Channel
	Value      Channel
	Radius     Channel
	Duration   Channel

	// Flag, when set, replaces the record's whole flag set.
	Flag *LightFlag
}

// Set assigns one key from its textual value.
func (o *LightOverride) Set(key, raw string) error {
	switch key {
	case KeyHue:
		v, err := parseFloat(key, raw)
		if err != nil {
			return err
		}
		return o.Hue.set(Fixed, clamp(v, 0, 360), KeyHue)
	case KeyHueMult:
		v, err := parseFloat(key, raw)
		if err != nil {
			return err
		}
		return o.Hue.set(Multiplier, v, KeyHue)
	case KeySaturation:
		v, err := parseFloat(key, raw)
		if err != nil {
			return err
		}
		return o.Saturation.set(Fixed, clamp(v, 0, 1), KeySaturation)
	case KeySaturationMult:
		v, err := parseFloat(key, raw)
		if err != nil {
			return err
		}
		return o.Saturation.set(Multiplier, v, KeySaturation)
	case KeyValue:
		v, err := parseFloat(key, raw)
		if err != nil {
			return err
		}
		return o.Value.set(Fixed, clamp(v, 0, 1), KeyValue)
	case KeyValueMult:
		v, err := parseFloat(key, raw)
		if err != nil {
			return err
		}
		return o.Value.set(Multiplier, v, KeyValue)
	case KeyRadius:
		v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
		if err != nil {
			return fmt.Errorf("%w for %s: %v", ErrBadNumber, key, err)
		}
		return o.Radius.set(Fixed, float64(v), KeyRadius)
	case KeyRadiusMult:
		v, err := parseFloat(key, raw)
		if err != nil {
			return err
		}
		return o.Radius.set(Multiplier, v, KeyRadius)
	case KeyDuration:
		v, err := parseFloat(key, raw)
		if err != nil {
			return err
		}
		return o.Duration.set(Fixed, v, KeyDuration)
	case KeyDurationMult:
		v, err := parseFloat(key, raw)
		if err != nil {
			return err
		}
		return o.Duration.set(Multiplier, v, KeyDuration)
	case KeyFlag:
		flag, err := ParseLightFlag(raw)
		if err != nil {
			return err
		}
		o.Flag = &flag
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
}

// ParseLightSpec parses a comma-separated list of key=value pairs, e.g.
// "radius=255,hue=240,flag=FLICKERSLOW".
func ParseLightSpec(s string) (LightOverride, error) {
	var o LightOverride
	err := parsePairs(s, o.Set)
	return o, err
}

// ParseLightOverride parses "<pattern>=<spec>", e.g.
// "torch_001=radius_mult=2.0,duration_mult=5.0".
func ParseLightOverride(s string) (string, LightOverride, error) {
	pattern, spec, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(pattern) == "" {
		return "", LightOverride{}, fmt.Errorf("%w: %q", ErrBadPair, s)
	}
	o, err := ParseLightSpec(spec)
	if err != nil {
		return "", LightOverride{}, fmt.Errorf("light override %q: %w", pattern, err)
	}
	return strings.TrimSpace(pattern), o, nil
}

// rawLightOverride is the document form of a light override.
type rawLightOverride struct {
	Hue            *float64   `yaml:"hue,omitempty"`
	HueMult        *float64   `yaml:"hue_mult,omitempty"`
	Saturation     *float64   `yaml:"saturation,omitempty"`
	SaturationMult *float64   `yaml:"saturation_mult,omitempty"`
	Value          *float64   `yaml:"value,omitempty"`
	ValueMult      *float64   `yaml:"value_mult,omitempty"`
	Radius         *uint32    `yaml:"radius,omitempty"`
	RadiusMult     *float64   `yaml:"radius_mult,omitempty"`
	Duration       *float64   `yaml:"duration,omitempty"`
	DurationMult   *float64   `yaml:"duration_mult,omitempty"`
	Flag           *LightFlag `yaml:"flag,omitempty"`
}

// UnmarshalYAML decodes a light override mapping, rejecting unknown keys and
// fixed/multiplier conflicts.
func (o *LightOverride) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, lightKeys); err != nil {
		return err
	}

	var raw rawLightOverride
	if err := node.Decode(&raw); err != nil {
		return err
	}

	var out LightOverride
	steps := []struct {
		ch   *Channel
		kind ChannelKind
		v    *float64
		name string
		lo   float64
		hi   float64
	}{
		{&out.Hue, Fixed, raw.Hue, KeyHue, 0, 360},
		{&out.Hue, Multiplier, raw.HueMult, KeyHue, math.Inf(-1), math.Inf(1)},
		{&out.Saturation, Fixed, raw.Saturation, KeySaturation, 0, 1},
		{&out.Saturation, Multiplier, raw.SaturationMult, KeySaturation, math.Inf(-1), math.Inf(1)},
		{&out.Value, Fixed, raw.Value, KeyValue, 0, 1},
		{&out.Value, Multiplier, raw.ValueMult, KeyValue, math.Inf(-1), math.Inf(1)},
		{&out.Radius, Multiplier, raw.RadiusMult, KeyRadius, math.Inf(-1), math.Inf(1)},
		{&out.Duration, Fixed, raw.Duration, KeyDuration, math.Inf(-1), math.Inf(1)},
		{&out.Duration, Multiplier, raw.DurationMult, KeyDuration, math.Inf(-1), math.Inf(1)},
	}
	if raw.Radius != nil {
		if err := out.Radius.set(Fixed, float64(*raw.Radius), KeyRadius); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
	}
	for _, s := range steps {
		if s.v == nil {
			continue
		}
		if err := s.ch.set(s.kind, clamp(*s.v, s.lo, s.hi), s.name); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
	}
	out.Flag = raw.Flag

	*o = out
	return nil
}

// MarshalYAML writes the override back in document form.
func (o LightOverride) MarshalYAML() (interface{}, error) {
	var raw rawLightOverride
	raw.Hue, raw.HueMult = channelFields(o.Hue)
	raw.Saturation, raw.SaturationMult = channelFields(o.Saturation)
	raw.Value, raw.ValueMult = channelFields(o.Value)
	var radius *float64
	radius, raw.RadiusMult = channelFields(o.Radius)
	if radius != nil {
		r := uint32(*radius)
		raw.Radius = &r
	}
	raw.Duration, raw.DurationMult = channelFields(o.Duration)
	raw.Flag = o.Flag
	return raw, nil
}

func (o LightOverride) String() string {
	flag := "-"
	if o.Flag != nil {
		flag = string(*o.Flag)
	}
	return fmt.Sprintf("hue%s sat%s val%s radius%s duration%s flag=%s",
		o.Hue, o.Saturation, o.Value, o.Radius, o.Duration, flag)
}

func channelFields(c Channel) (fixed, mult *float64) {
	v := c.Value()
	switch c.Kind() {
	case Fixed:
		return &v, nil
	case Multiplier:
		return nil, &v
	}
	return nil, nil
}

func parsePairs(s string, set func(key, value string) error) error {
	for _, pair := range strings.Split(s, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%w: %q", ErrBadPair, pair)
		}
		if err := set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

func parseFloat(key, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w for %s: %v", ErrBadNumber, key, err)
	}
	return v, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func checkKeys(node *yaml.Node, allowed map[string]bool) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: override must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !allowed[key.Value] {
			return fmt.Errorf("line %d: %w: %q", key.Line, ErrUnknownField, key.Value)
		}
	}
	return nil
}

package records

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LightFlags is the flag set stored on a light record.
type LightFlags uint32

const (
	FlagDynamic      LightFlags = 0x0001
	FlagCanCarry     LightFlags = 0x0002
	FlagNegative     LightFlags = 0x0004
	FlagFlicker      LightFlags = 0x0008
	FlagFire         LightFlags = 0x0010
	FlagOffByDefault LightFlags = 0x0020
	FlagFlickerSlow  LightFlags = 0x0040
	FlagPulse        LightFlags = 0x0080
	FlagPulseSlow    LightFlags = 0x0100
)

// FlickerFlags and PulseFlags group the animated variants.
const (
	FlickerFlags = FlagFlicker | FlagFlickerSlow
	PulseFlags   = FlagPulse | FlagPulseSlow
)

var flagNames = []struct {
	flag LightFlags
	name string
}{
	{FlagDynamic, "DYNAMIC"},
	{FlagCanCarry, "CAN_CARRY"},
	{FlagNegative, "NEGATIVE"},
	{FlagFlicker, "FLICKER"},
	{FlagFire, "FIRE"},
	{FlagOffByDefault, "OFF_BY_DEFAULT"},
	{FlagFlickerSlow, "FLICKER_SLOW"},
	{FlagPulse, "PULSE"},
	{FlagPulseSlow, "PULSE_SLOW"},
}

// Has reports whether every bit in f2 is set.
func (f LightFlags) Has(f2 LightFlags) bool {
	return f&f2 == f2
}

// Without returns f with the bits in f2 cleared.
func (f LightFlags) Without(f2 LightFlags) LightFlags {
	return f &^ f2
}

// Names returns the flag names in bit order. Unknown bits are rendered as hex.
func (f LightFlags) Names() []string {
	names := []string{}
	rest := f
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return names
}

func (f LightFlags) String() string {
	if f == 0 {
		return "NONE"
	}
	return strings.Join(f.Names(), "|")
}

// ParseLightFlag parses a single flag name, case-insensitively.
func ParseLightFlag(name string) (LightFlags, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == "NONE" || normalized == "" {
		return 0, nil
	}
	for _, fn := range flagNames {
		if fn.name == normalized {
			return fn.flag, nil
		}
	}
	if strings.HasPrefix(normalized, "0X") {
		v, err := strconv.ParseUint(normalized[2:], 16, 32)
		if err == nil {
			return LightFlags(v), nil
		}
	}
	return 0, fmt.Errorf("unknown light flag %q", name)
}

// MarshalYAML writes the flags as a list of names.
func (f LightFlags) MarshalYAML() (interface{}, error) {
	return f.Names(), nil
}

// UnmarshalYAML accepts either an integer bitmask or a list of flag names.
func (f *LightFlags) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v, err := strconv.ParseUint(node.Value, 0, 32)
		if err != nil {
			return fmt.Errorf("line %d: invalid light flags %q", node.Line, node.Value)
		}
		*f = LightFlags(v)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		var out LightFlags
		for _, name := range names {
			flag, err := ParseLightFlag(name)
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			out |= flag
		}
		*f = out
		return nil
	default:
		return fmt.Errorf("line %d: light flags must be an integer or a list", node.Line)
	}
}

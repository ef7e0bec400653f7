package override

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/lightfix/internal/records"
)

// LightFlag is a flag replacement applied by a light override.
type LightFlag string

const (
	FlagNone        LightFlag = "NONE"
	FlagFlicker     LightFlag = "FLICKER"
	FlagFlickerSlow LightFlag = "FLICKERSLOW"
	FlagPulse       LightFlag = "PULSE"
	FlagPulseSlow   LightFlag = "PULSESLOW"
)

// ParseLightFlag parses a flag name case-insensitively.
func ParseLightFlag(s string) (LightFlag, error) {
	switch LightFlag(strings.ToUpper(strings.TrimSpace(s))) {
	case FlagNone:
		return FlagNone, nil
	case FlagFlicker:
		return FlagFlicker, nil
	case FlagFlickerSlow:
		return FlagFlickerSlow, nil
	case FlagPulse:
		return FlagPulse, nil
	case FlagPulseSlow:
		return FlagPulseSlow, nil
	}
	return "", fmt.Errorf("%w: %q (expected NONE, FLICKER, FLICKERSLOW, PULSE or PULSESLOW)", ErrUnknownFlag, s)
}

// Flags returns the record flag set this replacement stands for.
func (f LightFlag) Flags() records.LightFlags {
	switch f {
	case FlagFlicker:
		return records.FlagFlicker
	case FlagFlickerSlow:
		return records.FlagFlickerSlow
	case FlagPulse:
		return records.FlagPulse
	case FlagPulseSlow:
		return records.FlagPulseSlow
	default:
		return 0
	}
}

// UnmarshalYAML parses the flag name.
func (f *LightFlag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: flag must be a string", node.Line)
	}
	parsed, err := ParseLightFlag(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*f = parsed
	return nil
}

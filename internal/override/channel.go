package override

import "fmt"

// ChannelKind tags how a channel's final value is determined.
type ChannelKind uint8

const (
	// Unset means the global multiplier for the light's class applies.
	Unset ChannelKind = iota
	// Fixed replaces the current value outright.
	Fixed
	// Multiplier scales the current value.
	Multiplier
)

func (k ChannelKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Multiplier:
		return "multiplier"
	default:
		return "unset"
	}
}

// Channel is the override for one light property. The zero value is Unset.
type Channel struct {
	kind  ChannelKind
	value float64
}

// FixedChannel returns a channel that replaces the current value with v.
func FixedChannel(v float64) Channel {
	return Channel{kind: Fixed, value: v}
}

// MultChannel returns a channel that multiplies the current value by v.
func MultChannel(v float64) Channel {
	return Channel{kind: Multiplier, value: v}
}

// Kind returns the channel's tag.
func (c Channel) Kind() ChannelKind {
	return c.kind
}

// Value returns the fixed value or multiplier. It is meaningless for Unset.
func (c Channel) Value() float64 {
	return c.value
}

// IsSet reports whether the channel carries a fixed value or a multiplier.
func (c Channel) IsSet() bool {
	return c.kind != Unset
}

// Resolve computes the channel's output for the current value. global is the
// multiplier used when the channel is Unset.
func (c Channel) Resolve(current, global float64) float64 {
	switch c.kind {
	case Multiplier:
		return current * c.value
	case Fixed:
		return c.value
	default:
		return current * global
	}
}

// set assigns kind/value, refusing to mix fixed and multiplier forms.
func (c *Channel) set(kind ChannelKind, v float64, name string) error {
	if c.kind != Unset && c.kind != kind {
		return fmt.Errorf("%w: %s and %s_mult", ErrExclusiveChannel, name, name)
	}
	c.kind = kind
	c.value = v
	return nil
}

func (c Channel) String() string {
	switch c.kind {
	case Fixed:
		return fmt.Sprintf("=%g", c.value)
	case Multiplier:
		return fmt.Sprintf("x%g", c.value)
	default:
		return "-"
	}
}

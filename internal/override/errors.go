package override

import "errors"

var (
	// ErrExclusiveChannel indicates a fixed value and a multiplier were both given for one channel.
	ErrExclusiveChannel = errors.New("fixed value and multiplier are mutually exclusive")

	// ErrBadPair indicates an entry that is not of the form key=value.
	ErrBadPair = errors.New("expected key=value pair")

	// ErrUnknownField indicates an unrecognized override key.
	ErrUnknownField = errors.New("unknown field")

	// ErrBadNumber indicates a value that failed to parse as a number.
	ErrBadNumber = errors.New("invalid number")

	// ErrUnknownFlag indicates an unrecognized light flag name.
	ErrUnknownFlag = errors.New("unknown light flag")

	// ErrBadColor indicates a color that is not of the form hue:saturation:value.
	ErrBadColor = errors.New("invalid color")
)

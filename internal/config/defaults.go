package config

// Default tuning values.
const (
	DefaultStandardHue        = 0.62
	DefaultStandardSaturation = 0.8
	DefaultStandardValue      = 0.57
	// 2.0 suited one shader pack only; 1.2 is the modern default.
	DefaultStandardRadius = 1.2

	DefaultColoredHue        = 1.0
	DefaultColoredSaturation = 0.9
	DefaultColoredValue      = 0.7
	DefaultColoredRadius     = 1.1

	DefaultDurationMult = 2.5

	// ClassicStandardRadius is forced by classic mode.
	ClassicStandardRadius = 2.0
)

// DefaultExcludedPlugins lists packages known to break the record parser.
func DefaultExcludedPlugins() []string {
	return []string{
		"deleted_groundcover.omwaddon",
		"Clean_Argonian Full Helms Lore Integrated.ESP",
		"Baldurwind.omwaddon",
		"Crassified Navigation.omwaddon",
		"LuaMultiMark.omwaddon",
		"S3maphore.esp",
		"Toolgun.omwaddon",
	}
}

// Defaults returns the built-in configuration.
func Defaults() Document {
	return Document{
		DisableFlickering: true,
		DisablePulse:      false,
		SaveLog:           false,
		AutoEnable:        false,

		StandardHue:        DefaultStandardHue,
		StandardSaturation: DefaultStandardSaturation,
		StandardValue:      DefaultStandardValue,
		StandardRadius:     DefaultStandardRadius,

		ColoredHue:        DefaultColoredHue,
		ColoredSaturation: DefaultColoredSaturation,
		ColoredValue:      DefaultColoredValue,
		ColoredRadius:     DefaultColoredRadius,

		DurationMult: DefaultDurationMult,

		ExcludedPlugins: DefaultExcludedPlugins(),
		ExcludedIDs:     []string{},
	}
}

package config

// ResolveInput holds every configuration layer of a run.
type ResolveInput struct {
	Defaults  Document
	Persisted *Document
	Env       EnvFlags
	Patch     Patch
	Classic   bool

	// ForceSave requests persisting the effective document.
	ForceSave bool
}

// Resolution is the effective configuration plus the persistence decision.
type Resolution struct {
	Effective Document

	// Persistable is what gets saved: the base document with the explicit
	// patch applied. Environment flags and classic mode only affect the
	// current run.
	Persistable Document

	// ShouldPersist is true when no document existed, a save was requested,
	// or the effective document sets save_config.
	ShouldPersist bool
}

// Resolve merges the layers, lowest to highest: defaults, persisted document,
// environment flags (OR-ed in), the explicit patch, then classic mode which
// forces standard_radius and disable_interior_sun.
func Resolve(in ResolveInput) *Resolution {
	base := in.Defaults
	if in.Persisted != nil {
		base = *in.Persisted
	}
	persistable := Merge(base, in.Patch)

	eff := base.Clone()
	eff.NoNotifications = eff.NoNotifications || in.Env.NoNotifications
	eff.Debug = eff.Debug || in.Env.Debug

	eff = Merge(eff, in.Patch)

	if in.Classic {
		eff.StandardRadius = ClassicStandardRadius
		eff.DisableInteriorSun = true
	}

	return &Resolution{
		Effective:     eff,
		Persistable:   persistable,
		ShouldPersist: in.Persisted == nil || in.ForceSave || eff.SaveConfig,
	}
}

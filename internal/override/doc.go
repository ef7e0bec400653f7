// Package override defines per-record light and ambient overrides.
//
// Overrides come from two places: the persisted configuration document and
// command-line flags. Both go through the constructors in this package, so
// an override that names both a fixed value and a multiplier for one channel
// is rejected where it is built and never reaches the transformers.
//
// Key types:
//   - Channel: Unset, Fixed(v) or Multiplier(v) for one light property
//   - LightOverride: hue, saturation, value, radius and duration channels plus a flag replacement
//   - AmbientOverride: fixed ambient, sunlight and fog colors and fog density
//   - Table: insertion-ordered pattern -> override entries
package override

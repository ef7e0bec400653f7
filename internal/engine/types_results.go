package engine

import (
	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/merge"
	"github.com/danieljhkim/lightfix/internal/pattern"
	"github.com/danieljhkim/lightfix/internal/records"
	"github.com/danieljhkim/lightfix/internal/state"
)

// GenerateResult represents the result of generating the overlay.
type GenerateResult struct {
	// Overlay is the generated package
	Overlay *records.Overlay

	// OutputPath is where the overlay was written
	OutputPath string

	// Effective is the configuration the run used
	Effective config.Document

	// Persisted is true if the configuration document was written
	Persisted bool

	// Enabled is true if the overlay was added to the load order by this run
	Enabled bool

	// LogPath is the verbose dump, if one was written
	LogPath string

	// Stats counts what the merge skipped
	Stats merge.Stats

	// Dropped lists patterns that failed to compile
	Dropped []pattern.Dropped

	// Failed lists packages that could not be parsed
	Failed []string

	// Warnings are recoverable problems the caller should report
	Warnings []string
}

// StatusResult represents the last recorded generation.
type StatusResult struct {
	// ConfigID keys the run record
	ConfigID string

	Run *state.RunRecord

	// OverlayExists is false if the recorded overlay is gone
	OverlayExists bool

	// Modified is true if the overlay on disk no longer matches the record
	Modified bool

	// Enabled reports whether the overlay is in the current load order
	Enabled bool
}

// ConfigResult is the effective configuration and where it came from.
type ConfigResult struct {
	Effective config.Document

	// Source is the persisted document path, or empty if built from defaults
	Source string

	// Dropped lists patterns that would fail to compile
	Dropped []pattern.Dropped
}

// Package engine provides the core operations of lightfix.
//
// The engine is the orchestration layer between the CLI and the lower-level
// packages. A generation run resolves the effective configuration, compiles
// its patterns, parses the declared packages in parallel, folds them into a
// single overlay in a strictly ordered pass, and writes the result.
//
// Key components:
//   - Generate: the full overlay generation pipeline
//   - Status: the record of the last successful generation
//   - ShowConfig: the effective configuration without side effects
package engine

import (
	"github.com/danieljhkim/lightfix/internal/clock"
	"github.com/danieljhkim/lightfix/internal/fsops"
	"github.com/danieljhkim/lightfix/internal/hash"
	"github.com/danieljhkim/lightfix/internal/pkgsource"
	"github.com/danieljhkim/lightfix/internal/state"
)

// OverlayName is the file name of the generated overlay.
const OverlayName = "S3LightFixes.omwaddon"

// Engine orchestrates all lightfix operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	runStore state.RunStore
	hasher   hash.Hasher
	clock    clock.Clock
	parser   pkgsource.Parser

	// parseLimit caps concurrent package parsing; zero means GOMAXPROCS.
	parseLimit int
}

// New creates a new Engine with the given dependencies.
func New(
	fs fsops.FS,
	runStore state.RunStore,
	hasher hash.Hasher,
	clk clock.Clock,
	parser pkgsource.Parser,
) *Engine {
	return &Engine{
		fs:       fs,
		runStore: runStore,
		hasher:   hasher,
		clock:    clk,
		parser:   parser,
	}
}

// SetParseLimit caps the number of packages parsed at once.
func (e *Engine) SetParseLimit(n int) {
	e.parseLimit = n
}

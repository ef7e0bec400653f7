package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danieljhkim/lightfix/internal/clock"
	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/engine"
	"github.com/danieljhkim/lightfix/internal/fsops"
	"github.com/danieljhkim/lightfix/internal/hash"
	"github.com/danieljhkim/lightfix/internal/pkgsource"
	"github.com/danieljhkim/lightfix/internal/state"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine(paths *config.Paths) (*engine.Engine, error) {
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	fs := fsops.NewRealFS()
	runStore := state.NewFileStateStore(fs, paths.State)
	hasher := hash.NewSHA256Hasher()
	clk := &clock.RealClock{}

	return engine.New(fs, runStore, hasher, clk, pkgsource.NewDumpParser()), nil
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON writes a value as JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

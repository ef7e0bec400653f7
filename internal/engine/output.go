package engine

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/lightfix/internal/records"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func encodeOverlay(o *records.Overlay) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// outputDir picks the directory the overlay is written to: the configured
// directory, else data-local, else cwd. A configured directory that is not
// an existing directory falls back to cwd and returns the reason.
func (e *Engine) outputDir(configured, dataLocal, cwd string) (string, error) {
	if configured != "" {
		if e.fs.IsDir(configured) {
			return configured, nil
		}
		return cwd, fmt.Errorf("%s is not a directory", configured)
	}
	if dataLocal != "" {
		if err := e.fs.MkdirAll(dataLocal, 0755); err != nil {
			return cwd, fmt.Errorf("cannot create %s: %w", dataLocal, err)
		}
		return dataLocal, nil
	}
	return cwd, nil
}

// writeOverlay writes data into dir. An overlay left in data-local by an
// earlier run is removed when this run writes somewhere else, so the game
// never loads two copies.
func (e *Engine) writeOverlay(dir, dataLocal string, data []byte) (string, error) {
	path := filepath.Join(dir, OverlayName)

	if dataLocal != "" {
		stale := filepath.Join(dataLocal, OverlayName)
		if filepath.Clean(stale) != filepath.Clean(path) {
			if info, err := e.fs.Stat(stale); err == nil && !info.IsDir() {
				_ = e.fs.Remove(stale)
			}
		}
	}

	if err := e.fs.AtomicWrite(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return path, nil
}

func (e *Engine) writeDump(path string, o *records.Overlay) error {
	if path == "" {
		return fmt.Errorf("no log path")
	}
	return e.fs.AtomicWrite(path, []byte(dumpConfig.Sdump(o)), 0644)
}

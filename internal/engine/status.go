package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/danieljhkim/lightfix/internal/gamecfg"
	"github.com/danieljhkim/lightfix/internal/state"
)

// Status returns the last successful generation for a game configuration and
// whether the overlay it wrote is still intact.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	configID := state.ComputeConfigID(req.Paths.GameConfig)

	run, err := e.runStore.LoadRun(configID)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w for %s", ErrNoRun, req.Paths.GameConfig)
		}
		return nil, fmt.Errorf("failed to load run record: %w", err)
	}

	result := &StatusResult{
		ConfigID: configID,
		Run:      run,
	}

	exists, err := e.fs.Exists(run.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check overlay: %w", err)
	}
	result.OverlayExists = exists
	if exists {
		sum, err := e.hasher.HashFile(run.OutputPath)
		result.Modified = err != nil || sum != run.Checksum
	}

	// The game configuration may have moved since; that only hides Enabled.
	if cfg, err := gamecfg.Load(e.fs, req.Paths.GameConfig); err == nil {
		result.Enabled = cfg.HasContent(OverlayName)
	}

	return result, nil
}

package engine

import (
	"errors"

	"github.com/danieljhkim/lightfix/internal/merge"
)

var (
	// ErrGameConfig indicates the game configuration could not be read.
	ErrGameConfig = errors.New("cannot read game configuration")

	// ErrConfigParse indicates the persisted light configuration exists but is invalid.
	ErrConfigParse = errors.New("light configuration is invalid")

	// ErrNoContent indicates the load order declares no content packages.
	ErrNoContent = errors.New("no content files declared in the game configuration")

	// ErrNoDependencies indicates no package contributed to the overlay.
	ErrNoDependencies = merge.ErrNoDependencies

	// ErrOutput indicates the overlay could not be written.
	ErrOutput = errors.New("failed to write overlay")

	// ErrNoRun indicates no successful generation has been recorded.
	ErrNoRun = errors.New("no generation recorded")
)

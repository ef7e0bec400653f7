package cli

import (
	"errors"

	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/engine"
)

// Exit codes. They are stable; wrappers and launchers key off them.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitNoDependencies = 2
	ExitNoContent      = 4
	ExitConfigParse    = 5
	ExitOutput         = 6
	ExitGameConfig     = 127
)

// ExitCode maps an error returned by Execute to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, engine.ErrNoDependencies):
		return ExitNoDependencies
	case errors.Is(err, engine.ErrNoContent):
		return ExitNoContent
	case errors.Is(err, engine.ErrConfigParse):
		return ExitConfigParse
	case errors.Is(err, engine.ErrOutput):
		return ExitOutput
	case errors.Is(err, engine.ErrGameConfig), errors.Is(err, config.ErrGameConfigNotFound):
		return ExitGameConfig
	default:
		return ExitFailure
	}
}

package engine

import "github.com/danieljhkim/lightfix/internal/config"

// GenerateRequest represents a request to generate the overlay.
type GenerateRequest struct {
	// Paths locates the game configuration and the files derived from it
	Paths config.Paths

	// CWD is the fallback output directory
	CWD string

	// Env holds the environment flags
	Env config.EnvFlags

	// Patch holds the values explicitly supplied by the caller
	Patch config.Patch

	// Classic forces the classic radius and interior sun suppression
	Classic bool

	// SaveConfig persists the effective configuration even if one exists
	SaveConfig bool
}

// StatusRequest represents a request for the last generation.
type StatusRequest struct {
	// Paths locates the game configuration
	Paths config.Paths
}

// ConfigRequest represents a request for the effective configuration.
type ConfigRequest struct {
	Paths   config.Paths
	Env     config.EnvFlags
	Patch   config.Patch
	Classic bool
}

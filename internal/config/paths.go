// Package config manages lightfix configuration and filesystem paths.
//
// The effective configuration of a run is layered: built-in defaults, the
// persisted lightconfig.yaml next to the game configuration, two environment
// flags, explicit per-field values from the command line, and finally classic
// mode. See Resolve.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// GameConfigName is the game configuration file name.
	GameConfigName = "openmw.cfg"

	// LightConfigName is the persisted configuration document.
	LightConfigName = "lightconfig.yaml"

	// LogName is the verbose dump of the last generated overlay.
	LogName = "lightconfig.log"
)

// ErrGameConfigNotFound indicates no game configuration file could be located.
var ErrGameConfigNotFound = errors.New("game configuration not found")

// Paths contains all the filesystem paths used by lightfix.
type Paths struct {
	// GameConfig is the located openmw.cfg.
	GameConfig string

	// ConfigDir is the directory holding GameConfig.
	ConfigDir string

	// LightConfig is the persisted configuration document.
	LightConfig string

	// Log is the verbose dump written when save_log is set.
	Log string

	// Root is the base directory for lightfix's own data (default: ~/.lightfix)
	Root string

	// State holds the record of the last successful run.
	State string
}

// DefaultPaths locates the game configuration and derives the remaining paths.
// The state root can be overridden with LIGHTFIX_ROOT.
func DefaultPaths(explicitGameConfig string) (*Paths, error) {
	gameCfg, err := LocateGameConfig(explicitGameConfig)
	if err != nil {
		return nil, err
	}

	root, err := rootDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(gameCfg)
	return &Paths{
		GameConfig:  gameCfg,
		ConfigDir:   dir,
		LightConfig: filepath.Join(dir, LightConfigName),
		Log:         filepath.Join(dir, LogName),
		Root:        root,
		State:       filepath.Join(root, "state"),
	}, nil
}

func rootDir() (string, error) {
	if root := os.Getenv("LIGHTFIX_ROOT"); root != "" {
		return root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".lightfix"), nil
}

// LocateGameConfig finds openmw.cfg. The lookup order is: the explicit path
// (a file, or a directory containing openmw.cfg), ./openmw.cfg,
// $OPENMW_CONFIG, then <user config dir>/openmw/openmw.cfg.
func LocateGameConfig(explicit string) (string, error) {
	if explicit != "" {
		if p, ok := resolveCfg(explicit); ok {
			return p, nil
		}
		return "", fmt.Errorf("%w: %s", ErrGameConfigNotFound, explicit)
	}

	candidates := []string{GameConfigName}
	if env := os.Getenv("OPENMW_CONFIG"); env != "" {
		candidates = append(candidates, env)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "openmw"))
	}

	for _, c := range candidates {
		if p, ok := resolveCfg(c); ok {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (tried %v)", ErrGameConfigNotFound, candidates)
}

func resolveCfg(p string) (string, bool) {
	info, err := os.Stat(p)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		p = filepath.Join(p, GameConfigName)
		if info, err = os.Stat(p); err != nil || info.IsDir() {
			return "", false
		}
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p, true
	}
	return abs, true
}

// EnsureDirectories creates the state directory if it does not exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.State} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

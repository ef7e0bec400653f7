package pkgsource

import (
	"path/filepath"
	"strings"

	"github.com/danieljhkim/lightfix/internal/fsops"
)

// fixableExts are the package extensions that carry records.
var fixableExts = map[string]bool{
	".esp":      true,
	".esm":      true,
	".omwaddon": true,
	".omwgame":  true,
}

// IsFixable reports whether the file at path is a package the overlay can be
// built from: a known extension (any case) and not the overlay itself.
func IsFixable(path, ownName string) bool {
	base := filepath.Base(path)
	if ownName != "" && strings.EqualFold(base, ownName) {
		return false
	}
	return fixableExts[strings.ToLower(filepath.Ext(base))]
}

// Resolver maps content names to files across data directories. Later
// directories take priority, like the game's virtual file system.
type Resolver struct {
	fs   fsops.FS
	dirs []string
}

// NewResolver creates a Resolver over dirs, given in declared order.
func NewResolver(fs fsops.FS, dirs []string) *Resolver {
	return &Resolver{fs: fs, dirs: append([]string(nil), dirs...)}
}

// Resolve returns the path of name in the highest-priority directory holding it.
func (r *Resolver) Resolve(name string) (string, bool) {
	if err := r.fs.ValidateName(name); err != nil {
		return "", false
	}
	for i := len(r.dirs) - 1; i >= 0; i-- {
		p := filepath.Join(r.dirs[i], name)
		if info, err := r.fs.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

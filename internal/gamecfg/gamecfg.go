// Package gamecfg reads and updates the subset of openmw.cfg that lightfix
// needs: data directories, the content load order, data-local and user-data.
package gamecfg

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/lightfix/internal/fsops"
)

// Config is a parsed game configuration file.
type Config struct {
	// Path is the file the configuration was read from
	Path string

	// DataDirs are the data directories in declared order; later ones win
	DataDirs []string

	// Content is the declared load order
	Content []string

	// DataLocal is the data-local directory, if any
	DataLocal string

	// UserData is the user-data directory, if any
	UserData string

	lines []string
	added []string
}

// Load reads and parses the configuration at path.
func Load(fs fsops.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses configuration text. Relative directories are resolved against
// the directory of path.
func Parse(path string, data []byte) (*Config, error) {
	c := &Config{Path: path}
	base := filepath.Dir(path)

	var dirs, local, userData []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		line := scanner.Text()
		c.lines = append(c.lines, line)
		lineNo++

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected key=value", path, lineNo)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "data":
			dirs = append(dirs, Unquote(value))
		case "data-local":
			local = append(local, Unquote(value))
		case "user-data":
			userData = append(userData, Unquote(value))
		case "content":
			if value != "" {
				c.Content = append(c.Content, value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}

	if n := len(userData); n > 0 {
		c.UserData = resolveDir(base, "", userData[n-1])
	}
	if n := len(local); n > 0 {
		c.DataLocal = resolveDir(base, c.UserData, local[n-1])
	}
	for _, d := range dirs {
		c.DataDirs = append(c.DataDirs, resolveDir(base, c.UserData, d))
	}
	return c, nil
}

// Unquote strips the surrounding quotes of a path value and resolves the
// '&' escapes used inside quoted values.
func Unquote(v string) string {
	if len(v) < 2 || v[0] != '"' {
		return v
	}
	var b strings.Builder
	for i := 1; i < len(v); i++ {
		ch := v[i]
		switch {
		case ch == '&' && i+1 < len(v):
			i++
			b.WriteByte(v[i])
		case ch == '"':
			return b.String()
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func resolveDir(base, userData, p string) string {
	switch {
	case strings.HasPrefix(p, "?local?"):
		p = filepath.Join(base, strings.TrimPrefix(p, "?local?"))
	case strings.HasPrefix(p, "?userdata?") && userData != "":
		p = filepath.Join(userData, strings.TrimPrefix(p, "?userdata?"))
	case !filepath.IsAbs(p):
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}

// Dir returns the directory holding the configuration file.
func (c *Config) Dir() string {
	return filepath.Dir(c.Path)
}

// SearchDirs returns the directories content files are looked up in, lowest
// priority first. data-local outranks every data directory.
func (c *Config) SearchDirs() []string {
	dirs := append([]string(nil), c.DataDirs...)
	if c.DataLocal != "" {
		dirs = append(dirs, c.DataLocal)
	}
	return dirs
}

// HasContent reports whether name is in the load order. File names compare
// case-insensitively.
func (c *Config) HasContent(name string) bool {
	for _, n := range c.Content {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// AddContent appends name to the load order. It returns false if name is
// already present.
func (c *Config) AddContent(name string) bool {
	if c.HasContent(name) {
		return false
	}
	c.Content = append(c.Content, name)
	c.added = append(c.added, name)
	return true
}

// Encode renders the configuration: the original lines followed by any added
// content entries.
func (c *Config) Encode() []byte {
	var buf bytes.Buffer
	for _, l := range c.lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	for _, name := range c.added {
		fmt.Fprintf(&buf, "content=%s\n", name)
	}
	return buf.Bytes()
}

// Save writes the configuration back to its path atomically.
func (c *Config) Save(fs fsops.FS) error {
	if err := fs.AtomicWrite(c.Path, c.Encode(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Path, err)
	}
	for _, name := range c.added {
		c.lines = append(c.lines, "content="+name)
	}
	c.added = nil
	return nil
}

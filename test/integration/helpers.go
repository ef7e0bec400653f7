package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/lightfix/internal/clock"
	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/engine"
	"github.com/danieljhkim/lightfix/internal/hash"
	"github.com/danieljhkim/lightfix/internal/pkgsource"
	"github.com/danieljhkim/lightfix/internal/state"
)

// testFS is a filesystem implementation that keeps files in memory
type testFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

func newTestFS() *testFS {
	return &testFS{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true},
	}
}

func (fs *testFS) write(path, content string) {
	fs.files[path] = []byte(content)
	_ = fs.MkdirAll(filepath.Dir(path), 0755)
}

func (fs *testFS) Stat(path string) (os.FileInfo, error) {
	if content, ok := fs.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(content))}, nil
	}
	if fs.dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), isDir: true}, nil
	}
	return nil, os.ErrNotExist
}

func (fs *testFS) MkdirAll(path string, perm os.FileMode) error {
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		if _, ok := fs.files[p]; ok {
			return fmt.Errorf("%s is a file", p)
		}
		fs.dirs[p] = true
		if p == filepath.Dir(p) {
			return nil
		}
	}
}

func (fs *testFS) Remove(path string) error {
	if _, ok := fs.files[path]; ok {
		delete(fs.files, path)
		return nil
	}
	if fs.dirs[path] {
		delete(fs.dirs, path)
		return nil
	}
	return os.ErrNotExist
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	fs.files[path] = append([]byte(nil), data...)
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, os.ErrNotExist
}

func (fs *testFS) Exists(path string) (bool, error) {
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) IsDir(path string) bool {
	return fs.dirs[path]
}

func (fs *testFS) ValidateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return fmt.Errorf("invalid content name %q", name)
	}
	return nil
}

// paths lists the files under dir, sorted.
func (fs *testFS) paths(dir string) []string {
	var out []string
	for p := range fs.files {
		if strings.HasPrefix(p, strings.TrimSuffix(dir, "/")+"/") {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// mockFileInfo implements os.FileInfo
type mockFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (m *mockFileInfo) Name() string { return m.name }
func (m *mockFileInfo) Size() int64  { return m.size }
func (m *mockFileInfo) Mode() os.FileMode {
	if m.isDir {
		return os.ModeDir | 0755
	}
	return 0644
}
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// testRunStore is an in-memory run store for testing
type testRunStore struct {
	runs map[string]*state.RunRecord
}

func newTestRunStore() *testRunStore {
	return &testRunStore{runs: make(map[string]*state.RunRecord)}
}

func (s *testRunStore) LoadRun(id string) (*state.RunRecord, error) {
	if rec, ok := s.runs[id]; ok {
		recCopy := *rec
		recCopy.Masters = append([]state.MasterEntry{}, rec.Masters...)
		return &recCopy, nil
	}
	return nil, os.ErrNotExist
}

func (s *testRunStore) SaveRun(id string, rec *state.RunRecord) error {
	recCopy := *rec
	recCopy.Masters = append([]state.MasterEntry{}, rec.Masters...)
	s.runs[id] = &recCopy
	return nil
}

// testPaths is the layout every integration test installs into.
var testPaths = config.Paths{
	GameConfig:  "/game/openmw.cfg",
	ConfigDir:   "/game",
	LightConfig: "/game/" + config.LightConfigName,
	Log:         "/game/" + config.LogName,
	Root:        "/lightfix",
	State:       "/lightfix/state",
}

const (
	dataDir   = "/game/data"
	localDir  = "/game/local"
	workDir   = "/work"
	overlayAt = localDir + "/" + engine.OverlayName
)

// install writes the game configuration for the given packages, in order.
func install(fs *testFS, plugins ...[2]string) {
	lines := []string{
		"# generated for testing",
		"data=" + dataDir,
		`data-local="` + localDir + `"`,
	}
	for _, p := range plugins {
		fs.write(filepath.Join(dataDir, p[0]), p[1])
		lines = append(lines, "content="+p[0])
	}
	fs.write(testPaths.GameConfig, strings.Join(lines, "\n")+"\n")
	fs.dirs[workDir] = true
}

func setupTestEngine(t *testing.T) (*engine.Engine, *testFS, *testRunStore, *hash.FakeHasher) {
	t.Helper()
	fs := newTestFS()
	runStore := newTestRunStore()
	hasher := hash.NewFakeHasher()
	clk := clock.NewFakeClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	eng := engine.New(fs, runStore, hasher, clk, pkgsource.NewDumpParser())
	return eng, fs, runStore, hasher
}

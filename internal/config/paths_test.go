package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCfg(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, GameConfigName)
	if err := os.WriteFile(p, []byte("content=Morrowind.esm\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", p, err)
	}
	return p
}

func TestLocateGameConfig(t *testing.T) {
	t.Run("explicit directory", func(t *testing.T) {
		dir := t.TempDir()
		want := writeCfg(t, dir)

		got, err := LocateGameConfig(dir)
		if err != nil {
			t.Fatalf("LocateGameConfig failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("explicit file", func(t *testing.T) {
		want := writeCfg(t, t.TempDir())

		got, err := LocateGameConfig(want)
		if err != nil {
			t.Fatalf("LocateGameConfig failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("explicit path without openmw.cfg", func(t *testing.T) {
		_, err := LocateGameConfig(t.TempDir())
		if !errors.Is(err, ErrGameConfigNotFound) {
			t.Errorf("expected ErrGameConfigNotFound, got %v", err)
		}
	})

	t.Run("OPENMW_CONFIG environment variable", func(t *testing.T) {
		dir := t.TempDir()
		want := writeCfg(t, dir)

		chdir(t, t.TempDir())
		t.Setenv("OPENMW_CONFIG", dir)

		got, err := LocateGameConfig("")
		if err != nil {
			t.Fatalf("LocateGameConfig failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}

func TestDefaultPaths(t *testing.T) {
	dir := t.TempDir()
	writeCfg(t, dir)
	root := t.TempDir()
	t.Setenv("LIGHTFIX_ROOT", root)

	paths, err := DefaultPaths(dir)
	if err != nil {
		t.Fatalf("DefaultPaths failed: %v", err)
	}

	if paths.ConfigDir != dir {
		t.Errorf("ConfigDir incorrect: got %s", paths.ConfigDir)
	}
	if paths.LightConfig != filepath.Join(dir, LightConfigName) {
		t.Errorf("LightConfig incorrect: got %s", paths.LightConfig)
	}
	if paths.Log != filepath.Join(dir, LogName) {
		t.Errorf("Log incorrect: got %s", paths.Log)
	}
	if paths.Root != root {
		t.Errorf("expected root %s, got %s", root, paths.Root)
	}
	if paths.State != filepath.Join(root, "state") {
		t.Errorf("State incorrect: got %s", paths.State)
	}

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(paths.State); err != nil || !info.IsDir() {
		t.Errorf("state directory was not created: %v", err)
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

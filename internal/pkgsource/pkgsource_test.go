package pkgsource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/lightfix/internal/fsops"
	"github.com/danieljhkim/lightfix/internal/logger"
	"github.com/danieljhkim/lightfix/internal/records"
)

const ownName = "S3LightFixes.omwaddon"

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

type nameFilter []string

func (f nameFilter) ExcludesPlugin(name string) bool {
	for _, n := range f {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func TestIsFixable(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/data/Morrowind.esm", true},
		{"/data/Tribunal.ESM", true},
		{"/data/lights.esp", true},
		{"/data/mod.omwaddon", true},
		{"/data/game.omwgame", true},
		{"/data/scripts.omwscripts", false},
		{"/data/readme.txt", false},
		{"/data/" + ownName, false},
		{"/data/s3lightfixes.OMWADDON", false},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.want, IsFixable(tt.path, ownName))
		})
	}
}

func TestResolverLaterDirectoryWins(t *testing.T) {
	low, high := t.TempDir(), t.TempDir()
	writeFile(t, low, "a.esp", "lights: []")
	writeFile(t, high, "a.esp", "lights: []")
	writeFile(t, low, "b.esp", "lights: []")

	r := NewResolver(fsops.NewRealFS(), []string{low, high})

	p, ok := r.Resolve("a.esp")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(high, "a.esp"), p)

	p, ok = r.Resolve("b.esp")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(low, "b.esp"), p)

	_, ok = r.Resolve("missing.esp")
	assert.False(t, ok)
	_, ok = r.Resolve("../b.esp")
	assert.False(t, ok)
}

func TestDumpParser(t *testing.T) {
	p := NewDumpParser()

	t.Run("yaml", func(t *testing.T) {
		body := `
header:
  author: someone
lights:
  - id: torch_001
    color: [255, 128, 0, 0]
    radius: 200
    duration: -1
    flags: [FLICKER, FIRE]
cells:
  - id: Balmora, Guild of Mages
    interior: true
    atmosphere:
      ambient: [10, 20, 30]
      sunlight: [0, 0, 0]
      fog: [1, 2, 3]
      fog_density: 0.5
scripts:
  - id: ignored
`
		pkg, err := p.Parse("a.esp", []byte(body))
		require.NoError(t, err)
		require.Len(t, pkg.Lights, 1)
		assert.Equal(t, "torch_001", pkg.Lights[0].ID)
		assert.Equal(t, records.RGB8{255, 128, 0}, pkg.Lights[0].Color)
		assert.Equal(t, records.FlagFlicker|records.FlagFire, pkg.Lights[0].Flags)
		require.Len(t, pkg.Cells, 1)
		assert.True(t, pkg.Cells[0].HasInteriorAtmosphere())
	})

	t.Run("json", func(t *testing.T) {
		body := `{"lights": [{"id": "candle", "color": [1, 2, 3], "radius": 64, "duration": 0, "flags": 0}]}`
		pkg, err := p.Parse("b.esp", []byte(body))
		require.NoError(t, err)
		require.Len(t, pkg.Lights, 1)
		assert.Equal(t, uint32(64), pkg.Lights[0].Radius)
	})

	t.Run("missing light id", func(t *testing.T) {
		_, err := p.Parse("c.esp", []byte("lights:\n  - radius: 10\n    color: [1,2,3]\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is required")
	})

	t.Run("control characters in id", func(t *testing.T) {
		_, err := p.Parse("d.esp", []byte("lights:\n  - id: \"bad\\u0007id\"\n    color: [1,2,3]\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "control characters")
	})

	t.Run("exterior cell without id", func(t *testing.T) {
		_, err := p.Parse("e.esp", []byte("cells:\n  - interior: false\n"))
		assert.NoError(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := p.Parse("f.esp", []byte("lights: {not: [a list"))
		assert.Error(t, err)
	})
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Morrowind.esm", "lights:\n  - id: torch\n    color: [1,2,3]\n    radius: 10\n")
	writeFile(t, dir, "broken.esp", "lights: {not: [a list")
	writeFile(t, dir, "skipme.esp", "lights:\n  - id: x\n    color: [1,2,3]\n")
	writeFile(t, dir, "scripts.omwscripts", "")
	writeFile(t, dir, ownName, "lights: []")
	writeFile(t, dir, "late.esp", "cells:\n  - id: c\n    interior: true\n")

	names := []string{"Morrowind.esm", "broken.esp", "skipme.esp", "scripts.omwscripts", ownName, "missing.esp", "late.esp"}
	fs := fsops.NewRealFS()
	l := NewLoader(fs, NewResolver(fs, []string{dir}), NewDumpParser(), nameFilter{"SkipMe.esp"}, ownName,
		WithLimit(2), WithLogger(logger.Discard()))

	results, err := l.Load(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, results, len(names))

	for i, r := range results {
		assert.Equal(t, names[i], r.Package.Name, "results keep declared order")
	}

	assert.Equal(t, SkipNone, results[0].Skipped)
	assert.Len(t, results[0].Package.Lights, 1)
	assert.Positive(t, results[0].Package.Size)

	assert.Equal(t, SkipParseFailed, results[1].Skipped)
	assert.Error(t, results[1].Err)
	assert.Zero(t, results[1].Package.RecordCount())

	assert.Equal(t, SkipExcluded, results[2].Skipped)
	assert.Equal(t, SkipNotFixable, results[3].Skipped)
	assert.Equal(t, SkipNotFixable, results[4].Skipped)
	assert.Equal(t, SkipNotFound, results[5].Skipped)
	assert.Equal(t, SkipNone, results[6].Skipped)

	pkgs := Packages(results)
	require.Len(t, pkgs, 2)
	assert.Equal(t, "Morrowind.esm", pkgs[0].Name)
	assert.Equal(t, "late.esp", pkgs[1].Name)
}

func TestLoaderCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.esp", "lights: []")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fs := fsops.NewRealFS()
	l := NewLoader(fs, NewResolver(fs, []string{dir}), NewDumpParser(), nil, ownName, WithLogger(logger.Discard()))
	_, err := l.Load(ctx, []string{"a.esp"})
	assert.ErrorIs(t, err, context.Canceled)
}

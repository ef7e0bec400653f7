package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/lightfix/internal/fsops"
	"github.com/danieljhkim/lightfix/internal/override"
)

func ptr[T any](v T) *T { return &v }

func TestParseDocumentFillsDefaults(t *testing.T) {
	doc, err := ParseDocument([]byte("standard_radius: 1.5\ndisable_pulse: true\n"))
	require.NoError(t, err)

	assert.Equal(t, 1.5, doc.StandardRadius)
	assert.True(t, doc.DisablePulse)
	assert.True(t, doc.DisableFlickering)
	assert.Equal(t, DefaultColoredRadius, doc.ColoredRadius)
	assert.Equal(t, DefaultDurationMult, doc.DurationMult)
	assert.Equal(t, DefaultExcludedPlugins(), doc.ExcludedPlugins)
}

func TestParseDocumentEmpty(t *testing.T) {
	doc, err := ParseDocument(nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *doc)
}

func TestLoadDocument(t *testing.T) {
	fs := fsops.NewRealFS()
	dir := t.TempDir()

	t.Run("absent", func(t *testing.T) {
		doc, exists, err := LoadDocument(fs, filepath.Join(dir, "missing.yaml"))
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Nil(t, doc)
	})

	t.Run("unparseable", func(t *testing.T) {
		p := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(p, []byte("standard_radius: [oops\n"), 0644))

		_, exists, err := LoadDocument(fs, p)
		assert.True(t, exists)
		assert.True(t, errors.Is(err, ErrParse), "got %v", err)
	})

	t.Run("unknown keys are reported", func(t *testing.T) {
		p := filepath.Join(dir, "newer.yaml")
		body := "standard_raduis: 2\nstandard_radius: 1.6\nfuture_option: true\n"
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))

		doc, exists, err := LoadDocument(fs, p)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, 1.6, doc.StandardRadius)
		assert.Equal(t, []string{"standard_raduis", "future_option"}, doc.UnknownKeys)

		out, err := doc.Marshal()
		require.NoError(t, err)
		assert.NotContains(t, string(out), "future_option")
	})

	t.Run("override conflict", func(t *testing.T) {
		p := filepath.Join(dir, "conflict.yaml")
		body := "light_overrides:\n  torch.*:\n    hue: 10\n    hue_mult: 2\n"
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))

		_, _, err := LoadDocument(fs, p)
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	fs := fsops.NewRealFS()
	p := filepath.Join(t.TempDir(), "nested", LightConfigName)

	doc := Defaults()
	doc.ExcludedIDs = []string{"^bad_.*"}
	_, lo, err := override.ParseLightOverride("torch_001=radius_mult=2.0,flag=NONE")
	require.NoError(t, err)
	doc.LightOverrides.Append("torch_001", lo)
	_, ao, err := override.ParseAmbientOverride("balmora=fog_density=0.5")
	require.NoError(t, err)
	doc.AmbientOverrides.Append("balmora", ao)
	doc.OutputDir = "/tmp/out"

	require.NoError(t, SaveDocument(fs, p, &doc))

	loaded, exists, err := LoadDocument(fs, p)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, doc.ExcludedIDs, loaded.ExcludedIDs)
	assert.Equal(t, doc.LightOverrides.Entries(), loaded.LightOverrides.Entries())
	assert.Equal(t, doc.AmbientOverrides.Entries(), loaded.AmbientOverrides.Entries())
	assert.Equal(t, "/tmp/out", loaded.OutputDir)
	assert.Equal(t, doc.StandardRadius, loaded.StandardRadius)
}

func TestMergeOnlyTouchesSuppliedFields(t *testing.T) {
	base := Defaults()
	base.StandardRadius = 1.7
	base.ExcludedIDs = []string{"a"}

	out := Merge(base, Patch{
		ColoredHue:   ptr(0.5),
		DisablePulse: ptr(true),
		ExcludedIDs:  []string{"b"},
	})

	assert.Equal(t, 1.7, out.StandardRadius, "absent field keeps base value")
	assert.Equal(t, 0.5, out.ColoredHue)
	assert.True(t, out.DisablePulse)
	assert.Equal(t, []string{"a", "b"}, out.ExcludedIDs, "lists are appended")
	assert.Equal(t, []string{"a"}, base.ExcludedIDs, "base is not modified")
}

func TestMergeCanClearBoolean(t *testing.T) {
	base := Defaults()
	out := Merge(base, Patch{DisableFlickering: ptr(false)})
	assert.False(t, out.DisableFlickering)
}

func TestResolve(t *testing.T) {
	persisted := Defaults()
	persisted.StandardRadius = 1.2
	persisted.DisableInteriorSun = false
	persisted.LightOverrides.Append("a", override.LightOverride{Radius: override.MultChannel(2)})

	var patch Patch
	patch.LightOverrides.Append("b", override.LightOverride{Radius: override.FixedChannel(5)})

	tests := []struct {
		name        string
		in          ResolveInput
		wantRadius  float64
		wantSunOff  bool
		wantPersist bool
	}{
		{
			name:        "persisted only",
			in:          ResolveInput{Defaults: Defaults(), Persisted: &persisted},
			wantRadius:  1.2,
			wantPersist: false,
		},
		{
			name:        "no persisted document",
			in:          ResolveInput{Defaults: Defaults()},
			wantRadius:  DefaultStandardRadius,
			wantPersist: true,
		},
		{
			name:        "explicit radius",
			in:          ResolveInput{Defaults: Defaults(), Persisted: &persisted, Patch: Patch{StandardRadius: ptr(3.0)}},
			wantRadius:  3.0,
			wantPersist: false,
		},
		{
			name: "classic beats explicit",
			in: ResolveInput{
				Defaults:  Defaults(),
				Persisted: &persisted,
				Patch:     Patch{StandardRadius: ptr(3.0), DisableInteriorSun: ptr(false)},
				Classic:   true,
			},
			wantRadius: ClassicStandardRadius,
			wantSunOff: true,
		},
		{
			name:        "force save",
			in:          ResolveInput{Defaults: Defaults(), Persisted: &persisted, ForceSave: true},
			wantRadius:  1.2,
			wantPersist: true,
		},
		{
			name:        "save_config from patch",
			in:          ResolveInput{Defaults: Defaults(), Persisted: &persisted, Patch: Patch{SaveConfig: ptr(true)}},
			wantRadius:  1.2,
			wantPersist: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.in)
			assert.Equal(t, tt.wantRadius, res.Effective.StandardRadius)
			assert.Equal(t, tt.wantSunOff, res.Effective.DisableInteriorSun)
			assert.Equal(t, tt.wantPersist, res.ShouldPersist)
		})
	}

	t.Run("override tables are appended", func(t *testing.T) {
		res := Resolve(ResolveInput{Defaults: Defaults(), Persisted: &persisted, Patch: patch})
		entries := res.Effective.LightOverrides.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].Pattern)
		assert.Equal(t, "b", entries[1].Pattern)
		assert.Equal(t, 1, persisted.LightOverrides.Len())
	})
}

func TestResolveEnvFlags(t *testing.T) {
	persisted := Defaults()
	res := Resolve(ResolveInput{
		Defaults:  Defaults(),
		Persisted: &persisted,
		Env:       EnvFlags{NoNotifications: true},
	})
	assert.True(t, res.Effective.NoNotifications)
	assert.False(t, res.Effective.Debug)
}

func TestResolvePersistableExcludesRunOnlyLayers(t *testing.T) {
	persisted := Defaults()
	persisted.StandardRadius = 1.4
	persisted.DisableInteriorSun = false

	res := Resolve(ResolveInput{
		Defaults:  Defaults(),
		Persisted: &persisted,
		Env:       EnvFlags{Debug: true, NoNotifications: true},
		Patch:     Patch{ColoredRadius: ptr(1.9)},
		Classic:   true,
	})

	assert.Equal(t, ClassicStandardRadius, res.Effective.StandardRadius)
	assert.True(t, res.Effective.DisableInteriorSun)
	assert.True(t, res.Effective.Debug)

	assert.Equal(t, 1.4, res.Persistable.StandardRadius)
	assert.False(t, res.Persistable.DisableInteriorSun)
	assert.False(t, res.Persistable.Debug)
	assert.False(t, res.Persistable.NoNotifications)
	assert.Equal(t, 1.9, res.Persistable.ColoredRadius, "explicit patch is kept")
	assert.Equal(t, 1.4, persisted.StandardRadius, "persisted input is not modified")
}

func TestEnvFlagsFrom(t *testing.T) {
	env := map[string]string{EnvDebug: ""}
	flags := EnvFlagsFrom(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.True(t, flags.Debug, "empty value still counts as set")
	assert.False(t, flags.NoNotifications)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")))

	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte("LIGHTFIX_TEST_DOTENV=1\n"), 0644))
	t.Setenv("LIGHTFIX_TEST_DOTENV", "preset")
	require.NoError(t, LoadDotEnv(p))
	assert.Equal(t, "preset", os.Getenv("LIGHTFIX_TEST_DOTENV"))
}

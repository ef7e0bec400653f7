package override

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/lightfix/internal/hsv"
	"github.com/danieljhkim/lightfix/internal/records"
)

func TestChannelResolve(t *testing.T) {
	tests := []struct {
		name string
		ch   Channel
		want float64
	}{
		{"unset uses global", Channel{}, 20},
		{"fixed replaces", FixedChannel(7), 7},
		{"multiplier scales", MultChannel(3), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ch.Resolve(10, 2))
		})
	}
}

func TestParseLightSpec(t *testing.T) {
	o, err := ParseLightSpec("radius=255,hue=400,saturation_mult=0.5,flag=flickerslow")
	require.NoError(t, err)

	assert.Equal(t, FixedChannel(255), o.Radius)
	assert.Equal(t, FixedChannel(360), o.Hue, "fixed hue is clamped")
	assert.Equal(t, MultChannel(0.5), o.Saturation)
	assert.False(t, o.Value.IsSet())
	assert.False(t, o.Duration.IsSet())
	require.NotNil(t, o.Flag)
	assert.Equal(t, FlagFlickerSlow, *o.Flag)
	assert.Equal(t, records.FlagFlickerSlow, o.Flag.Flags())
}

func TestParseLightSpecClampsSaturationAndValue(t *testing.T) {
	o, err := ParseLightSpec("saturation=1.5,value=-2")
	require.NoError(t, err)
	assert.Equal(t, FixedChannel(1), o.Saturation)
	assert.Equal(t, FixedChannel(0), o.Value)
}

func TestParseLightSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"hue exclusive", "hue=10,hue_mult=2", ErrExclusiveChannel},
		{"radius exclusive", "radius_mult=2,radius=10", ErrExclusiveChannel},
		{"duration exclusive", "duration=1,duration_mult=2", ErrExclusiveChannel},
		{"unknown key", "brightness=2", ErrUnknownField},
		{"bad number", "value=abc", ErrBadNumber},
		{"negative radius", "radius=-1", ErrBadNumber},
		{"missing equals", "radius", ErrBadPair},
		{"unknown flag", "flag=strobe", ErrUnknownFlag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLightSpec(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseLightOverride(t *testing.T) {
	pattern, o, err := ParseLightOverride("torch_001=radius_mult=2.0,duration_mult=5.0")
	require.NoError(t, err)
	assert.Equal(t, "torch_001", pattern)
	assert.Equal(t, MultChannel(2), o.Radius)
	assert.Equal(t, MultChannel(5), o.Duration)

	_, _, err = ParseLightOverride("=radius=2")
	assert.ErrorIs(t, err, ErrBadPair)
}

func TestLightOverrideYAML(t *testing.T) {
	in := `
hue: 120
saturation_mult: 0.75
radius: 300
flag: PULSE
`
	var o LightOverride
	require.NoError(t, yaml.Unmarshal([]byte(in), &o))
	assert.Equal(t, FixedChannel(120), o.Hue)
	assert.Equal(t, MultChannel(0.75), o.Saturation)
	assert.Equal(t, FixedChannel(300), o.Radius)
	require.NotNil(t, o.Flag)
	assert.Equal(t, FlagPulse, *o.Flag)

	out, err := yaml.Marshal(o)
	require.NoError(t, err)

	var back LightOverride
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, o, back)
}

func TestLightOverrideYAMLRejectsConflicts(t *testing.T) {
	var o LightOverride
	err := yaml.Unmarshal([]byte("value: 0.5\nvalue_mult: 2\n"), &o)
	assert.ErrorIs(t, err, ErrExclusiveChannel)

	err = yaml.Unmarshal([]byte("radius: 10\nradius_mult: 2\n"), &o)
	assert.ErrorIs(t, err, ErrExclusiveChannel)

	err = yaml.Unmarshal([]byte("colour: red\n"), &o)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestParseAmbientOverride(t *testing.T) {
	pattern, o, err := ParseAmbientOverride("vivec, .*=fog_density=0.5")
	require.NoError(t, err)
	assert.Equal(t, "vivec, .*", pattern)
	assert.Nil(t, o.Ambient)
	assert.Nil(t, o.Sunlight)
	assert.Nil(t, o.Fog)
	require.NotNil(t, o.FogDensity)
	assert.Equal(t, 0.5, *o.FogDensity)

	_, o, err = ParseAmbientOverride("balmora=ambient=30:0.5:2,sunlight=0:0:0")
	require.NoError(t, err)
	require.NotNil(t, o.Ambient)
	assert.Equal(t, hsv.HSV{H: 30, S: 0.5, V: 1}, *o.Ambient)
	require.NotNil(t, o.Sunlight)
	assert.Equal(t, hsv.HSV{}, *o.Sunlight)
}

func TestParseAmbientOverrideErrors(t *testing.T) {
	_, _, err := ParseAmbientOverride("x=fog=1:2")
	assert.ErrorIs(t, err, ErrBadColor)

	_, _, err = ParseAmbientOverride("x=haze=1:2:3")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, _, err = ParseAmbientOverride("x=fog_density=thick")
	assert.ErrorIs(t, err, ErrBadNumber)
}

func TestAmbientOverrideYAML(t *testing.T) {
	in := `
ambient: "200:0.4:0.3"
fog:
  hue: 10
  saturation: 0.2
  value: 0.1
fog_density: 0.25
`
	var o AmbientOverride
	require.NoError(t, yaml.Unmarshal([]byte(in), &o))
	require.NotNil(t, o.Ambient)
	assert.Equal(t, hsv.HSV{H: 200, S: 0.4, V: 0.3}, *o.Ambient)
	require.NotNil(t, o.Fog)
	assert.Equal(t, hsv.HSV{H: 10, S: 0.2, V: 0.1}, *o.Fog)
	assert.Nil(t, o.Sunlight)
	require.NotNil(t, o.FogDensity)
	assert.Equal(t, 0.25, *o.FogDensity)

	out, err := yaml.Marshal(o)
	require.NoError(t, err)
	var back AmbientOverride
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, o, back)
}

func TestTableKeepsOrder(t *testing.T) {
	in := `
zeta: {radius: 1}
alpha: {radius: 2}
mid: {radius: 3}
`
	var tbl Table[LightOverride]
	require.NoError(t, yaml.Unmarshal([]byte(in), &tbl))

	var patterns []string
	for _, e := range tbl.Entries() {
		patterns = append(patterns, e.Pattern)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, patterns)

	out, err := yaml.Marshal(tbl)
	require.NoError(t, err)
	var back Table[LightOverride]
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, tbl.Entries(), back.Entries())
}

func TestTableSetAndTake(t *testing.T) {
	var tbl Table[int]
	tbl.Set("a", 1)
	tbl.Set("b", 2)
	tbl.Set("a", 3)
	tbl.Append("b", 4)

	assert.Equal(t, []Entry[int]{{"a", 3}, {"b", 2}, {"b", 4}}, tbl.Entries())

	clone := tbl.Clone()
	taken := tbl.Take()
	assert.Len(t, taken, 3)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 3, clone.Len())
}

func TestTableNull(t *testing.T) {
	var doc struct {
		Lights Table[LightOverride] `yaml:"light_overrides"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("light_overrides:\n"), &doc))
	assert.Equal(t, 0, doc.Lights.Len())
}

func TestTableExtendReplacesInPlace(t *testing.T) {
	base := NewTable(Entry[int]{"torch", 1}, Entry[int]{"candle", 2})
	base.Extend(NewTable(Entry[int]{"lamp", 3}, Entry[int]{"torch", 4}))

	assert.Equal(t, []Entry[int]{{"torch", 4}, {"candle", 2}, {"lamp", 3}}, base.Entries())
}

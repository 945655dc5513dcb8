package host

import (
	"testing"

	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/core/color"
	"github.com/npillmayer/keyset/core/dimen"
	"github.com/npillmayer/keyset/core/layout"
	"github.com/npillmayer/keyset/core/profile"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	c, err := ToColor(map[string]any{"r": 1, "g": 0.5, "b": 0})
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 0.5, 0}, FromColor(c))
	c, err = ToColor([]float64{0, 0, 1, 0.3})
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0, 0, 1}, FromColor(c))
	c, err = ToColor([3]int{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, color.White, c)
	c, err = ToColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 0, 0}, FromColor(c))
	c, err = ToColor("white")
	require.NoError(t, err)
	assert.Equal(t, color.White, c)
}

func TestToColorErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	_, err := ToColor(map[string]any{"r": 1.5, "g": 0, "b": 0})
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.ERANGE))
	assert.Equal(t, "invalid value for 'r' for Color(): '1.5'", err.Error())
	_, err = ToColor([]any{0, 0, -0.25})
	assert.True(t, core.IsClass(err, core.ERANGE))
	_, err = ToColor(map[string]any{"r": 1})
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = ToColor([]any{0, 0})
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = ToColor([]any{0, "x", 0})
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = ToColor([]any{true, 0, 0})
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = ToColor("no-such-color")
	assert.True(t, core.IsClass(err, core.ERANGE))
	_, err = ToColor(42)
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.ETYPE))
	assert.Equal(t, colorTypeMessage, err.Error())
}

func TestToHomingType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	for alias, want := range map[string]profile.HomingType{
		"scoop": profile.Scoop, "Deep-Dish": profile.Scoop, "DISH": profile.Scoop,
		"bar": profile.Bar, "line": profile.Bar,
		"nub": profile.Bump, "Dot": profile.Bump,
	} {
		h, err := ToHomingType(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, h, alias)
	}
	_, err := ToHomingType("pimple")
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.ERANGE))
	assert.Equal(t, "invalid homing type str: 'pimple'", err.Error())
	_, err = ToHomingType(3)
	assert.True(t, core.IsClass(err, core.ETYPE))
	assert.Equal(t, "bump", FromHomingType(profile.Bump))
}

func TestToKeyShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	s, err := ToKeyShape(NormalKey{Width: 2.25, Height: 1})
	require.NoError(t, err)
	assert.Equal(t, layout.Normal(2.25, 1), s)
	assert.Equal(t, NormalKey{Width: 2.25, Height: 1}, FromKeyShape(s))
	s, err = ToKeyShape(&SpaceKey{Width: 6.25, Height: 1})
	require.NoError(t, err)
	assert.Equal(t, layout.SpaceKey, s.Kind)
	// untagged mappings with a size are invisible keys
	s, err = ToKeyShape(map[string]any{"width": 1.5, "height": 1})
	require.NoError(t, err)
	assert.Equal(t, layout.None(1.5, 1), s)
	s, err = ToKeyShape(map[string]any{"shape": "normal", "width": 1.5, "height": 1})
	require.NoError(t, err)
	assert.Equal(t, layout.Normal(1.5, 1), s)
	s, err = ToKeyShape(map[string]any{"type": "bar"})
	require.NoError(t, err)
	require.NotNil(t, s.Homing)
	assert.Equal(t, profile.Bar, *s.Homing)
	s, err = ToKeyShape("homing")
	require.NoError(t, err)
	assert.Equal(t, layout.HomingKey, s.Kind)
	assert.Nil(t, s.Homing)
	s, err = ToKeyShape("iso-vertical")
	require.NoError(t, err)
	assert.Equal(t, layout.IsoVertical(), s)
	s, err = ToKeyShape(SteppedCaps{})
	require.NoError(t, err)
	assert.Equal(t, SteppedCaps{}, FromKeyShape(s))
	h, name := profile.Bar, "bar"
	assert.Equal(t, HomingKey{Type: &name}, FromKeyShape(layout.Homing(&h)))
}

func TestToKeyShapeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	_, err := ToKeyShape(42)
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.ETYPE))
	assert.Equal(t, "'int' can not be converted to KeyShape", err.Error())
	_, err = ToKeyShape(map[string]any{"width": 1, "height": 1, "depth": 2})
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = ToKeyShape("trapezoid")
	assert.True(t, core.IsClass(err, core.ETYPE))
	// a homing key with a bad marker fails with the marker's error
	bad := "pimple"
	_, err = ToKeyShape(HomingKey{Type: &bad})
	assert.True(t, core.IsClass(err, core.ERANGE))
}

func TestToLegend(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	l, err := ToLegend(nil)
	require.NoError(t, err)
	assert.Nil(t, l)
	l, err = ToLegend(map[string]any{"text": "Shift<br>Lock"})
	require.NoError(t, err)
	assert.Equal(t, layout.DefaultLegendSize, l.Size)
	assert.Equal(t, color.DefaultLegend, l.Color)
	assert.Equal(t, []string{"Shift", "Lock"}, l.Text.Lines())
	l, err = ToLegend(Legend{Text: "A", Size: 5, Color: "#ffffff"})
	require.NoError(t, err)
	assert.Equal(t, 5, l.Size)
	assert.Equal(t, color.White, l.Color)
	back := FromLegend(l)
	assert.Equal(t, "A", back.Text)
	assert.Equal(t, [3]float64{1, 1, 1}, back.Color)
	_, err = ToLegend(map[string]any{"text": "A", "font": "Comic"})
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = ToLegend(Legend{Text: "A", Size: -1})
	assert.True(t, core.IsClass(err, core.ERANGE))
	_, err = ToLegend(map[string]any{"text": "A", "size": 3.7})
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.ETYPE))
	l, err = ToLegend(map[string]any{"text": "A", "size": 4.0})
	require.NoError(t, err)
	assert.Equal(t, 4, l.Size)
	_, err = ToLegend("A")
	assert.True(t, core.IsClass(err, core.ETYPE))
}

func TestToKey(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	legends := make([]any, 12)
	legends[0] = map[string]any{"text": "Esc"}
	legends[11] = 42 // beyond the last slot, dropped unconverted
	k, err := ToKey(map[string]any{
		"x": 1, "y": 2.5,
		"shape":   map[string]any{"shape": "normal", "width": 1.25, "height": 1},
		"color":   []any{0.2, 0.2, 0.2},
		"legends": legends,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, k.X)
	assert.Equal(t, 2.5, k.Y)
	assert.Equal(t, layout.Normal(1.25, 1), k.Shape)
	require.NotNil(t, k.Legends[0])
	assert.Equal(t, "Esc", k.Legends[0].Text.String())
	for i := 1; i < layout.LegendCount; i++ {
		assert.Nil(t, k.Legends[i])
	}
	//
	k, err = ToKey(Key{X: 3, Legends: []any{nil, Legend{Text: "B"}}})
	require.NoError(t, err)
	assert.Equal(t, layout.Normal(1, 1), k.Shape)
	assert.Equal(t, color.DefaultKey, k.Color)
	assert.NotNil(t, k.Legends[1])
	hk := FromKey(k)
	assert.Len(t, hk.Legends, layout.LegendCount)
	assert.Nil(t, hk.Legends[0])
	assert.Equal(t, NormalKey{Width: 1, Height: 1}, hk.Shape)
	//
	_, err = ToKey(Key{Legends: []any{"not a legend"}})
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = ToKey(map[string]any{"x": "left"})
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = ToKey(7)
	assert.True(t, core.IsClass(err, core.ETYPE))
}

func TestToKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	keys, err := ToKeys([]any{Key{X: 0}, map[string]any{"x": 1}, layout.NewKey()})
	require.NoError(t, err)
	require.Len(t, keys, 3)
	assert.Equal(t, 1.0, keys[1].X)
	_, err = ToKeys(Key{})
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = ToKeys([]any{Key{}, 5})
	assert.True(t, core.IsClass(err, core.ETYPE))
}

func TestToProfileType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	pt, err := ToProfileType(Cylindrical{Depth: 0.5})
	require.NoError(t, err)
	assert.Equal(t, profile.Cylindrical, pt.Kind)
	assert.InDelta(t, 0.5, pt.Depth.Millimeters(), 1e-9)
	pt, err = ToProfileType(map[string]any{"depth": 1.0})
	require.NoError(t, err)
	assert.Equal(t, profile.Cylindrical, pt.Kind)
	pt, err = ToProfileType(map[string]any{"type": "spherical", "depth": 0.8})
	require.NoError(t, err)
	assert.Equal(t, profile.Spherical, pt.Kind)
	pt, err = ToProfileType("flat")
	require.NoError(t, err)
	assert.Equal(t, profile.Flat, pt.Kind)
	assert.Equal(t, dimen.Zero, pt.Depth)
	assert.Equal(t, Flat{}, FromProfileType(pt))
	sph := FromProfileType(profile.NewProfileType(profile.Spherical, dimen.FromMillimeters(0.8)))
	require.IsType(t, Spherical{}, sph)
	assert.InDelta(t, 0.8, sph.(Spherical).Depth, 1e-9)
	_, err = ToProfileType("round")
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.ETYPE))
	assert.Equal(t, "'string' can not be converted to ProfileType", err.Error())
}

func TestToProfileFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	f, err := ToProfileFormat(nil)
	require.NoError(t, err)
	assert.Equal(t, TOML, f)
	f, err = ToProfileFormat("json")
	require.NoError(t, err)
	assert.Equal(t, JSON, f)
	_, err = ToProfileFormat("yaml")
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.ERANGE))
	assert.Equal(t, "'yaml' is not a valid format, expected 'toml' or 'json'.", err.Error())
	_, err = ToProfileFormat(1)
	assert.True(t, core.IsClass(err, core.ETYPE))
}

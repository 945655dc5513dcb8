package layout

import (
	"testing"

	"github.com/npillmayer/keyset/core/color"
	"github.com/npillmayer/keyset/core/profile"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kleDoc = `[
  {"name": "test"},
  ["Q", {"a": 7}, "W", {"w": 2, "p": "space"}, ""],
  [{"n": true}, "J"],
  [{"l": true, "w": 1.25, "w2": 1.75}, "Caps"],
  [{"x": 0.25, "w": 1.25, "h": 2, "x2": -0.25, "w2": 1.5, "h2": 1}, "Enter"],
  [{"a": 4, "c": "#ff0000", "t": "#00ff00\n#0000ff", "f": 5, "f2": 2}, "A\nB", {"p": "DSA bar", "d": true}, "F"]
]`

func TestFromKLE(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.layout")
	defer teardown()
	//
	keys, err := FromKLE([]byte(kleDoc))
	require.NoError(t, err)
	require.Len(t, keys, 8)
	//
	q := keys[0]
	assert.Equal(t, 0.0, q.X)
	assert.Equal(t, Normal(1, 1), q.Shape)
	assert.Equal(t, color.DefaultKey, q.Color)
	require.NotNil(t, q.Legends[0])
	assert.Equal(t, "Q", q.Legends[0].Text.String())
	assert.Equal(t, DefaultLegendSize, q.Legends[0].Size)
	//
	w := keys[1]
	assert.Equal(t, 1.0, w.X)
	assert.Nil(t, w.Legends[0])
	require.NotNil(t, w.Legends[4])
	assert.Equal(t, "W", w.Legends[4].Text.String())
	//
	space := keys[2]
	assert.Equal(t, SpaceKey, space.Shape.Kind)
	assert.Equal(t, 2.0, space.Shape.Width)
	for _, l := range space.Legends {
		assert.Nil(t, l)
	}
	//
	j := keys[3]
	assert.Equal(t, 1.0, j.Y)
	assert.Equal(t, HomingKey, j.Shape.Kind)
	assert.Nil(t, j.Shape.Homing)
	//
	assert.Equal(t, SteppedCapsKey, keys[4].Shape.Kind)
	enter := keys[5]
	assert.Equal(t, IsoVerticalKey, enter.Shape.Kind)
	assert.Equal(t, 0.0, enter.X)
	assert.Equal(t, 3.0, enter.Y)
	//
	ab := keys[6]
	assert.Equal(t, "#ff0000", ab.Color.Hex())
	require.NotNil(t, ab.Legends[0])
	require.NotNil(t, ab.Legends[6])
	assert.Equal(t, "A", ab.Legends[0].Text.String())
	assert.Equal(t, 5, ab.Legends[0].Size)
	assert.Equal(t, "#00ff00", ab.Legends[0].Color.Hex())
	assert.Equal(t, "B", ab.Legends[6].Text.String())
	assert.Equal(t, 2, ab.Legends[6].Size)
	assert.Equal(t, "#0000ff", ab.Legends[6].Color.Hex())
	//
	f := keys[7]
	assert.Equal(t, 1.0, f.X)
	require.NotNil(t, f.Shape.Homing)
	assert.Equal(t, profile.Bar, *f.Shape.Homing)
	assert.Equal(t, "#ff0000", f.Color.Hex())
}

func TestKLEProfileTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.layout")
	defer teardown()
	//
	keys, err := FromKLE([]byte(`[[{"p": "DSA bar"}, "F", {"p": "SA scoop"}, "J", {"p": "", "d": true}, ""]]`))
	require.NoError(t, err)
	require.Len(t, keys, 3)
	require.NotNil(t, keys[0].Shape.Homing)
	assert.Equal(t, profile.Bar, *keys[0].Shape.Homing)
	require.NotNil(t, keys[1].Shape.Homing)
	assert.Equal(t, profile.Scoop, *keys[1].Shape.Homing)
	assert.Equal(t, NoneKey, keys[2].Shape.Kind)
	assert.Equal(t, 2.0, keys[2].X)
	// a carried space tag does not override homing or decal flags
	keys, err = FromKLE([]byte(`[[{"p": "space", "w": 6.25}, "", {"w": 1, "n": true}, "J", {"d": true}, "x", {"d": false}, ""]]`))
	require.NoError(t, err)
	require.Len(t, keys, 4)
	assert.Equal(t, SpaceKey, keys[0].Shape.Kind)
	assert.Equal(t, HomingKey, keys[1].Shape.Kind)
	assert.Equal(t, NoneKey, keys[2].Shape.Kind)
	assert.Equal(t, SpaceKey, keys[3].Shape.Kind)
}

func TestKLEErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.layout")
	defer teardown()
	//
	_, err := FromKLE([]byte(`not json`))
	assert.Error(t, err)
	_, err = FromKLE([]byte(`[[42]]`))
	assert.Error(t, err)
	_, err = FromKLE([]byte(`[[{"c": "nocolor"}, "A"]]`))
	assert.Error(t, err)
	keys, err := FromKLE([]byte(`[]`))
	assert.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRealign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.layout")
	defer teardown()
	//
	var in [kleSlots]int
	for i := range in {
		in[i] = i
	}
	out := realign(in, 0)
	// KLE position 1 (bottom left) goes to face slot 6
	assert.Equal(t, 1, out[6])
	assert.Equal(t, 0, out[0])
	assert.Equal(t, out, realign(in, 99)) // unknown alignment falls back to 0
}

func TestParseText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.layout")
	defer teardown()
	//
	txt := ParseText("A<br>B&amp;C")
	assert.Equal(t, []string{"A", "B&C"}, txt.Lines())
	assert.Equal(t, "A<br>B&amp;C", txt.Markup())
	assert.Equal(t, "A\nB&C", txt.String())
	assert.Equal(t, []string{"Shift"}, ParseText("<b>Shift</b>").Lines())
	assert.Equal(t, []string{"1", "!"}, ParseText("1\n!").Lines())
	assert.Equal(t, "\u00e9", ParseText("e\u0301").String())
	assert.True(t, ParseText("").IsEmpty())
}

func TestShapeSizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.layout")
	defer teardown()
	//
	w, h := IsoHorizontal().Size()
	assert.Equal(t, 1.5, w)
	assert.Equal(t, 2.0, h)
	w, h = Normal(6.25, 1).Size()
	assert.Equal(t, 6.25, w)
	assert.Equal(t, 1.0, h)
	k, ok := ParseShapeKind("stepped-caps")
	assert.True(t, ok)
	assert.Equal(t, SteppedCapsKey, k)
	assert.Equal(t, "normal(2.25x1)", Normal(2.25, 1).String())
}

package drawing

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/core/color"
	"github.com/npillmayer/keyset/core/dimen"
	"github.com/npillmayer/keyset/core/layout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyWithLegend(x, y float64, text string) layout.Key {
	k := layout.NewKey()
	k.X, k.Y = x, y
	k.Legends[4] = layout.NewLegend(text, layout.DefaultLegendSize, color.Black)
	return k
}

func TestDrawSimpleKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.drawing")
	defer teardown()
	//
	keys := []layout.Key{keyWithLegend(0, 0, "A"), keyWithLegend(1, 0, "B")}
	result, err := NewStencil().Draw(keys)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	d := result.Value
	assert.Equal(t, dimen.FromUnits(2), d.Bounds.Width())
	assert.Equal(t, dimen.U, d.Bounds.Height())
	// bottom, top and legend per key
	assert.Len(t, d.Items, 6)
}

func TestDrawShapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.drawing")
	defer teardown()
	//
	shapes := []layout.Shape{
		layout.None(1, 1), layout.Space(6.25, 1), layout.Homing(nil),
		layout.SteppedCaps(), layout.IsoVertical(), layout.IsoHorizontal(),
	}
	var keys []layout.Key
	for i, s := range shapes {
		k := keyWithLegend(0, float64(2*i), "X")
		k.Shape = s
		keys = append(keys, k)
	}
	result, err := NewStencil().Draw(keys)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	// none: legend only; space: 3; homing: 4; stepped: 4; iso: 3 each
	assert.Len(t, result.Value.Items, 1+3+4+4+3+3)
	assert.Equal(t, dimen.FromUnits(6.25), result.Value.Bounds.Width())
}

func TestDrawHardErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.drawing")
	defer teardown()
	//
	bad := []layout.Key{layout.NewKey(), layout.NewKey(), layout.NewKey()}
	bad[0].X = math.NaN()
	bad[1].Shape = layout.Normal(0, 1)
	bad[2].Shape = layout.Space(math.Inf(1), 1)
	for i, k := range bad {
		_, err := NewStencil().Draw([]layout.Key{k})
		assert.True(t, errors.Is(err, ErrInvalidGeometry), "key %d", i)
	}
	st := NewStencil()
	st.Scale = 0
	_, err := st.Draw(nil)
	assert.Error(t, err)
}

func TestDrawWarnings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.drawing")
	defer teardown()
	//
	keys := []layout.Key{
		keyWithLegend(-1, 0, "A"),
		keyWithLegend(0, 0, "WWWWWWWWWWWW"),
		keyWithLegend(1, 0, "\U0001F600"),
	}
	keys[0].Legends[0] = layout.NewLegend("x", 12, color.Black)
	result, err := NewStencil().Draw(keys)
	require.NoError(t, err)
	var msgs []string
	for _, w := range result.Warnings {
		msgs = append(msgs, w.Error())
	}
	all := strings.Join(msgs, "\n")
	assert.Contains(t, all, "key 0: key at negative position")
	assert.Contains(t, all, "key 0: unknown legend size 12")
	assert.Contains(t, all, "key 1: legend \"WWWWWWWWWWWW\" squished")
	assert.Contains(t, all, "key 2: no glyph for")
}

func TestShowKeysAndMargin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.drawing")
	defer teardown()
	//
	st := NewStencil()
	st.ShowKeys = false
	st.ShowMargin = true
	result, err := st.Draw([]layout.Key{keyWithLegend(0, 0, "A")})
	require.NoError(t, err)
	require.Len(t, result.Value.Items, 2)
	assert.Nil(t, result.Value.Items[0].Fill)
	assert.Equal(t, color.Color{R: 1}, *result.Value.Items[0].Stroke)
}

func TestSVGExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.drawing")
	defer teardown()
	//
	result, err := NewStencil().Draw([]layout.Key{keyWithLegend(0, 0, "A")})
	require.NoError(t, err)
	svg := result.Value.ToSVG()
	assert.True(t, strings.HasPrefix(svg, "<svg "))
	assert.Contains(t, svg, `width="19.05mm"`)
	assert.Contains(t, svg, `viewBox="0 0 1000 1000"`)
	assert.Contains(t, svg, `fill="#cccccc"`)
	assert.Equal(t, svg, result.Value.ToSVG())
}

func TestPNGExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.drawing")
	defer teardown()
	//
	result, err := NewStencil().Draw([]layout.Key{keyWithLegend(0, 0, "A")})
	require.NoError(t, err)
	png, err := result.Value.ToPNG(96)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
	_, err = result.Value.ToPNG(0)
	assert.True(t, core.IsClass(err, core.ERANGE))
}

func TestPDFExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.drawing")
	defer teardown()
	//
	result, err := NewStencil().Draw([]layout.Key{keyWithLegend(0, 0, "A")})
	require.NoError(t, err)
	doc, err := result.Value.ToPDF()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-1.")))
	again, _ := result.Value.ToPDF()
	assert.Equal(t, doc, again)
	ai, err := result.Value.ToAI()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(ai, []byte("%PDF-1.")))
	assert.NotEqual(t, doc[:8], ai[:8])
}

func TestPathGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.drawing")
	defer teardown()
	//
	var p Path
	roundedRect(&p, dimen.Rect{BotR: dimen.Point{X: 100, Y: 50}}, 10)
	require.Len(t, p, 9)
	assert.Equal(t, OpMoveTo, p[0].Op)
	assert.Equal(t, dimen.Point{X: 0, Y: 10}, p[0].Pts[0])
	assert.Equal(t, OpClose, p[8].Op)
	//
	sq := []dimen.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	in := insetPolygon(sq, 1, 2)
	assert.Equal(t, []dimen.Point{{X: 1, Y: 2}, {X: 9, Y: 2}, {X: 9, Y: 8}, {X: 1, Y: 8}}, in)
	//
	c1, c2 := quadToCubic(dimen.Point{}, dimen.Point{X: 30, Y: 30}, dimen.Point{X: 60, Y: 0})
	assert.Equal(t, dimen.Point{X: 20, Y: 20}, c1)
	assert.Equal(t, dimen.Point{X: 40, Y: 20}, c2)
	assert.Equal(t, "1.5", num(1.5))
	assert.Equal(t, "0", num(-0.001))
}

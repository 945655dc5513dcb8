package host

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/core/color"
	"github.com/npillmayer/keyset/core/layout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeys() []any {
	return []any{
		Key{X: 0, Legends: []any{Legend{Text: "Q", Size: 4}}},
		Key{X: 1, Shape: NormalKey{Width: 2.25, Height: 1}, Color: "#336699",
			Legends: []any{nil, nil, nil, nil, map[string]any{"text": "Enter"}}},
		map[string]any{"x": 0, "y": 1, "shape": "iso-vertical"},
	}
}

func TestNewDrawing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	var warnings []error
	d, err := NewDrawing(testKeys(), WithWarningHandler(func(w error) {
		warnings = append(warnings, w)
	}))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	svg, err := d.ToSVG()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	again, err := d.ToSVG()
	require.NoError(t, err)
	assert.Equal(t, svg, again)
	//
	_, err = NewDrawing(42)
	assert.True(t, core.IsClass(err, core.ETYPE))
}

func TestDrawingWarnings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	defer ResetConfig()
	//
	k := layout.NewKey()
	k.Legends[0] = layout.NewLegend("A", 12, color.Black)
	var warnings []error
	_, err := NewDrawing([]layout.Key{k}, WithWarningHandler(func(w error) {
		warnings = append(warnings, w)
	}))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.True(t, core.IsClass(warnings[0], core.EWARNING))
	assert.Contains(t, warnings[0].Error(), "unknown legend size 12")
	//
	require.NoError(t, SetConfig(map[string]any{"raise_warnings": true}))
	_, err = NewDrawing([]layout.Key{k})
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.EWARNING))
}

func TestDrawingFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	k := layout.NewKey()
	k.X = math.NaN()
	_, err := NewDrawing([]layout.Key{k})
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.ERENDER))
	assert.True(t, strings.HasPrefix(err.Error(), "unable to draw keys"))
	_, err = NewDrawing([]layout.Key{layout.NewKey()}, WithScale(0))
	assert.True(t, core.IsClass(err, core.ERENDER))
}

func TestDrawingExports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	defer ResetConfig()
	//
	d, err := NewDrawing(testKeys(), WithShowMargin(true), WithOutlineWidth(0.25))
	require.NoError(t, err)
	svg, err := d.ToSVG()
	require.NoError(t, err)
	svgAgain, err := d.ToSVG()
	require.NoError(t, err)
	assert.Equal(t, svg, svgAgain)
	png96, err := d.ToPNG(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png96[:4])
	png192, err := d.ToPNG(nil, 192)
	require.NoError(t, err)
	assert.NotEqual(t, png96, png192)
	require.NoError(t, SetConfig(map[string]any{"dpi": 192}))
	pngConfigured, err := d.ToPNG(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, png192, pngConfigured)
	//
	pdf, err := d.ToPDF()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.")))
	pdfAgain, err := d.ToPDF()
	require.NoError(t, err)
	assert.Equal(t, pdf, pdfAgain)
	ai, err := d.ToAI()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(ai, []byte("%PDF-1.")))
}

func TestDrawingDestinations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	d, err := NewDrawing(testKeys())
	require.NoError(t, err)
	svg, err := d.ToSVG()
	require.NoError(t, err)
	//
	path := filepath.Join(t.TempDir(), "keys.svg")
	out, err := d.ToSVG(path)
	require.NoError(t, err)
	assert.Empty(t, out)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, svg, string(written))
	//
	to := &textOnly{}
	_, err = d.ToSVG(to)
	require.NoError(t, err)
	assert.Equal(t, svg, to.written.String())
	//
	var buf bytes.Buffer
	out2, err := d.ToPDF(&buf)
	require.NoError(t, err)
	assert.Nil(t, out2)
	pdf, err := d.ToPDF()
	require.NoError(t, err)
	assert.Equal(t, pdf, buf.Bytes())
	//
	_, err = d.ToPNG(&textOnly{}, 96)
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.ETYPE))
	assert.Equal(t, "expected a path or a file-like object", err.Error())
	_, err = d.ToPDF(3.14)
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = d.ToAI(&buf, &buf)
	assert.True(t, core.IsClass(err, core.ETYPE))
	_, err = d.ToSVG(filepath.Join(t.TempDir(), "no", "such", "dir.svg"))
	assert.True(t, core.IsClass(err, core.EIO))
}

package layout

import (
	"github.com/npillmayer/keyset/core/color"
	"github.com/npillmayer/keyset/core/dimen"
)

// LegendCount is the number of legend slots on a keycap face.
const LegendCount = 9

// DefaultLegendSize is the size index of legends which do not state one.
const DefaultLegendSize = 3

// Legend is the text printed on a keycap, its size index and color.
type Legend struct {
	Text  Text
	Size  int
	Color color.Color
}

// NewLegend creates a legend, parsing the text markup.
func NewLegend(text string, size int, c color.Color) *Legend {
	return &Legend{Text: ParseText(text), Size: size, Color: c}
}

// Key is a key of a layout.
type Key struct {
	X, Y    float64 // position of the top left corner in key units
	Shape   Shape
	Color   color.Color
	Legends [LegendCount]*Legend
}

// NewKey creates a 1u key at the origin, in the default key color and
// without legends.
func NewKey() Key {
	return Key{Shape: Normal(1, 1), Color: color.DefaultKey}
}

// Bounds returns the bounding box of a key in dots.
func (k Key) Bounds() dimen.Rect {
	w, h := k.Shape.Size()
	return dimen.RectFromSize(
		dimen.Point{X: dimen.FromUnits(k.X), Y: dimen.FromUnits(k.Y)},
		dimen.Point{X: dimen.FromUnits(w), Y: dimen.FromUnits(h)},
	)
}

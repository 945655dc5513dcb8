package drawing

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/npillmayer/keyset/core/color"
	"github.com/npillmayer/keyset/core/dimen"
	"github.com/npillmayer/keyset/core/font"
	"github.com/npillmayer/keyset/core/layout"
	"github.com/npillmayer/keyset/core/profile"
)

// Stencil holds the parameters of a rendering.
type Stencil struct {
	Profile      *profile.Profile
	Font         *font.Font
	Scale        float64     // output scale, 1.0 renders a key unit as 19.05 mm
	OutlineWidth dimen.Dimen // width of key outlines
	ShowKeys     bool        // draw key shapes; if false, only legends are drawn
	ShowMargin   bool        // draw the legend areas
}

// NewStencil creates a stencil with the default profile and font, scale 1,
// key outlines of 0.5 mm and key shapes shown.
func NewStencil() Stencil {
	return Stencil{
		Profile:      profile.Default(),
		Font:         font.Default(),
		Scale:        1,
		OutlineWidth: dimen.FromMillimeters(0.5),
		ShowKeys:     true,
	}
}

// Warning is a problem found while drawing, which did not prevent the
// drawing.
type Warning struct {
	Key int // index of the key the warning refers to, -1 for none
	Msg string
}

func (w Warning) Error() string {
	if w.Key < 0 {
		return w.Msg
	}
	return fmt.Sprintf("key %d: %s", w.Key, w.Msg)
}

// WithWarnings is a value together with the warnings produced while
// computing it.
type WithWarnings[T any] struct {
	Value    T
	Warnings []Warning
}

// Drawing is a rendered list of keys.
type Drawing struct {
	Bounds dimen.Rect // extent of the drawing, in dots
	Scale  float64
	Items  []Item

	svgOnce sync.Once
	svg     string
	pdfOnce sync.Once
	pdf     []byte
	pdfErr  error
	aiOnce  sync.Once
	ai      []byte
	aiErr   error
}

// ErrInvalidGeometry is the cause of errors for keys which cannot be drawn.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Draw renders keys. Keys with non-finite positions or sizes and keys
// with non-positive sizes cannot be drawn and produce an error, as does
// an invalid stencil.
func (st Stencil) Draw(keys []layout.Key) (WithWarnings[*Drawing], error) {
	var result WithWarnings[*Drawing]
	if err := st.validate(); err != nil {
		return result, err
	}
	d := &Drawing{Scale: st.Scale}
	r := renderer{Stencil: st, drawing: d}
	for i, key := range keys {
		if err := checkKey(key); err != nil {
			return result, fmt.Errorf("key %d: %w", i, err)
		}
		r.key = i
		if key.X < 0 || key.Y < 0 {
			r.warn("key at negative position (%g, %g)", key.X, key.Y)
		}
		r.drawKey(key)
		d.Bounds.BotR.X = dimen.Max(d.Bounds.BotR.X, key.Bounds().BotR.X)
		d.Bounds.BotR.Y = dimen.Max(d.Bounds.BotR.Y, key.Bounds().BotR.Y)
	}
	tracer().Debugf("drew %d keys into %d items, %d warnings", len(keys), len(d.Items), len(r.warnings))
	result.Value, result.Warnings = d, r.warnings
	return result, nil
}

func (st Stencil) validate() error {
	switch {
	case st.Profile == nil:
		return errors.New("no profile")
	case st.Font == nil:
		return errors.New("no font")
	case !(st.Scale > 0) || math.IsInf(st.Scale, 0):
		return fmt.Errorf("invalid scale %g", st.Scale)
	case !st.OutlineWidth.IsFinite() || st.OutlineWidth < 0:
		return fmt.Errorf("invalid outline width %g", float64(st.OutlineWidth))
	}
	return nil
}

func checkKey(key layout.Key) error {
	if !isFinite(key.X) || !isFinite(key.Y) {
		return fmt.Errorf("%w: position (%g, %g)", ErrInvalidGeometry, key.X, key.Y)
	}
	w, h := key.Shape.Size()
	if !isFinite(w) || !isFinite(h) || w <= 0 || h <= 0 {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidGeometry, w, h)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// --- Rendering -------------------------------------------------------------

type renderer struct {
	Stencil
	drawing  *Drawing
	key      int
	warnings []Warning
}

func (r *renderer) warn(format string, args ...interface{}) {
	w := Warning{Key: r.key, Msg: fmt.Sprintf(format, args...)}
	tracer().Infof("drawing: %s", w.Error())
	r.warnings = append(r.warnings, w)
}

func (r *renderer) add(p Path, fill, stroke *color.Color, width dimen.Dimen) {
	r.drawing.Items = append(r.drawing.Items, Item{Path: p, Fill: fill, Stroke: stroke, StrokeWidth: width})
}

func (r *renderer) drawKey(key layout.Key) {
	origin := dimen.Point{X: dimen.FromUnits(key.X), Y: dimen.FromUnits(key.Y)}
	w, h := key.Shape.Size()
	size := dimen.Point{X: dimen.FromUnits(w), Y: dimen.FromUnits(h)}
	if r.ShowKeys && key.Shape.Kind != layout.NoneKey {
		r.drawShape(key, origin, size)
	}
	if r.ShowMargin {
		var p Path
		roundedRect(&p, r.legendRect(key.Shape, size, layout.DefaultLegendSize, origin), 0)
		red := color.Color{R: 1}
		r.add(p, nil, &red, r.OutlineWidth/2)
	}
	for i, legend := range key.Legends {
		if legend == nil || legend.Text.IsEmpty() {
			continue
		}
		if legend.Size < 0 || legend.Size > 9 {
			r.warn("unknown legend size %d", legend.Size)
		}
		r.drawLegend(legend, i, r.legendRect(key.Shape, size, legend.Size, origin))
	}
}

// legendRect returns the area for legends of size class sizeIdx on a key
// at origin.
func (r *renderer) legendRect(shape layout.Shape, size dimen.Point, sizeIdx int, origin dimen.Point) dimen.Rect {
	rect := r.Profile.LegendRect(r.legendArea(shape, size), sizeIdx)
	if shape.Kind == layout.IsoVerticalKey {
		origin.X += dimen.FromUnits(0.25)
	}
	return shift(rect, origin)
}

// legendArea returns the size of the part of a key carrying legends.
func (r *renderer) legendArea(shape layout.Shape, size dimen.Point) dimen.Point {
	switch shape.Kind {
	case layout.SteppedCapsKey:
		return dimen.Point{X: dimen.FromUnits(1.25), Y: dimen.U}
	case layout.IsoVerticalKey:
		return dimen.Point{X: dimen.FromUnits(1.25), Y: 2 * dimen.U}
	case layout.IsoHorizontalKey:
		return dimen.Point{X: dimen.FromUnits(1.5), Y: dimen.U}
	}
	return size
}

func (r *renderer) drawShape(key layout.Key, origin, size dimen.Point) {
	prof := r.Profile
	base := key.Color
	outline := base.Darker(0.3)
	top := base.Highlight(0.15)
	if key.Shape.Kind == layout.SpaceKey || prof.Type.Kind == profile.Flat {
		top = base
	}
	var bottomPath, topPath, stepPath Path
	switch key.Shape.Kind {
	case layout.IsoVerticalKey, layout.IsoHorizontalKey:
		l := isoOutline()
		dx, dy := (dimen.U-prof.Bottom.Size.X)/2, (dimen.U-prof.Bottom.Size.Y)/2
		roundedPolygon(&bottomPath, shiftAll(insetPolygon(l, dx, dy), origin), prof.Bottom.Radius)
		dx, dy = (dimen.U-prof.Top.Size.X)/2, (dimen.U-prof.Top.Size.Y)/2
		topL := shiftAll(insetPolygon(l, dx, dy), dimen.Point{X: origin.X, Y: origin.Y + prof.Top.YOffset})
		roundedPolygon(&topPath, topL, prof.Top.Radius)
	case layout.SteppedCapsKey:
		roundedRect(&bottomPath, shift(prof.BottomRect(size), origin), prof.Bottom.Radius)
		main := dimen.Point{X: dimen.FromUnits(1.25), Y: dimen.U}
		roundedRect(&topPath, shift(prof.TopRect(main), origin), prof.Top.Radius)
		step := shift(prof.TopRect(dimen.Point{X: dimen.FromUnits(0.5), Y: dimen.U}),
			dimen.Point{X: origin.X + dimen.FromUnits(1.25), Y: origin.Y})
		roundedRect(&stepPath, step, prof.Top.Radius)
	default:
		roundedRect(&bottomPath, shift(prof.BottomRect(size), origin), prof.Bottom.Radius)
		roundedRect(&topPath, shift(prof.TopRect(size), origin), prof.Top.Radius)
	}
	r.add(bottomPath, &base, &outline, r.OutlineWidth)
	r.add(topPath, &top, &outline, r.OutlineWidth)
	if len(stepPath) > 0 {
		r.add(stepPath, &base, &outline, r.OutlineWidth)
	}
	if key.Shape.Kind == layout.HomingKey {
		r.drawHoming(key.Shape.Homing, shift(prof.TopRect(size), origin), top)
	}
}

// isoOutline is the outline of an ISO enter key in dots, clockwise.
func isoOutline() []dimen.Point {
	u := func(x, y float64) dimen.Point {
		return dimen.Point{X: dimen.FromUnits(x), Y: dimen.FromUnits(y)}
	}
	return []dimen.Point{u(0, 0), u(1.5, 0), u(1.5, 2), u(0.25, 2), u(0.25, 1), u(0, 1)}
}

func (r *renderer) drawHoming(h *profile.HomingType, top dimen.Rect, topColor color.Color) {
	props := r.Profile.Homing
	kind := props.Default
	if h != nil {
		kind = *h
	}
	marker := topColor.Darker(0.15)
	c := top.Center()
	var p Path
	switch kind {
	case profile.Scoop:
		depth := props.Scoop.Depth
		inset := dimen.Min(depth*2, dimen.Min(top.Width(), top.Height())/4)
		dish := top.Inset(dimen.Offset{Top: inset, Right: inset, Bottom: inset, Left: inset})
		roundedRect(&p, dish, dimen.Min(dish.Width(), dish.Height())/2)
		r.add(p, &marker, nil, 0)
	case profile.Bar:
		sz := props.Bar.Size
		roundedRect(&p, dimen.Rect{
			TopL: dimen.Point{X: c.X - sz.X/2, Y: c.Y + props.Bar.YOffset - sz.Y/2},
			BotR: dimen.Point{X: c.X + sz.X/2, Y: c.Y + props.Bar.YOffset + sz.Y/2},
		}, sz.Y/2)
		r.add(p, &marker, nil, 0)
	case profile.Bump:
		circle(&p, dimen.Point{X: c.X, Y: c.Y + props.Bump.YOffset}, props.Bump.Diameter/2)
		r.add(p, &marker, nil, 0)
	}
}

// drawLegend typesets a legend into its slot of the legend rect: slots are
// aligned left, center or right and top, middle or bottom.
func (r *renderer) drawLegend(legend *layout.Legend, slot int, rect dimen.Rect) {
	f := r.Font
	geom := r.Profile.LegendGeometry(legend.Size)
	capUnits := f.CapHeight()
	if capUnits <= 0 {
		capUnits = f.EmSize()
	}
	scale := float64(geom.Height) / capUnits // dots per font unit
	lineHeight := dimen.Dimen(f.LineHeight() * scale)
	lines := legend.Text.Lines()
	capHeight := geom.Height
	textHeight := capHeight + lineHeight*dimen.Dimen(len(lines)-1)
	var baseline dimen.Dimen // of the first line
	switch slot / 3 {
	case 0:
		baseline = rect.TopL.Y + capHeight
	case 1:
		baseline = rect.Center().Y - textHeight/2 + capHeight
	default:
		baseline = rect.BotR.Y - textHeight + capHeight
	}
	if textHeight > rect.Height() {
		r.warn("legend %q is too tall for its key", legend.Text.String())
	}
	fill := legend.Color
	for n, line := range lines {
		glyphs, width := r.shapeLine(line)
		sx := scale
		if w := dimen.Dimen(width * scale); w > rect.Width() {
			r.warn("legend %q squished to fit on key", line)
			sx = float64(rect.Width()) / width
		}
		lineWidth := dimen.Dimen(width * sx)
		var x dimen.Dimen
		switch slot % 3 {
		case 0:
			x = rect.TopL.X
		case 1:
			x = rect.Center().X - lineWidth/2
		default:
			x = rect.BotR.X - lineWidth
		}
		y := baseline + lineHeight*dimen.Dimen(n)
		var p Path
		pen := 0.0
		for _, g := range glyphs {
			appendGlyph(&p, g.glyph, x+dimen.Dimen((pen+g.offset)*sx), y, sx, scale)
			pen += g.offset + g.glyph.Advance
		}
		if len(p) > 0 {
			r.add(p, &fill, nil, 0)
		}
	}
}

type placedGlyph struct {
	glyph  *font.Glyph
	offset float64 // kerning relative to the previous glyph, font units
}

// shapeLine looks up the glyphs for a line of text and returns them with
// the width of the line in font units.
func (r *renderer) shapeLine(line string) ([]placedGlyph, float64) {
	var glyphs []placedGlyph
	var width float64
	var prev rune = -1
	for _, ch := range line {
		g, ok := r.Font.Glyph(ch)
		if !ok {
			r.warn("no glyph for %q in font %s", ch, r.Font.Fontname)
			g = r.Font.GlyphOrDefault(ch)
		}
		var kern float64
		if prev >= 0 {
			kern = r.Font.Kerning(prev, ch)
		}
		glyphs = append(glyphs, placedGlyph{glyph: g, offset: kern})
		width += kern + g.Advance
		prev = ch
	}
	return glyphs, width
}

// appendGlyph appends the outline of g with its origin at (x, y). Font units
// are scaled by sx horizontally and sy vertically; the font's Y axis points
// up.
func appendGlyph(p *Path, g *font.Glyph, x, y dimen.Dimen, sx, sy float64) {
	pt := func(v font.Vec) dimen.Point {
		return dimen.Point{X: x + dimen.Dimen(v.X*sx), Y: y - dimen.Dimen(v.Y*sy)}
	}
	open := false
	for _, seg := range g.Path {
		switch seg.Op {
		case font.MoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(pt(seg.Args[0]))
			open = true
		case font.LineTo:
			p.LineTo(pt(seg.Args[0]))
		case font.QuadTo:
			p.QuadTo(pt(seg.Args[0]), pt(seg.Args[1]))
		case font.CubeTo:
			p.CubeTo(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
		}
	}
	if open {
		p.Close()
	}
}

func shift(r dimen.Rect, by dimen.Point) dimen.Rect {
	return dimen.Rect{TopL: r.TopL.Add(by), BotR: r.BotR.Add(by)}
}

func shiftAll(pts []dimen.Point, by dimen.Point) []dimen.Point {
	for i := range pts {
		pts[i] = pts[i].Add(by)
	}
	return pts
}

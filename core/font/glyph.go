package font

import (
	"errors"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Vec is a point or vector in font units, Y axis pointing up.
type Vec struct {
	X, Y float64
}

// SegmentOp is the operator of a path segment.
type SegmentOp uint8

// Path segment operators
const (
	MoveTo SegmentOp = iota
	LineTo
	QuadTo
	CubeTo
)

// Segment is a segment of a glyph outline. Args holds up to three points,
// depending on Op: one for MoveTo and LineTo, two for QuadTo, three for CubeTo.
type Segment struct {
	Op   SegmentOp
	Args [3]Vec
}

// Glyph is the outline of a character together with its advance width.
type Glyph struct {
	Rune    rune
	Index   sfnt.GlyphIndex
	Advance float64
	Path    []Segment
}

// Bounds returns the bounding box of the glyph's control points as
// (min, max). An empty glyph (e.g. a space) has zero bounds.
func (g *Glyph) Bounds() (min, max Vec) {
	first := true
	for _, seg := range g.Path {
		for _, p := range seg.Args[:seg.Op.argCount()] {
			if first {
				min, max, first = p, p, false
				continue
			}
			if p.X < min.X {
				min.X = p.X
			}
			if p.Y < min.Y {
				min.Y = p.Y
			}
			if p.X > max.X {
				max.X = p.X
			}
			if p.Y > max.Y {
				max.Y = p.Y
			}
		}
	}
	return
}

func (op SegmentOp) argCount() int {
	switch op {
	case QuadTo:
		return 2
	case CubeTo:
		return 3
	}
	return 1
}

// HasGlyph is true if the font maps r to a glyph other than .notdef.
func (f *Font) HasGlyph(r rune) bool {
	var b sfnt.Buffer
	x, err := f.SFNT.GlyphIndex(&b, r)
	return err == nil && x != 0
}

// Glyph returns the outline for r. If the font has no glyph for r, it
// returns false.
func (f *Font) Glyph(r rune) (*Glyph, bool) {
	var b sfnt.Buffer
	x, err := f.SFNT.GlyphIndex(&b, r)
	if err != nil || x == 0 {
		return nil, false
	}
	g, err := f.loadGlyph(&b, r, x)
	if err != nil {
		tracer().Infof("cannot load glyph for %q from font %s: %v", r, f.Fontname, err)
		return nil, false
	}
	return g, true
}

// GlyphOrDefault returns the outline for r or, if the font has no glyph for
// r, the .notdef glyph.
func (f *Font) GlyphOrDefault(r rune) *Glyph {
	if g, ok := f.Glyph(r); ok {
		return g
	}
	var b sfnt.Buffer
	g, err := f.loadGlyph(&b, r, 0)
	if err != nil {
		return &Glyph{Rune: r, Advance: f.metrics.EmSize / 2}
	}
	return g
}

func (f *Font) loadGlyph(b *sfnt.Buffer, r rune, x sfnt.GlyphIndex) (*Glyph, error) {
	ppem := f.ppem()
	adv, err := f.SFNT.GlyphAdvance(b, x, ppem, xfont.HintingNone)
	if err != nil {
		return nil, err
	}
	g := &Glyph{Rune: r, Index: x, Advance: units(adv)}
	segs, err := f.SFNT.LoadGlyph(b, x, ppem, nil)
	if err != nil {
		return nil, err
	}
	g.Path = make([]Segment, len(segs))
	for i, s := range segs {
		g.Path[i].Op = SegmentOp(s.Op)
		for j := range s.Args {
			// sfnt has the Y axis pointing down
			g.Path[i].Args[j] = Vec{X: units(s.Args[j].X), Y: -units(s.Args[j].Y)}
		}
	}
	return g, nil
}

// Kerning returns the horizontal adjustment between the glyphs for left and
// right. It is zero if the font has no kerning information for the pair.
func (f *Font) Kerning(left, right rune) float64 {
	var b sfnt.Buffer
	x0, err0 := f.SFNT.GlyphIndex(&b, left)
	x1, err1 := f.SFNT.GlyphIndex(&b, right)
	if err0 != nil || err1 != nil {
		return 0
	}
	k, err := f.SFNT.Kern(&b, x0, x1, f.ppem(), xfont.HintingNone)
	if err != nil {
		if !errors.Is(err, sfnt.ErrNotFound) {
			tracer().Debugf("kerning %q/%q: %v", left, right, err)
		}
		return 0
	}
	return units(k)
}

// ppem scales sfnt results to font units (times 64).
func (f *Font) ppem() fixed.Int26_6 {
	return fixed.I(int(f.SFNT.UnitsPerEm()))
}

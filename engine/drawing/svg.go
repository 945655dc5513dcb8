package drawing

import (
	"strconv"
	"strings"

	"github.com/npillmayer/keyset/core/dimen"
)

// ToSVG returns the drawing as an SVG document. The view box is in dots,
// the document size in millimeters times the drawing scale.
func (d *Drawing) ToSVG() string {
	d.svgOnce.Do(func() {
		d.svg = d.encodeSVG()
	})
	return d.svg
}

func (d *Drawing) encodeSVG() string {
	var b strings.Builder
	w, h := d.Bounds.Width(), d.Bounds.Height()
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="`)
	b.WriteString(num(w.Millimeters() * d.Scale))
	b.WriteString(`mm" height="`)
	b.WriteString(num(h.Millimeters() * d.Scale))
	b.WriteString(`mm" viewBox="`)
	b.WriteString(num(float64(d.Bounds.TopL.X)) + " " + num(float64(d.Bounds.TopL.Y)) + " ")
	b.WriteString(num(float64(w)) + " " + num(float64(h)))
	b.WriteString("\">\n")
	for _, item := range d.Items {
		b.WriteString(`<path d="`)
		writePathData(&b, item.Path)
		b.WriteString(`" fill="`)
		if item.Fill != nil {
			b.WriteString(item.Fill.Hex())
		} else {
			b.WriteString("none")
		}
		b.WriteString(`"`)
		if item.Stroke != nil {
			b.WriteString(` stroke="` + item.Stroke.Hex() + `" stroke-width="`)
			b.WriteString(num(float64(item.StrokeWidth)))
			b.WriteString(`" stroke-linejoin="round"`)
		}
		b.WriteString("/>\n")
	}
	b.WriteString("</svg>\n")
	tracer().Debugf("SVG document of %d items, %d bytes", len(d.Items), b.Len())
	return b.String()
}

func writePathData(b *strings.Builder, p Path) {
	pt := func(pts ...dimen.Point) {
		for _, q := range pts {
			b.WriteString(num(float64(q.X)))
			b.WriteByte(',')
			b.WriteString(num(float64(q.Y)))
			b.WriteByte(' ')
		}
	}
	for _, seg := range p {
		switch seg.Op {
		case OpMoveTo:
			b.WriteString("M")
			pt(seg.Pts[0])
		case OpLineTo:
			b.WriteString("L")
			pt(seg.Pts[0])
		case OpQuadTo:
			b.WriteString("Q")
			pt(seg.Pts[:2]...)
		case OpCubeTo:
			b.WriteString("C")
			pt(seg.Pts[:3]...)
		case OpClose:
			b.WriteString("Z ")
		}
	}
}

// num formats a coordinate with at most 2 decimals.
func num(x float64) string {
	s := strconv.FormatFloat(x, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

package drawing

import (
	"bytes"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/core/dimen"
)

// ToPNG rasterizes the drawing at a resolution of ppi pixels per inch
// (times the drawing scale). The background is transparent.
func (d *Drawing) ToPNG(ppi float64) ([]byte, error) {
	if !(ppi > 0) || math.IsInf(ppi, 0) {
		return nil, core.Error(core.ERANGE, "invalid resolution %g ppi", ppi)
	}
	px := func(x dimen.Dimen) float64 {
		return x.Pixels(ppi) * d.Scale
	}
	w := int(math.Max(1, math.Ceil(px(d.Bounds.Width()))))
	h := int(math.Max(1, math.Ceil(px(d.Bounds.Height()))))
	tracer().Debugf("rasterizing %d items to %dx%d px", len(d.Items), w, h)
	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.SetFillRule(gg.FillRuleNonZero)
	dc.SetLineJoin(gg.LineJoinRound)
	pt := func(q dimen.Point) (float64, float64) {
		return px(q.X - d.Bounds.TopL.X), px(q.Y - d.Bounds.TopL.Y)
	}
	for i, item := range d.Items {
		if item.Fill != nil {
			tracePath(dc, item.Path, pt)
			c := item.Fill
			dc.SetRGB(c.R, c.G, c.B)
			if err := dc.Fill(); err != nil {
				return nil, core.WrapError(err, core.ERENDER, "cannot fill item %d", i)
			}
		}
		if item.Stroke != nil {
			tracePath(dc, item.Path, pt)
			c := item.Stroke
			dc.SetRGB(c.R, c.G, c.B)
			dc.SetLineWidth(math.Max(px(item.StrokeWidth), 0.5))
			if err := dc.Stroke(); err != nil {
				return nil, core.WrapError(err, core.ERENDER, "cannot stroke item %d", i)
			}
		}
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, core.WrapError(err, core.ERENDER, "cannot encode PNG")
	}
	return buf.Bytes(), nil
}

func tracePath(dc *gg.Context, p Path, pt func(dimen.Point) (float64, float64)) {
	for _, seg := range p {
		switch seg.Op {
		case OpMoveTo:
			dc.MoveTo(pt(seg.Pts[0]))
		case OpLineTo:
			dc.LineTo(pt(seg.Pts[0]))
		case OpQuadTo:
			cx, cy := pt(seg.Pts[0])
			x, y := pt(seg.Pts[1])
			dc.QuadraticTo(cx, cy, x, y)
		case OpCubeTo:
			c1x, c1y := pt(seg.Pts[0])
			c2x, c2y := pt(seg.Pts[1])
			x, y := pt(seg.Pts[2])
			dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case OpClose:
			dc.ClosePath()
		default:
			panic(fmt.Sprintf("unknown path operator %d", seg.Op))
		}
	}
}

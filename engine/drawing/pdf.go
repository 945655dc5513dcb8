package drawing

import (
	"bytes"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/core/dimen"
)

// ToPDF returns the drawing as a single page PDF document, sized in big
// points.
func (d *Drawing) ToPDF() ([]byte, error) {
	d.pdfOnce.Do(func() {
		d.pdf, d.pdfErr = d.encodePDF(pdf.V1_7)
	})
	return d.pdf, d.pdfErr
}

// ToAI returns the drawing for Adobe Illustrator, which reads PDF 1.4
// documents natively.
func (d *Drawing) ToAI() ([]byte, error) {
	d.aiOnce.Do(func() {
		d.ai, d.aiErr = d.encodePDF(pdf.V1_4)
	})
	return d.ai, d.aiErr
}

func (d *Drawing) encodePDF(v pdf.Version) ([]byte, error) {
	pt := func(x dimen.Dimen) float64 {
		return x.Points() * d.Scale
	}
	w, h := pt(d.Bounds.Width()), pt(d.Bounds.Height())
	var buf bytes.Buffer
	page, err := document.WriteSinglePage(&buf, &pdf.Rectangle{URx: w, URy: h}, v, nil)
	if err != nil {
		return nil, core.WrapError(err, core.ERENDER, "cannot create PDF document")
	}
	// PDF user space has its origin at the bottom left.
	xy := func(q dimen.Point) (float64, float64) {
		return pt(q.X - d.Bounds.TopL.X), h - pt(q.Y-d.Bounds.TopL.Y)
	}
	page.SetLineJoin(graphics.LineJoinRound)
	for _, item := range d.Items {
		if item.Fill == nil && item.Stroke == nil {
			continue
		}
		page.PushGraphicsState()
		// Colors and line width may only be set outside of a path.
		if item.Fill != nil {
			page.SetFillColor(pdfcolor.DeviceRGB(item.Fill.R, item.Fill.G, item.Fill.B))
		}
		if item.Stroke != nil {
			page.SetStrokeColor(pdfcolor.DeviceRGB(item.Stroke.R, item.Stroke.G, item.Stroke.B))
			page.SetLineWidth(pt(item.StrokeWidth))
		}
		var last dimen.Point
		for _, seg := range item.Path {
			switch seg.Op {
			case OpMoveTo:
				page.MoveTo(xy(seg.Pts[0]))
				last = seg.Pts[0]
			case OpLineTo:
				page.LineTo(xy(seg.Pts[0]))
				last = seg.Pts[0]
			case OpQuadTo:
				c1, c2 := quadToCubic(last, seg.Pts[0], seg.Pts[1])
				x1, y1 := xy(c1)
				x2, y2 := xy(c2)
				x3, y3 := xy(seg.Pts[1])
				page.CurveTo(x1, y1, x2, y2, x3, y3)
				last = seg.Pts[1]
			case OpCubeTo:
				x1, y1 := xy(seg.Pts[0])
				x2, y2 := xy(seg.Pts[1])
				x3, y3 := xy(seg.Pts[2])
				page.CurveTo(x1, y1, x2, y2, x3, y3)
				last = seg.Pts[2]
			case OpClose:
				page.ClosePath()
			}
		}
		switch {
		case item.Fill != nil && item.Stroke != nil:
			page.FillAndStroke()
		case item.Fill != nil:
			page.Fill()
		default:
			page.Stroke()
		}
		page.PopGraphicsState()
	}
	if page.Err != nil {
		return nil, core.WrapError(page.Err, core.ERENDER, "cannot compose PDF page")
	}
	if err := page.Close(); err != nil {
		return nil, core.WrapError(err, core.ERENDER, "cannot write PDF document")
	}
	tracer().Debugf("PDF %s document of %d items, %d bytes", v, len(d.Items), buf.Len())
	return buf.Bytes(), nil
}

// quadToCubic returns the control points of the cubic Bézier curve equal
// to the quadratic curve from p0 over c to p1.
func quadToCubic(p0, c, p1 dimen.Point) (dimen.Point, dimen.Point) {
	return dimen.Point{X: p0.X + (c.X-p0.X)*2/3, Y: p0.Y + (c.Y-p0.Y)*2/3},
		dimen.Point{X: p1.X + (c.X-p1.X)*2/3, Y: p1.Y + (c.Y-p1.Y)*2/3}
}

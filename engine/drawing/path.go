package drawing

import (
	"github.com/npillmayer/keyset/core/color"
	"github.com/npillmayer/keyset/core/dimen"
)

// PathOp is the operator of a path segment.
type PathOp uint8

// Path segment operators
const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
	OpClose
)

// Segment is a segment of a path. Pts holds 1 point for OpMoveTo and
// OpLineTo, 2 for OpQuadTo, 3 for OpCubeTo and none for OpClose.
type Segment struct {
	Op  PathOp
	Pts [3]dimen.Point
}

// Path is a sequence of sub-paths.
type Path []Segment

// MoveTo starts a new sub-path.
func (p *Path) MoveTo(pt dimen.Point) {
	*p = append(*p, Segment{Op: OpMoveTo, Pts: [3]dimen.Point{pt}})
}

// LineTo adds a line.
func (p *Path) LineTo(pt dimen.Point) {
	*p = append(*p, Segment{Op: OpLineTo, Pts: [3]dimen.Point{pt}})
}

// QuadTo adds a quadratic Bézier curve.
func (p *Path) QuadTo(c, pt dimen.Point) {
	*p = append(*p, Segment{Op: OpQuadTo, Pts: [3]dimen.Point{c, pt}})
}

// CubeTo adds a cubic Bézier curve.
func (p *Path) CubeTo(c1, c2, pt dimen.Point) {
	*p = append(*p, Segment{Op: OpCubeTo, Pts: [3]dimen.Point{c1, c2, pt}})
}

// Close closes the current sub-path.
func (p *Path) Close() {
	*p = append(*p, Segment{Op: OpClose})
}

// Item is an element of a drawing: a path, filled and/or stroked.
type Item struct {
	Path        Path
	Fill        *color.Color
	Stroke      *color.Color
	StrokeWidth dimen.Dimen
}

// kappa is the distance of the control points of a cubic Bézier
// approximation of a quarter circle, relative to the radius.
const kappa = 0.5522847498

// roundedPolygon appends a closed polygon with all corners rounded by r.
// The polygon has to be rectilinear, with edges long enough to hold the
// corner arcs.
func roundedPolygon(p *Path, pts []dimen.Point, r dimen.Dimen) {
	n := len(pts)
	if n < 3 {
		return
	}
	// towards returns the point at distance d from a in the direction of b.
	towards := func(a, b dimen.Point, d dimen.Dimen) dimen.Point {
		dx, dy := b.X-a.X, b.Y-a.Y
		l := dimen.Max(abs(dx), abs(dy)) // edges are axis aligned
		if l == 0 {
			return a
		}
		return dimen.Point{X: a.X + dx*d/l, Y: a.Y + dy*d/l}
	}
	for i := 0; i < n; i++ {
		prev, corner, next := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
		start, end := towards(corner, prev, r), towards(corner, next, r)
		c1 := towards(start, corner, r*kappa)
		c2 := towards(end, corner, r*kappa)
		if i == 0 {
			p.MoveTo(start)
		} else {
			p.LineTo(start)
		}
		if r > 0 {
			p.CubeTo(c1, c2, end)
		}
	}
	p.Close()
}

// roundedRect appends a closed rectangle with rounded corners.
func roundedRect(p *Path, r dimen.Rect, radius dimen.Dimen) {
	radius = dimen.Min(radius, dimen.Min(r.Width(), r.Height())/2)
	roundedPolygon(p, []dimen.Point{
		r.TopL, {X: r.BotR.X, Y: r.TopL.Y}, r.BotR, {X: r.TopL.X, Y: r.BotR.Y},
	}, radius)
}

// circle appends a circle.
func circle(p *Path, c dimen.Point, radius dimen.Dimen) {
	roundedRect(p, dimen.Rect{
		TopL: dimen.Point{X: c.X - radius, Y: c.Y - radius},
		BotR: dimen.Point{X: c.X + radius, Y: c.Y + radius},
	}, radius)
}

// insetPolygon moves the edges of a clockwise rectilinear polygon inwards,
// by dx for vertical edges and by dy for horizontal edges.
func insetPolygon(pts []dimen.Point, dx, dy dimen.Dimen) []dimen.Point {
	n := len(pts)
	out := make([]dimen.Point, n)
	// inward normal of edge a→b for clockwise polygons, Y axis pointing down
	normal := func(a, b dimen.Point) (nx, ny dimen.Dimen) {
		return -sign(b.Y - a.Y), sign(b.X - a.X)
	}
	for i := 0; i < n; i++ {
		prev, pt, next := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
		nx1, ny1 := normal(prev, pt)
		nx2, ny2 := normal(pt, next)
		out[i] = dimen.Point{X: pt.X + (nx1+nx2)*dx, Y: pt.Y + (ny1+ny2)*dy}
	}
	return out
}

func abs(d dimen.Dimen) dimen.Dimen {
	if d < 0 {
		return -d
	}
	return d
}

func sign(d dimen.Dimen) dimen.Dimen {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}

// Package dimen implements dimensions and units.
//
// The engine measures everything in dots. One key unit (the spacing of
// a standard 1u key, 19.05 mm) is 1000 dots. Host-facing values are given
// either in key units (positions, key sizes) or in millimetres (profile
// geometry) and are converted at the boundary.
//
/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Dimen is a dimension type.
// Values are in dots, 1/1000 of a key unit.
type Dimen float64

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	Dot  Dimen = 1
	U    Dimen = 1000           // key unit
	MM   Dimen = 1000 / 19.05   // millimeters
	CM   Dimen = 10 * MM        // centimeters
	IN   Dimen = 25.4 * MM      // inch
	BP   Dimen = 25.4 * MM / 72 // big point (PDF) = 1/72 inch
	PX   Dimen = 25.4 * MM / 96 // CSS pixel at 96 ppi
)

// KeyMillimeters is the size of one key unit in millimeters.
const KeyMillimeters = 19.05

// Stringer implementation.
func (d Dimen) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64) + "dot"
}

// Units returns a dimension in key units.
func (d Dimen) Units() float64 {
	return float64(d / U)
}

// Millimeters returns a dimension in millimeters.
func (d Dimen) Millimeters() float64 {
	return float64(d / MM)
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float64 {
	return float64(d / BP)
}

// Pixels returns a dimension in device pixels at a resolution of ppi
// pixels per inch.
func (d Dimen) Pixels(ppi float64) float64 {
	return float64(d/IN) * ppi
}

// IsFinite is false for NaN and infinite dimensions.
func (d Dimen) IsFinite() bool {
	return !math.IsNaN(float64(d)) && !math.IsInf(float64(d), 0)
}

// FromUnits creates a dimension from a length in key units.
func FromUnits(u float64) Dimen {
	return Dimen(u) * U
}

// FromMillimeters creates a dimension from a length in millimeters.
func FromMillimeters(mm float64) Dimen {
	return Dimen(mm) * MM
}

// Point is a point on a drawing.
type Point struct {
	X, Y Dimen
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// Add returns p+q without modifying p.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Scale returns p with both coordinates multiplied by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * Dimen(s), p.Y * Dimen(s)}
}

// Rect is a rectangle (on a drawing).
type Rect struct {
	TopL, BotR Point
}

// RectFromSize creates a rectangle with top-left corner at pos and size sz.
func RectFromSize(pos Point, sz Point) Rect {
	return Rect{TopL: pos, BotR: pos.Add(sz)}
}

// Width returns the width of a rectangle, i.e. the difference between x-coordinates
// of bottom-right and top-left corner.
func (r Rect) Width() Dimen {
	return r.BotR.X - r.TopL.X
}

// Height returns the height of a rectangle, i.e. the difference between y-coordinates
// of bottom-right and top-left corner.
func (r Rect) Height() Dimen {
	return r.BotR.Y - r.TopL.Y
}

// Center returns the center point of r.
func (r Rect) Center() Point {
	return Point{(r.TopL.X + r.BotR.X) / 2, (r.TopL.Y + r.BotR.Y) / 2}
}

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		TopL: Point{Min(r.TopL.X, s.TopL.X), Min(r.TopL.Y, s.TopL.Y)},
		BotR: Point{Max(r.BotR.X, s.BotR.X), Max(r.BotR.Y, s.BotR.Y)},
	}
}

// Inset shrinks r by the given offsets.
func (r Rect) Inset(o Offset) Rect {
	return Rect{
		TopL: Point{r.TopL.X + o.Left, r.TopL.Y + o.Top},
		BotR: Point{r.BotR.X - o.Right, r.BotR.Y - o.Bottom},
	}
}

// Offset holds distances for the four sides of a rectangle, e.g. margins.
type Offset struct {
	Top, Right, Bottom, Left Dimen
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]*\.?[0-9]+)\s*(u|mm|cm|in|pt|bp|px|dot)?$`)

// ParseDimen parses a string to return a dimension, e.g. "19.05mm" or "1.25u".
// A number without unit is taken to be in dots.
func ParseDimen(s string) (Dimen, error) {
	d := dimenPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if len(d) < 2 {
		return 0, fmt.Errorf("format error parsing dimension %q", s)
	}
	scale := Dot
	if len(d) > 2 {
		switch d[2] {
		case "u":
			scale = U
		case "mm":
			scale = MM
		case "cm":
			scale = CM
		case "in":
			scale = IN
		case "pt", "bp":
			scale = BP
		case "px":
			scale = PX
		case "dot", "":
			scale = Dot
		default:
			return 0, errors.New("format error parsing dimension")
		}
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, errors.New("format error parsing dimension")
	}
	return Dimen(n) * scale, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}

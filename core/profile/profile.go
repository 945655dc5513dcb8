package profile

import (
	"fmt"
	"strings"

	"github.com/npillmayer/keyset/core/dimen"
)

// Type is the kind of sculpting of a key's top surface.
type Type int8

// Sculpting types
const (
	Cylindrical Type = iota
	Spherical
	Flat
)

func (t Type) String() string {
	switch t {
	case Cylindrical:
		return "cylindrical"
	case Spherical:
		return "spherical"
	case Flat:
		return "flat"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType parses the name of a sculpting type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cylindrical":
		return Cylindrical, nil
	case "spherical":
		return Spherical, nil
	case "flat":
		return Flat, nil
	}
	return Flat, fmt.Errorf("invalid profile type %q", s)
}

// ProfileType is the sculpting of a key's top surface together with its
// depth. The depth of a flat profile is always zero.
type ProfileType struct {
	Kind  Type
	Depth dimen.Dimen
}

// NewProfileType creates a profile type. Depth is ignored for flat profiles.
func NewProfileType(kind Type, depth dimen.Dimen) ProfileType {
	if kind == Flat {
		depth = 0
	}
	return ProfileType{Kind: kind, Depth: depth}
}

// HomingType is the kind of tactile marker of a homing key.
type HomingType int8

// Homing marker types
const (
	Scoop HomingType = iota
	Bar
	Bump
)

func (h HomingType) String() string {
	switch h {
	case Scoop:
		return "scoop"
	case Bar:
		return "bar"
	case Bump:
		return "bump"
	}
	return fmt.Sprintf("HomingType(%d)", int(h))
}

var homingAliases = map[string]HomingType{
	"scoop": Scoop, "scooped": Scoop, "dish": Scoop, "dished": Scoop,
	"deepdish": Scoop, "deep-dish": Scoop, "deep_dish": Scoop, "deep dish": Scoop,
	"bar": Bar, "barred": Bar, "line": Bar,
	"bump": Bump, "nub": Bump, "dot": Bump, "nipple": Bump,
}

// ParseHomingType matches s case-insensitively against the names of homing
// types and their aliases.
func ParseHomingType(s string) (HomingType, bool) {
	h, ok := homingAliases[strings.ToLower(s)]
	return h, ok
}

// BottomSurface is the bottom outline of a 1u key.
type BottomSurface struct {
	Size   dimen.Point
	Radius dimen.Dimen
}

// TopSurface is the top outline of a 1u key. YOffset moves the top surface
// down, relative to the center of the bottom surface.
type TopSurface struct {
	Size    dimen.Point
	Radius  dimen.Dimen
	YOffset dimen.Dimen
}

// LegendGeom is the geometry of a class of legends: the cap height of the
// legend text and its distance from the edges of the top surface.
type LegendGeom struct {
	Height dimen.Dimen
	Margin dimen.Offset
}

// LegendGeomMap holds legend geometry per legend class.
type LegendGeomMap struct {
	Alpha, Symbol, Modifier LegendGeom
}

// ScoopProps are the dimensions of a scooped homing key.
type ScoopProps struct {
	Depth dimen.Dimen
}

// BarProps are the dimensions of a homing bar.
type BarProps struct {
	Size    dimen.Point
	YOffset dimen.Dimen
}

// BumpProps are the dimensions of a homing bump.
type BumpProps struct {
	Diameter dimen.Dimen
	YOffset  dimen.Dimen
}

// HomingProps holds the default homing type of a profile and the
// dimensions of each kind of homing marker.
type HomingProps struct {
	Default HomingType
	Scoop   ScoopProps
	Bar     BarProps
	Bump    BumpProps
}

// Profile is the geometry of a family of keycaps.
type Profile struct {
	Type       ProfileType
	Bottom     BottomSurface
	Top        TopSurface
	LegendGeom LegendGeomMap
	Homing     HomingProps
}

// Default returns a profile resembling Cherry profile keycaps.
func Default() *Profile {
	mm := dimen.FromMillimeters
	margin := dimen.Offset{Top: mm(0.5), Right: mm(0.5), Bottom: mm(0.5), Left: mm(0.5)}
	return &Profile{
		Type: NewProfileType(Cylindrical, mm(0.5)),
		Bottom: BottomSurface{
			Size:   dimen.Point{X: mm(18.29), Y: mm(18.29)},
			Radius: mm(0.38),
		},
		Top: TopSurface{
			Size:    dimen.Point{X: mm(11.81), Y: mm(13.91)},
			Radius:  mm(1.52),
			YOffset: mm(-1.62),
		},
		LegendGeom: LegendGeomMap{
			Alpha:    LegendGeom{Height: mm(3.18), Margin: margin},
			Symbol:   LegendGeom{Height: mm(2.28), Margin: margin},
			Modifier: LegendGeom{Height: mm(1.81), Margin: margin},
		},
		Homing: HomingProps{
			Default: Scoop,
			Scoop:   ScoopProps{Depth: mm(1.5)},
			Bar:     BarProps{Size: dimen.Point{X: mm(3.85), Y: mm(0.4)}, YOffset: mm(5.05)},
			Bump:    BumpProps{Diameter: mm(0.4), YOffset: mm(-0.2)},
		},
	}
}

// LegendGeometry returns the legend geometry for a legend size index:
// indices up to 1 are modifiers, 2 is a symbol, 3 and above are alphas.
func (p *Profile) LegendGeometry(sizeIdx int) LegendGeom {
	switch {
	case sizeIdx <= 1:
		return p.LegendGeom.Modifier
	case sizeIdx == 2:
		return p.LegendGeom.Symbol
	}
	return p.LegendGeom.Alpha
}

// --- Key geometry ----------------------------------------------------------

// BottomRect returns the bottom outline of a key of the given size
// (in dots), relative to the key's top left corner.
func (p *Profile) BottomRect(size dimen.Point) dimen.Rect {
	return centered(size, p.Bottom.Size, 0)
}

// TopRect returns the top outline of a key of the given size (in dots),
// relative to the key's top left corner.
func (p *Profile) TopRect(size dimen.Point) dimen.Rect {
	return centered(size, p.Top.Size, p.Top.YOffset)
}

// LegendRect returns the area legends of a size index are aligned in.
func (p *Profile) LegendRect(size dimen.Point, sizeIdx int) dimen.Rect {
	return p.TopRect(size).Inset(p.LegendGeometry(sizeIdx).Margin)
}

// centered fits a surface of a 1u key into a key of the given size. The
// distance of the surface to the key's edges stays the same as for a 1u key.
func centered(size, surface dimen.Point, yoffset dimen.Dimen) dimen.Rect {
	dx, dy := (dimen.U-surface.X)/2, (dimen.U-surface.Y)/2
	return dimen.Rect{
		TopL: dimen.Point{X: dx, Y: dy + yoffset},
		BotR: dimen.Point{X: size.X - dx, Y: size.Y - dy + yoffset},
	}
}

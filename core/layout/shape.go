package layout

import (
	"fmt"

	"github.com/npillmayer/keyset/core/profile"
)

// ShapeKind enumerates the shapes a key may have.
type ShapeKind int8

// Key shapes
const (
	NoneKey          ShapeKind = iota // invisible key, e.g. a decal
	NormalKey                         // rectangular key
	SpaceKey                          // space bar, drawn without sculpting
	HomingKey                         // 1u key with a homing marker
	SteppedCapsKey                    // stepped caps lock
	IsoVerticalKey                    // ISO enter, vertical orientation
	IsoHorizontalKey                  // ISO enter, horizontal orientation
)

var shapeNames = [...]string{"none", "normal", "space", "homing", "stepped-caps", "iso-vertical", "iso-horizontal"}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(shapeNames) {
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
	return shapeNames[k]
}

// ParseShapeKind parses the name of a shape kind.
func ParseShapeKind(s string) (ShapeKind, bool) {
	for i, name := range shapeNames {
		if name == s {
			return ShapeKind(i), true
		}
	}
	return NoneKey, false
}

// Shape is the shape of a key. Width and Height are in key units and are
// meaningful for NoneKey, NormalKey and SpaceKey only; the other kinds have
// a fixed size. Homing is the marker of a HomingKey, with nil selecting
// the default of the profile.
type Shape struct {
	Kind          ShapeKind
	Width, Height float64
	Homing        *profile.HomingType
}

// None creates the shape of an invisible key.
func None(w, h float64) Shape {
	return Shape{Kind: NoneKey, Width: w, Height: h}
}

// Normal creates the shape of a regular key.
func Normal(w, h float64) Shape {
	return Shape{Kind: NormalKey, Width: w, Height: h}
}

// Space creates the shape of a space bar.
func Space(w, h float64) Shape {
	return Shape{Kind: SpaceKey, Width: w, Height: h}
}

// Homing creates the shape of a homing key. h may be nil.
func Homing(h *profile.HomingType) Shape {
	return Shape{Kind: HomingKey, Width: 1, Height: 1, Homing: h}
}

// SteppedCaps creates the shape of a stepped caps lock key.
func SteppedCaps() Shape {
	return Shape{Kind: SteppedCapsKey, Width: 1.75, Height: 1}
}

// IsoVertical creates the shape of a vertical ISO enter key.
func IsoVertical() Shape {
	return Shape{Kind: IsoVerticalKey, Width: 1.5, Height: 2}
}

// IsoHorizontal creates the shape of a horizontal ISO enter key.
func IsoHorizontal() Shape {
	return Shape{Kind: IsoHorizontalKey, Width: 1.5, Height: 2}
}

// Size returns the size of the bounding box of a shape in key units.
func (s Shape) Size() (w, h float64) {
	switch s.Kind {
	case HomingKey:
		return 1, 1
	case SteppedCapsKey:
		return 1.75, 1
	case IsoVerticalKey, IsoHorizontalKey:
		return 1.5, 2
	}
	return s.Width, s.Height
}

func (s Shape) String() string {
	switch s.Kind {
	case NoneKey, NormalKey, SpaceKey:
		return fmt.Sprintf("%s(%gx%g)", s.Kind, s.Width, s.Height)
	case HomingKey:
		if s.Homing != nil {
			return fmt.Sprintf("homing(%s)", *s.Homing)
		}
		return "homing(default)"
	}
	return s.Kind.String()
}

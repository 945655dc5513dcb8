package host

import (
	"github.com/npillmayer/keyset/core/layout"
	"github.com/npillmayer/keyset/core/profile"
)

// --- Homing types ----------------------------------------------------------

// ToHomingType converts a host string to a homing type. Matching against
// the aliases is case-insensitive.
func ToHomingType(v any) (profile.HomingType, error) {
	s, ok := str(v)
	if !ok {
		return profile.Scoop, typeMismatch("'%s' can not be converted to HomingType", typeName(v))
	}
	h, ok := profile.ParseHomingType(s)
	if !ok {
		return profile.Scoop, valueError("invalid homing type str: '%s'", s)
	}
	return h, nil
}

// FromHomingType returns "scoop", "bar" or "bump".
func FromHomingType(h profile.HomingType) string {
	return h.String()
}

// --- Key shapes ------------------------------------------------------------

// NoneKey is an invisible key of a given size in key units.
type NoneKey struct {
	Width  float64 `host:"width"`
	Height float64 `host:"height"`
}

// NormalKey is a regular key of a given size in key units.
type NormalKey struct {
	Width  float64 `host:"width"`
	Height float64 `host:"height"`
}

// SpaceKey is a space bar of a given size in key units.
type SpaceKey struct {
	Width  float64 `host:"width"`
	Height float64 `host:"height"`
}

// HomingKey is a homing key. A nil Type selects the profile's default
// homing marker.
type HomingKey struct {
	Type *string `host:"type"`
}

// SteppedCaps is a stepped caps lock key.
type SteppedCaps struct{}

// IsoVertical is an ISO enter key in vertical orientation.
type IsoVertical struct{}

// IsoHorizontal is an ISO enter key in horizontal orientation.
type IsoHorizontal struct{}

// shapeMapping is the mapping form of key shapes.
type shapeMapping struct {
	Shape  *string  `host:"shape"`
	Width  *float64 `host:"width"`
	Height *float64 `host:"height"`
	Type   *string  `host:"type"`
}

// shapeInput is a host value under trial, decoded lazily.
type shapeInput struct {
	v       any
	decoded bool
	m       *shapeMapping // nil if v is not a valid shape mapping
}

func (in *shapeInput) mapping() *shapeMapping {
	if !in.decoded {
		in.decoded = true
		if isMapping(in.v) {
			var m shapeMapping
			if err := decodeMapping(in.v, &m); err == nil {
				in.m = &m
			} else {
				tracer().Debugf("shape mapping: %v", err)
			}
		}
	}
	return in.m
}

// tagged returns the mapping of in, if it is tagged as kind or, for
// untagged mappings, if untagged is set.
func (in *shapeInput) tagged(kind layout.ShapeKind, untagged bool) *shapeMapping {
	m := in.mapping()
	if m == nil {
		return nil
	}
	if m.Shape == nil {
		if untagged {
			return m
		}
		return nil
	}
	if *m.Shape != kind.String() {
		return nil
	}
	return m
}

// isKind is true for a plain string naming kind.
func (in *shapeInput) isKind(kind layout.ShapeKind) bool {
	s, ok := str(in.v)
	return ok && s == kind.String()
}

// shapeTrial tries to convert a host value to one variant of key shapes.
// matched is false if the value does not have the structure of the
// variant.
type shapeTrial func(in *shapeInput) (s layout.Shape, matched bool, err error)

// shapeTrials lists the variants in the order they are tried. The order
// decides ambiguous inputs: an untagged mapping with width and height is
// a NoneKey.
var shapeTrials = []shapeTrial{
	trySized(layout.NoneKey, layout.None, true),
	trySized(layout.NormalKey, layout.Normal, false),
	trySized(layout.SpaceKey, layout.Space, false),
	tryHoming,
	tryPlain(layout.SteppedCapsKey, layout.SteppedCaps),
	tryPlain(layout.IsoVerticalKey, layout.IsoVertical),
	tryPlain(layout.IsoHorizontalKey, layout.IsoHorizontal),
}

func trySized(kind layout.ShapeKind, create func(w, h float64) layout.Shape, untagged bool) shapeTrial {
	return func(in *shapeInput) (layout.Shape, bool, error) {
		var w, h float64
		switch x := in.v.(type) {
		case NoneKey:
			w, h = x.Width, x.Height
		case *NoneKey:
			w, h = x.Width, x.Height
		case NormalKey:
			w, h = x.Width, x.Height
		case *NormalKey:
			w, h = x.Width, x.Height
		case SpaceKey:
			w, h = x.Width, x.Height
		case *SpaceKey:
			w, h = x.Width, x.Height
		default:
			m := in.tagged(kind, untagged)
			if m == nil || m.Width == nil || m.Height == nil || m.Type != nil {
				return layout.Shape{}, false, nil
			}
			return create(*m.Width, *m.Height), true, nil
		}
		if hostShapeKind(in.v) != kind {
			return layout.Shape{}, false, nil
		}
		return create(w, h), true, nil
	}
}

func hostShapeKind(v any) layout.ShapeKind {
	switch v.(type) {
	case NormalKey, *NormalKey:
		return layout.NormalKey
	case SpaceKey, *SpaceKey:
		return layout.SpaceKey
	}
	return layout.NoneKey
}

func tryHoming(in *shapeInput) (layout.Shape, bool, error) {
	var t *string
	switch x := in.v.(type) {
	case HomingKey:
		t = x.Type
	case *HomingKey:
		t = x.Type
	default:
		if in.isKind(layout.HomingKey) {
			return layout.Homing(nil), true, nil
		}
		m := in.tagged(layout.HomingKey, true)
		if m == nil || m.Width != nil || m.Height != nil {
			return layout.Shape{}, false, nil
		}
		if m.Shape == nil && m.Type == nil {
			return layout.Shape{}, false, nil
		}
		t = m.Type
	}
	if t == nil {
		return layout.Homing(nil), true, nil
	}
	h, err := ToHomingType(*t)
	if err != nil {
		return layout.Shape{}, true, err
	}
	return layout.Homing(&h), true, nil
}

func tryPlain(kind layout.ShapeKind, create func() layout.Shape) shapeTrial {
	return func(in *shapeInput) (layout.Shape, bool, error) {
		var matched bool
		switch in.v.(type) {
		case SteppedCaps, *SteppedCaps:
			matched = kind == layout.SteppedCapsKey
		case IsoVertical, *IsoVertical:
			matched = kind == layout.IsoVerticalKey
		case IsoHorizontal, *IsoHorizontal:
			matched = kind == layout.IsoHorizontalKey
		default:
			if in.isKind(kind) {
				matched = true
			} else if m := in.tagged(kind, false); m != nil {
				matched = m.Width == nil && m.Height == nil && m.Type == nil
			}
		}
		if !matched {
			return layout.Shape{}, false, nil
		}
		return create(), true, nil
	}
}

// ToKeyShape converts a host value to a key shape. The variants NoneKey,
// NormalKey, SpaceKey, HomingKey, SteppedCaps, IsoVertical and
// IsoHorizontal are tried in this order and the first one matching the
// structure of v wins. Besides the host objects, mappings tagged with a
// "shape" key (e.g. {"shape": "normal", "width": 2.25, "height": 1}) and
// the names of shapes without size are accepted.
func ToKeyShape(v any) (layout.Shape, error) {
	if s, ok := v.(layout.Shape); ok {
		return s, nil
	}
	in := &shapeInput{v: v}
	for _, try := range shapeTrials {
		s, matched, err := try(in)
		if err != nil {
			return layout.Shape{}, err
		}
		if matched {
			return s, nil
		}
	}
	return layout.Shape{}, typeMismatch("'%s' can not be converted to KeyShape", typeName(v))
}

// FromKeyShape returns the host object for a key shape.
func FromKeyShape(s layout.Shape) any {
	switch s.Kind {
	case layout.NoneKey:
		return NoneKey{Width: s.Width, Height: s.Height}
	case layout.NormalKey:
		return NormalKey{Width: s.Width, Height: s.Height}
	case layout.SpaceKey:
		return SpaceKey{Width: s.Width, Height: s.Height}
	case layout.HomingKey:
		if s.Homing == nil {
			return HomingKey{}
		}
		t := FromHomingType(*s.Homing)
		return HomingKey{Type: &t}
	case layout.SteppedCapsKey:
		return SteppedCaps{}
	case layout.IsoVerticalKey:
		return IsoVertical{}
	}
	return IsoHorizontal{}
}

package host

import (
	"github.com/npillmayer/keyset/core/dimen"
	"github.com/npillmayer/keyset/core/profile"
)

// Cylindrical is a profile with cylindrical sculpting, Depth in millimeters.
type Cylindrical struct {
	Depth float64 `host:"depth"`
}

// Spherical is a profile with spherical sculpting, Depth in millimeters.
type Spherical struct {
	Depth float64 `host:"depth"`
}

// Flat is a profile without sculpting.
type Flat struct{}

// Depth is always 0 for flat profiles.
func (Flat) Depth() float64 { return 0 }

type profileTypeMapping struct {
	Type  *string  `host:"type"`
	Depth *float64 `host:"depth"`
}

type profileTypeTrial func(v any, m *profileTypeMapping) (profile.ProfileType, bool)

// profileTypeTrials lists the variants in the order they are tried.
var profileTypeTrials = []profileTypeTrial{
	func(v any, m *profileTypeMapping) (profile.ProfileType, bool) {
		switch x := v.(type) {
		case Cylindrical:
			return profile.NewProfileType(profile.Cylindrical, dimen.FromMillimeters(x.Depth)), true
		case *Cylindrical:
			return profile.NewProfileType(profile.Cylindrical, dimen.FromMillimeters(x.Depth)), true
		}
		return sculpted(m, profile.Cylindrical, true)
	},
	func(v any, m *profileTypeMapping) (profile.ProfileType, bool) {
		switch x := v.(type) {
		case Spherical:
			return profile.NewProfileType(profile.Spherical, dimen.FromMillimeters(x.Depth)), true
		case *Spherical:
			return profile.NewProfileType(profile.Spherical, dimen.FromMillimeters(x.Depth)), true
		}
		return sculpted(m, profile.Spherical, false)
	},
	func(v any, m *profileTypeMapping) (profile.ProfileType, bool) {
		switch v.(type) {
		case Flat, *Flat:
			return profile.NewProfileType(profile.Flat, 0), true
		}
		if s, ok := str(v); ok && s == profile.Flat.String() {
			return profile.NewProfileType(profile.Flat, 0), true
		}
		if m != nil && m.Type != nil && *m.Type == profile.Flat.String() && m.Depth == nil {
			return profile.NewProfileType(profile.Flat, 0), true
		}
		return profile.ProfileType{}, false
	},
}

// sculpted matches mappings with a depth, tagged with the name of kind.
// Untagged mappings match if untagged is set.
func sculpted(m *profileTypeMapping, kind profile.Type, untagged bool) (profile.ProfileType, bool) {
	if m == nil || m.Depth == nil {
		return profile.ProfileType{}, false
	}
	if (m.Type == nil && !untagged) || (m.Type != nil && *m.Type != kind.String()) {
		return profile.ProfileType{}, false
	}
	return profile.NewProfileType(kind, dimen.FromMillimeters(*m.Depth)), true
}

// ToProfileType converts a host value to a profile type. The variants
// Cylindrical, Spherical and Flat are tried in this order. Besides the host
// objects, mappings like {"type": "spherical", "depth": 0.8} and the string
// "flat" are accepted. Depths are in millimeters.
func ToProfileType(v any) (profile.ProfileType, error) {
	if pt, ok := v.(profile.ProfileType); ok {
		return pt, nil
	}
	var m *profileTypeMapping
	if isMapping(v) {
		var decoded profileTypeMapping
		if err := decodeMapping(v, &decoded); err == nil {
			m = &decoded
		}
	}
	for _, try := range profileTypeTrials {
		if pt, ok := try(v, m); ok {
			return pt, nil
		}
	}
	return profile.ProfileType{}, typeMismatch("'%s' can not be converted to ProfileType", typeName(v))
}

// FromProfileType returns the host object of a profile type, with the
// depth in millimeters.
func FromProfileType(pt profile.ProfileType) any {
	switch pt.Kind {
	case profile.Cylindrical:
		return Cylindrical{Depth: pt.Depth.Millimeters()}
	case profile.Spherical:
		return Spherical{Depth: pt.Depth.Millimeters()}
	}
	return Flat{}
}

// ProfileFormat is the format of a profile document.
type ProfileFormat int8

// Profile formats
const (
	TOML ProfileFormat = iota
	JSON
)

func (f ProfileFormat) String() string {
	if f == JSON {
		return "json"
	}
	return "toml"
}

// ToProfileFormat converts a host value to a profile format. nil selects
// the default, TOML.
func ToProfileFormat(v any) (ProfileFormat, error) {
	switch x := v.(type) {
	case nil:
		return TOML, nil
	case ProfileFormat:
		return x, nil
	}
	s, ok := str(v)
	if !ok {
		return TOML, typeMismatch("'%s' can not be converted to ProfileFormat", typeName(v))
	}
	switch s {
	case "toml":
		return TOML, nil
	case "json":
		return JSON, nil
	}
	return TOML, valueError("'%s' is not a valid format, expected 'toml' or 'json'.", s)
}

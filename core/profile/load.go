package profile

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/npillmayer/keyset/core/dimen"
	"github.com/pelletier/go-toml/v2"
)

// Profile documents give lengths in millimeters. Required values are
// pointers, so missing keys can be told from zero values.

type marginDoc struct {
	Top    *float64 `toml:"top" json:"top"`
	Right  *float64 `toml:"right" json:"right"`
	Bottom *float64 `toml:"bottom" json:"bottom"`
	Left   *float64 `toml:"left" json:"left"`
}

type legendDoc struct {
	Height *float64   `toml:"height" json:"height"`
	Margin *marginDoc `toml:"margin" json:"margin"`
}

type surfaceDoc struct {
	Width   *float64 `toml:"width" json:"width"`
	Height  *float64 `toml:"height" json:"height"`
	Radius  *float64 `toml:"radius" json:"radius"`
	YOffset *float64 `toml:"y-offset" json:"y-offset"`
}

type homingDoc struct {
	Default *string `toml:"default" json:"default"`
	Scoop   *struct {
		Depth *float64 `toml:"depth" json:"depth"`
	} `toml:"scoop" json:"scoop"`
	Bar *struct {
		Width   *float64 `toml:"width" json:"width"`
		Height  *float64 `toml:"height" json:"height"`
		YOffset *float64 `toml:"y-offset" json:"y-offset"`
	} `toml:"bar" json:"bar"`
	Bump *struct {
		Diameter *float64 `toml:"diameter" json:"diameter"`
		YOffset  *float64 `toml:"y-offset" json:"y-offset"`
	} `toml:"bump" json:"bump"`
}

type profileDoc struct {
	Type   *string     `toml:"type" json:"type"`
	Depth  *float64    `toml:"depth" json:"depth"`
	Bottom *surfaceDoc `toml:"bottom" json:"bottom"`
	Top    *surfaceDoc `toml:"top" json:"top"`
	Legend *struct {
		Alpha    *legendDoc `toml:"alpha" json:"alpha"`
		Symbol   *legendDoc `toml:"symbol" json:"symbol"`
		Modifier *legendDoc `toml:"modifier" json:"modifier"`
	} `toml:"legend" json:"legend"`
	Homing *homingDoc `toml:"homing" json:"homing"`
}

// FromTOML decodes a profile from a TOML document.
func FromTOML(data []byte) (*Profile, error) {
	var doc profileDoc
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("unknown key: %s", serr.String())
		}
		return nil, err
	}
	return doc.profile()
}

// FromJSON decodes a profile from a JSON document.
func FromJSON(data []byte) (*Profile, error) {
	var doc profileDoc
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.profile()
}

// sectionError is a validation error naming a key and the section it is
// missing from or invalid in.
type sectionError struct {
	missing bool
	key     string
	section string
}

func (e sectionError) Error() string {
	where := "profile"
	if e.section != "" {
		where = "section [" + e.section + "]"
	}
	if e.missing {
		return fmt.Sprintf("no '%s' key in %s", e.key, where)
	}
	return fmt.Sprintf("invalid value for '%s' in %s", e.key, where)
}

func required(v *float64, key, section string) (dimen.Dimen, error) {
	if v == nil {
		return 0, sectionError{missing: true, key: key, section: section}
	}
	return positive(v, key, section)
}

func optional(v *float64, dflt dimen.Dimen) dimen.Dimen {
	if v == nil {
		return dflt
	}
	return dimen.FromMillimeters(*v)
}

func positive(v *float64, key, section string) (dimen.Dimen, error) {
	if *v < 0 {
		return 0, sectionError{key: key, section: section}
	}
	return dimen.FromMillimeters(*v), nil
}

func (doc *profileDoc) profile() (*Profile, error) {
	p := Default()
	var err error
	if doc.Type == nil {
		return nil, sectionError{missing: true, key: "type"}
	}
	kind, err := ParseType(*doc.Type)
	if err != nil {
		return nil, sectionError{key: "type"}
	}
	var depth dimen.Dimen
	if kind != Flat || doc.Depth != nil {
		if depth, err = required(doc.Depth, "depth", ""); err != nil {
			return nil, err
		}
	}
	p.Type = NewProfileType(kind, depth)
	//
	if doc.Bottom == nil {
		return nil, fmt.Errorf("no [bottom] section in profile")
	}
	if p.Bottom.Size.X, err = required(doc.Bottom.Width, "width", "bottom"); err != nil {
		return nil, err
	}
	if p.Bottom.Size.Y, err = required(doc.Bottom.Height, "height", "bottom"); err != nil {
		return nil, err
	}
	if p.Bottom.Radius, err = required(doc.Bottom.Radius, "radius", "bottom"); err != nil {
		return nil, err
	}
	if doc.Bottom.YOffset != nil {
		return nil, sectionError{key: "y-offset", section: "bottom"}
	}
	//
	if doc.Top == nil {
		return nil, fmt.Errorf("no [top] section in profile")
	}
	if p.Top.Size.X, err = required(doc.Top.Width, "width", "top"); err != nil {
		return nil, err
	}
	if p.Top.Size.Y, err = required(doc.Top.Height, "height", "top"); err != nil {
		return nil, err
	}
	if p.Top.Radius, err = required(doc.Top.Radius, "radius", "top"); err != nil {
		return nil, err
	}
	p.Top.YOffset = optional(doc.Top.YOffset, 0)
	if p.Top.Size.X > p.Bottom.Size.X || p.Top.Size.Y > p.Bottom.Size.Y {
		tracer().Infof("top surface of profile is larger than its bottom surface")
	}
	//
	if doc.Legend == nil {
		return nil, fmt.Errorf("no [legend] section in profile")
	}
	for _, l := range []struct {
		name string
		doc  *legendDoc
		geom *LegendGeom
	}{
		{"alpha", doc.Legend.Alpha, &p.LegendGeom.Alpha},
		{"symbol", doc.Legend.Symbol, &p.LegendGeom.Symbol},
		{"modifier", doc.Legend.Modifier, &p.LegendGeom.Modifier},
	} {
		if l.doc == nil {
			return nil, fmt.Errorf("no %s section in section [legend]", l.name)
		}
		if err = l.doc.decode(l.name, l.geom); err != nil {
			return nil, err
		}
	}
	//
	if doc.Homing != nil {
		if err = doc.Homing.decode(&p.Homing); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (ld *legendDoc) decode(name string, geom *LegendGeom) (err error) {
	section := "legend." + name
	if geom.Height, err = required(ld.Height, "height", section); err != nil {
		return err
	}
	if ld.Margin == nil {
		return nil // keep default margin
	}
	m := ld.Margin
	for _, side := range []struct {
		key string
		v   *float64
		d   *dimen.Dimen
	}{
		{"top", m.Top, &geom.Margin.Top},
		{"right", m.Right, &geom.Margin.Right},
		{"bottom", m.Bottom, &geom.Margin.Bottom},
		{"left", m.Left, &geom.Margin.Left},
	} {
		if side.v != nil { // margins may be negative
			*side.d = dimen.FromMillimeters(*side.v)
		}
	}
	return nil
}

func (hd *homingDoc) decode(h *HomingProps) (err error) {
	if hd.Default == nil {
		return sectionError{missing: true, key: "default", section: "homing"}
	}
	var ok bool
	if h.Default, ok = ParseHomingType(*hd.Default); !ok {
		return sectionError{key: "default", section: "homing"}
	}
	if hd.Scoop != nil && hd.Scoop.Depth != nil {
		if h.Scoop.Depth, err = positive(hd.Scoop.Depth, "depth", "homing.scoop"); err != nil {
			return err
		}
	}
	if b := hd.Bar; b != nil {
		h.Bar.Size.X = optional(b.Width, h.Bar.Size.X)
		h.Bar.Size.Y = optional(b.Height, h.Bar.Size.Y)
		h.Bar.YOffset = optional(b.YOffset, h.Bar.YOffset)
		if h.Bar.Size.X < 0 {
			return sectionError{key: "width", section: "homing.bar"}
		}
		if h.Bar.Size.Y < 0 {
			return sectionError{key: "height", section: "homing.bar"}
		}
	}
	if b := hd.Bump; b != nil {
		h.Bump.Diameter = optional(b.Diameter, h.Bump.Diameter)
		h.Bump.YOffset = optional(b.YOffset, h.Bump.YOffset)
		if h.Bump.Diameter < 0 {
			return sectionError{key: "diameter", section: "homing.bump"}
		}
	}
	return nil
}

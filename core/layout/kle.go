package layout

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/npillmayer/keyset/core/color"
	"github.com/npillmayer/keyset/core/profile"
)

// kleSlots is the number of legend positions of a KLE key.
const kleSlots = 12

// kleToOrd maps KLE legend positions to an ordered list of legend positions
// (3x3 grid of the keycap face followed by the three front legends), per KLE
// alignment flags.
var kleToOrd = [8][kleSlots]int{
	{0, 6, 2, 8, 9, 11, 3, 5, 1, 4, 7, 10}, // 0 = no centering
	{1, 7, 0, 2, 9, 11, 4, 3, 5, 6, 8, 10}, // 1 = center x
	{3, 0, 5, 1, 9, 11, 2, 6, 4, 7, 8, 10}, // 2 = center y
	{4, 0, 1, 2, 9, 11, 3, 5, 6, 7, 8, 10}, // 3 = center x & y
	{0, 6, 2, 8, 10, 9, 3, 5, 1, 4, 7, 11}, // 4 = center front (default)
	{1, 7, 0, 2, 10, 3, 4, 5, 6, 8, 9, 11}, // 5 = center front & x
	{3, 0, 5, 1, 10, 2, 6, 7, 4, 8, 9, 11}, // 6 = center front & y
	{4, 0, 1, 2, 10, 3, 5, 6, 7, 8, 9, 11}, // 7 = center front & x & y
}

// realign reorders values given in KLE order for alignment a.
func realign[T any](values [kleSlots]T, a int) (ord [kleSlots]T) {
	if a < 0 || a >= len(kleToOrd) {
		a = 0
	}
	for i, pos := range kleToOrd[a] {
		ord[pos] = values[i]
	}
	return
}

// kleProps are the properties of a KLE property object.
type kleProps struct {
	X  *float64  `json:"x"`
	Y  *float64  `json:"y"`
	W  *float64  `json:"w"`
	H  *float64  `json:"h"`
	X2 *float64  `json:"x2"`
	Y2 *float64  `json:"y2"`
	W2 *float64  `json:"w2"`
	H2 *float64  `json:"h2"`
	L  *bool     `json:"l"`
	N  *bool     `json:"n"`
	D  *bool     `json:"d"`
	C  *string   `json:"c"`
	T  *string   `json:"t"`
	A  *int      `json:"a"`
	P  *string   `json:"p"`
	F  *float64  `json:"f"`
	F2 *float64  `json:"f2"`
	FA []float64 `json:"fa"`
	R  *float64  `json:"r"`
}

// kleState is the state of the KLE reader: properties for the next key,
// some of which persist across keys.
type kleState struct {
	x, y, w, h, x2, y2, w2, h2 float64
	l, n, d                    bool
	c, t, p                    string
	a                          int
	f, f2                      float64
	fa                         []float64
}

func newKleState() *kleState {
	s := &kleState{c: "#cccccc", t: "#000000", a: 4, f: 3, f2: 3}
	s.resetKey()
	return s
}

func (s *kleState) resetKey() {
	s.w, s.h, s.x2, s.y2, s.w2, s.h2 = 1, 1, 0, 0, 1, 1
	s.l, s.n, s.d = false, false, false
}

func (s *kleState) apply(p *kleProps) {
	if p.X != nil {
		s.x += *p.X
	}
	if p.Y != nil {
		s.y += *p.Y
	}
	set := func(dst *float64, v *float64, dflt float64) {
		if v != nil {
			*dst = *v
		} else {
			*dst = dflt
		}
	}
	set(&s.w, p.W, 1)
	set(&s.h, p.H, 1)
	set(&s.x2, p.X2, 0)
	set(&s.y2, p.Y2, 0)
	set(&s.w2, p.W2, s.w)
	set(&s.h2, p.H2, s.h)
	s.l = p.L != nil && *p.L
	s.n = p.N != nil && *p.N
	s.d = p.D != nil && *p.D
	if p.C != nil {
		s.c = *p.C
	}
	if p.T != nil {
		s.t = *p.T
	}
	if p.A != nil {
		s.a = *p.A
	}
	if p.P != nil {
		s.p = *p.P
	}
	if p.F != nil {
		s.f, s.f2, s.fa = *p.F, *p.F, nil
	}
	if p.F2 != nil {
		s.f2 = *p.F2
	}
	if p.FA != nil {
		s.fa = p.FA
	}
	if p.R != nil && *p.R != 0 {
		tracer().Infof("KLE: rotated keys are not supported, ignoring rotation")
	}
}

// FromKLE parses a KLE document into a list of keys, in document order.
func FromKLE(data []byte) ([]Key, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	state := newKleState()
	var keys []Key
	for r, row := range rows {
		row = bytes.TrimSpace(row)
		if len(row) > 0 && row[0] == '{' {
			if r != 0 {
				return nil, fmt.Errorf("metadata in row %d, expected it as the first element only", r)
			}
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(row, &items); err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		for i, item := range items {
			item = bytes.TrimSpace(item)
			if len(item) > 0 && item[0] == '{' {
				var props kleProps
				if err := json.Unmarshal(item, &props); err != nil {
					return nil, fmt.Errorf("row %d, item %d: %w", r, i, err)
				}
				state.apply(&props)
				continue
			}
			var legends string
			if err := json.Unmarshal(item, &legends); err != nil {
				return nil, fmt.Errorf("row %d, item %d: expected a key or a property object: %w", r, i, err)
			}
			key, err := state.key(legends)
			if err != nil {
				return nil, fmt.Errorf("row %d, item %d: %w", r, i, err)
			}
			keys = append(keys, key)
			state.x += state.w
			state.resetKey()
		}
		state.x = 0
		state.y++
	}
	tracer().Debugf("KLE document holds %d keys", len(keys))
	return keys, nil
}

func (s *kleState) key(legendText string) (Key, error) {
	key := NewKey()
	key.X, key.Y = s.x, s.y
	key.Shape = s.shape()
	if key.Shape.Kind == IsoVerticalKey && s.x2 < 0 {
		key.X += s.x2
	}
	var err error
	if key.Color, err = color.Parse(s.c); err != nil {
		return key, fmt.Errorf("invalid key color %q", s.c)
	}
	var text, colors [kleSlots]string
	copy(text[:], strings.Split(legendText, "\n"))
	copy(colors[:], strings.Split(s.t, "\n"))
	deflt, err := color.Parse(colors[0])
	if err != nil {
		deflt = color.DefaultLegend
	}
	var sizes [kleSlots]int
	for i := range sizes {
		switch {
		case i < len(s.fa) && s.fa[i] > 0:
			sizes[i] = int(s.fa[i])
		case i == 0:
			sizes[i] = int(s.f)
		default:
			sizes[i] = int(s.f2)
		}
	}
	text, colors, sizes = realign(text, s.a), realign(colors, s.a), realign(sizes, s.a)
	for i := 0; i < LegendCount; i++ {
		if text[i] == "" {
			continue
		}
		c := deflt
		if colors[i] != "" {
			if c, err = color.Parse(colors[i]); err != nil {
				return key, fmt.Errorf("invalid legend color %q", colors[i])
			}
		}
		key.Legends[i] = NewLegend(text[i], sizes[i], c)
	}
	for i := LegendCount; i < kleSlots; i++ {
		if text[i] != "" {
			tracer().Infof("KLE: front legend %q is not supported, ignoring it", text[i])
		}
	}
	return key, nil
}

func isclose(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func (s *kleState) shape() Shape {
	switch {
	case s.l && isclose(s.w, 1.25) && isclose(s.h, 1) && isclose(s.x2, 0) && isclose(s.y2, 0) &&
		isclose(s.w2, 1.75) && isclose(s.h2, 1):
		return SteppedCaps()
	case !s.l && isclose(s.w, 1.25) && isclose(s.h, 2) && isclose(s.x2, -0.25) && isclose(s.y2, 0) &&
		isclose(s.w2, 1.5) && isclose(s.h2, 1):
		return IsoVertical()
	case !s.l && isclose(s.w, 1.5) && isclose(s.h, 1) && isclose(s.x2, 0.25) && isclose(s.y2, 0) &&
		isclose(s.w2, 1.25) && isclose(s.h2, 2):
		return IsoHorizontal()
	}
	if s.l || !isclose(s.x2, 0) || !isclose(s.y2, 0) || !isclose(s.w2, s.w) || !isclose(s.h2, s.h) {
		tracer().Infof("KLE: unsupported secondary key geometry, ignoring it")
	}
	p := strings.ToLower(s.p)
	var homing *profile.HomingType
	switch {
	case containsAny(p, "deep", "dish", "scoop"):
		homing = homingPtr(profile.Scoop)
	case containsAny(p, "bar", "line"):
		homing = homingPtr(profile.Bar)
	case containsAny(p, "bump", "dot", "nub", "nipple"):
		homing = homingPtr(profile.Bump)
	}
	switch {
	case homing != nil:
		return Homing(homing)
	case s.n:
		return Homing(nil)
	case s.d:
		return None(s.w, s.h)
	case strings.Contains(p, "space"):
		return Space(s.w, s.h)
	}
	return Normal(s.w, s.h)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func homingPtr(h profile.HomingType) *profile.HomingType {
	return &h
}

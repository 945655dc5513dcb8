package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is an RGB color with components in [0,1].
type Color struct {
	R, G, B float64
}

// Some pre-defined colors
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	// DefaultKey is the color of a key if none is given.
	DefaultKey = Color{0xcc / 255.0, 0xcc / 255.0, 0xcc / 255.0}
	// DefaultLegend is the color of a legend if none is given.
	DefaultLegend = Black
)

// ComponentError is returned when a color component lies outside of [0,1].
type ComponentError struct {
	Component string // "r", "g" or "b"
	Value     float64
}

func (e ComponentError) Error() string {
	return fmt.Sprintf("invalid value for '%s' for Color(): '%s'", e.Component,
		strconv.FormatFloat(e.Value, 'f', -1, 64))
}

// New creates a color from its components. Each component has to be in
// [0,1], otherwise a ComponentError is returned for the first offending
// component.
func New(r, g, b float64) (Color, error) {
	for i, v := range [3]float64{r, g, b} {
		if !(v >= 0 && v <= 1) { // NaN fails both comparisons
			return Color{}, ComponentError{Component: "rgb"[i : i+1], Value: v}
		}
	}
	return Color{r, g, b}, nil
}

// Components returns the (r, g, b) triple.
func (c Color) Components() [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

// Hex returns the hex notation of c, as in #cc00ff.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) String() string {
	return c.Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{c.R, c.G, c.B}
}

// Lighter mixes c with white. amount is in [0,1].
func (c Color) Lighter(amount float64) Color {
	return fromColorful(c.colorful().BlendLab(colorful.Color{R: 1, G: 1, B: 1}, amount))
}

// Darker mixes c with black. amount is in [0,1].
func (c Color) Darker(amount float64) Color {
	return fromColorful(c.colorful().BlendLab(colorful.Color{}, amount))
}

// Highlight returns a color for the top surface of a key with base color c:
// light keys get a slightly darker top, dark keys a slightly lighter one.
func (c Color) Highlight(amount float64) Color {
	if l, _, _ := c.colorful().Lab(); l > 0.5 {
		return c.Darker(amount)
	}
	return c.Lighter(amount)
}

// --- Parsing ---------------------------------------------------------------

// Parse parses a CSS color string.
//
// Accepted are hex colors with 3, 4, 6 or 8 digits (alpha is ignored),
// the functional notations rgb() and rgba() with integer or percentage
// components, and CSS color names.
func Parse(s string) (Color, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	switch {
	case str == "":
		return Color{}, fmt.Errorf("empty color string")
	case strings.HasPrefix(str, "#"):
		return parseHex(str)
	case strings.HasPrefix(str, "rgb(") || strings.HasPrefix(str, "rgba("):
		return parseFunctional(str)
	}
	if c, ok := colornames.Map[str]; ok {
		return Color{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}, nil
	}
	tracer().Debugf("color string %q is neither hex, rgb() nor a color name", s)
	return Color{}, fmt.Errorf("unknown color name %q", s)
}

// MustParse is like Parse, but panics on error.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (Color, error) {
	switch len(s) {
	case 5: // #rgba
		s = s[:4]
	case 9: // #rrggbbaa
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return Color{c.R, c.G, c.B}, nil
}

func parseFunctional(s string) (Color, error) {
	lpar, rpar := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if rpar < lpar {
		return Color{}, fmt.Errorf("missing closing parenthesis in %q", s)
	}
	args := strings.FieldsFunc(s[lpar+1:rpar], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("expected 3 or 4 arguments in %q", s)
	}
	var comp [3]float64
	for i := 0; i < 3; i++ {
		v, err := parseComponent(args[i])
		if err != nil {
			return Color{}, err
		}
		comp[i] = v
	}
	return New(comp[0], comp[1], comp[2])
}

func parseComponent(arg string) (float64, error) {
	if pcnt := strings.TrimSuffix(arg, "%"); pcnt != arg {
		v, err := strconv.ParseFloat(pcnt, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage %q", arg)
		}
		return v / 100, nil
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid color component %q", arg)
	}
	return v / 255, nil
}

package host

import (
	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/core/color"
)

const colorTypeMessage = "color must be a mapping with 'r', 'g', 'b' keys, a sequence of 3 or 4 integers, or a hex string"

// ToColor converts a host value to a color. Accepted are, in this order,
// a mapping with keys "r", "g" and "b", a sequence of 3 or 4 numbers (the
// 4th is alpha and is ignored) and a CSS color string. Components have to
// lie in [0,1]; they are never clamped.
func ToColor(v any) (color.Color, error) {
	if c, ok := v.(color.Color); ok {
		return colorFromComponents(c.R, c.G, c.B)
	}
	if r, ok := mappingItem(v, "r"); ok {
		g, okg := mappingItem(v, "g")
		b, okb := mappingItem(v, "b")
		if !okg || !okb {
			return color.Color{}, typeMismatch("color mapping needs keys 'r', 'g' and 'b'")
		}
		return colorFromComponents(r, g, b)
	}
	if r, ok := sequenceItem(v, 0); ok {
		g, okg := sequenceItem(v, 1)
		b, okb := sequenceItem(v, 2)
		if !okg || !okb {
			return color.Color{}, typeMismatch("color sequence needs at least 3 items")
		}
		return colorFromComponents(r, g, b)
	}
	if s, ok := str(v); ok {
		c, err := color.Parse(s)
		if err != nil {
			return color.Color{}, core.WrapError(err, core.ERANGE, "invalid color string")
		}
		return c, nil
	}
	return color.Color{}, typeMismatch(colorTypeMessage)
}

func colorFromComponents(r, g, b any) (color.Color, error) {
	var rgb [3]float64
	for i, x := range [3]any{r, g, b} {
		n, ok := number(x)
		if !ok {
			return color.Color{}, typeMismatch("color component '%s' must be a number, is %s",
				"rgb"[i:i+1], typeName(x))
		}
		rgb[i] = n
	}
	c, err := color.New(rgb[0], rgb[1], rgb[2])
	if err != nil {
		return color.Color{}, core.ErrorWithCode(err, core.ERANGE)
	}
	return c, nil
}

// FromColor returns the (r, g, b) triple of c, whichever form it was
// converted from.
func FromColor(c color.Color) [3]float64 {
	return c.Components()
}

/*
Package color implements the RGB colors used for keys and legends.

Components are floating point values in the closed interval [0,1]. Colors are
never clamped: constructing a color from an out-of-range component is an
error. Strings are parsed as CSS colors (hex notation, rgb() functional
notation, or a CSS color name).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package color

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'keyset.color'.
func tracer() tracing.Trace {
	return tracing.Select("keyset.color")
}

/*
Package drawing renders keys of a layout.

A Stencil holds everything a rendering needs besides the keys: profile,
font, scale and a few switches. Stencil.Draw turns a list of keys into a
Drawing, a display list of filled and stroked paths in dots (1/1000 of a
key unit, Y axis pointing down). Drawings are immutable and are exported
to SVG, PNG, PDF and AI (Adobe Illustrator, which reads PDF).

Problems which do not prevent a drawing, e.g. a legend which had to be
squished to fit on its key, are reported as warnings together with the
drawing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package drawing

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'keyset.drawing'.
func tracer() tracing.Trace {
	return tracing.Select("keyset.drawing")
}

/*
Package layout holds the keys of a keyboard layout.

A key has a position and a shape, both measured in key units (1.0 is the
spacing of a standard key), a color and a fixed number of legend slots.
Legend slots are numbered row by row on the keycap face, from the top
left to the bottom right corner:

    0 1 2
    3 4 5
    6 7 8

Layouts are usually read from KLE documents, the JSON format of the
keyboard layout editor (keyboard-layout-editor.com).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'keyset.layout'.
func tracer() tracing.Trace {
	return tracing.Select("keyset.layout")
}

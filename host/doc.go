/*
Package host converts between the dynamically typed values of a scripting
or document host and the typed values of the keyset engine.

Host values are what a host embedding hands over at the boundary: maps
with string keys, slices and arrays, strings, numbers of any Go numeric
kind, booleans, nil, and the host objects defined in this package
(NormalKey, Legend, Cylindrical, ...), as values or pointers. Converters
named ToXxx turn host values into engine values and validate them;
converters named FromXxx turn engine values back into host values.

Errors carry one of the error classes of package core, so clients can tell
a value of the wrong shape (core.ETYPE) from an invalid value (core.ERANGE),
malformed content (core.EPARSE), a failing file or stream (core.EIO) and a
drawing which cannot be composed (core.ERENDER). Non-fatal problems found
while drawing are delivered as warnings of class core.EWARNING.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package host

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'keyset.host'.
func tracer() tracing.Trace {
	return tracing.Select("keyset.host")
}

/*
Package profile describes the physical shape of a family of keycaps.

A profile holds the size and corner radius of the bottom and top surfaces
of a 1u key, the sculpting of the top surface (cylindrical, spherical or
flat), the geometry of legends for the three legend classes and the
dimensions of homing markers. All lengths are held as dimen.Dimen; profile
files give them in millimeters.

Profiles are read from TOML or JSON documents:

    type = "cylindrical"
    depth = 0.5

    [bottom]
    width = 18.29
    height = 18.29
    radius = 0.38

    [top]
    width = 11.81
    height = 13.91
    radius = 1.52
    y-offset = -1.62

    [legend.alpha]
    height = 4.84
    margin = { top = 0.5, right = 0.5, bottom = 0.5, left = 0.5 }

    [homing]
    default = "scoop"
    scoop = { depth = 1.5 }
    bar = { width = 3.85, height = 0.4, y-offset = 5.05 }
    bump = { diameter = 0.4, y-offset = -0.2 }

Sections [legend.symbol] and [legend.modifier] are given like [legend.alpha].

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package profile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'keyset.profile'.
func tracer() tracing.Trace {
	return tracing.Select("keyset.profile")
}

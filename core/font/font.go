/*
Package font is for font handling.

A Font wraps a parsed TrueType or OpenType font. It reports the vertical
metrics needed to place legends on a keycap, and hands out glyph outlines
and advances in font design units. Go's "x/image/font/sfnt" does the
parsing; fonts are safe for concurrent use, every call allocates its own
sfnt.Buffer.

If no font is given for a drawing, the Go Regular font is used. It is always
present.

Font collections (*.ttc) are not supported, fonts have to be single-face
font files.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"errors"
	"math"
	"os"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces to tracing key 'keyset.font'.
func tracer() tracing.Trace {
	return tracing.Select("keyset.font")
}

// Font is a scalable font. All metrics are in font design units, with the
// Y axis pointing up.
type Font struct {
	Fontname string     // full name of the font, "unknown" if unnamed
	Family   string     // family name, "unknown" if unnamed
	Filepath string     // file path, empty if parsed from bytes
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
	metrics  Metrics
}

// Metrics holds the vertical metrics of a font in font design units.
// Descender is given as a positive distance below the baseline.
type Metrics struct {
	EmSize     float64
	CapHeight  float64
	XHeight    float64
	Ascender   float64
	Descender  float64
	LineGap    float64
	LineHeight float64
	slope      float64
	hasSlope   bool
}

// Load reads and parses a font file.
func Load(fontfile string) (*Font, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := Parse(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// Parse parses the bytes of a TrueType or OpenType font.
func Parse(fbytes []byte) (f *Font, err error) {
	if len(fbytes) == 0 {
		return nil, errors.New("empty font data")
	}
	f = &Font{Binary: fbytes}
	if f.SFNT, err = sfnt.Parse(f.Binary); err != nil {
		return nil, err
	}
	var b sfnt.Buffer
	f.Fontname = nameOrUnknown(f.SFNT, &b, sfnt.NameIDFull)
	f.Family = nameOrUnknown(f.SFNT, &b, sfnt.NameIDFamily)
	if f.metrics, err = readMetrics(f.SFNT, &b); err != nil {
		return nil, err
	}
	tracer().Debugf("parsed font %q, %d glyphs, em size %g", f.Fontname, f.NumGlyphs(), f.metrics.EmSize)
	return f, nil
}

func nameOrUnknown(sf *sfnt.Font, b *sfnt.Buffer, id sfnt.NameID) string {
	if name, err := sf.Name(b, id); err == nil && name != "" {
		return name
	}
	return "unknown"
}

func readMetrics(sf *sfnt.Font, b *sfnt.Buffer) (Metrics, error) {
	upem := sf.UnitsPerEm()
	m, err := sf.Metrics(b, fixed.I(int(upem)), xfont.HintingNone)
	if err != nil {
		return Metrics{}, err
	}
	metrics := Metrics{
		EmSize:     float64(upem),
		CapHeight:  units(m.CapHeight),
		XHeight:    units(m.XHeight),
		Ascender:   units(m.Ascent),
		Descender:  units(m.Descent),
		LineHeight: units(m.Height),
	}
	metrics.LineGap = metrics.LineHeight - metrics.Ascender - metrics.Descender
	metrics.CapHeight = capHeightOrFallback(metrics)
	if post := sf.PostTable(); post != nil && post.ItalicAngle != 0 {
		metrics.slope, metrics.hasSlope = -post.ItalicAngle, true
	} else if m.CaretSlope.Y != 0 {
		run, rise := float64(m.CaretSlope.X), float64(m.CaretSlope.Y)
		metrics.slope = math.Atan2(run, rise) * 180 / math.Pi
		metrics.hasSlope = true
	}
	return metrics, nil
}

// capHeightOrFallback returns the cap height of m. Fonts with an OS/2 table
// older than version 2 do not report it; then the ascender or, lacking
// that, the x-height stands in.
func capHeightOrFallback(m Metrics) float64 {
	switch {
	case m.CapHeight > 0:
		return m.CapHeight
	case m.Ascender > 0:
		return m.Ascender
	case m.XHeight > 0:
		return m.XHeight
	}
	return m.EmSize
}

// units converts a value scaled at ppem = units per em to font units.
func units(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// Metrics returns the vertical metrics of f.
func (f *Font) Metrics() Metrics {
	return f.metrics
}

// EmSize returns the number of font units per em.
func (f *Font) EmSize() float64 { return f.metrics.EmSize }

// CapHeight returns the height of capital letters.
func (f *Font) CapHeight() float64 { return f.metrics.CapHeight }

// XHeight returns the height of lowercase letters without ascenders.
func (f *Font) XHeight() float64 { return f.metrics.XHeight }

// Ascender returns the typographic ascender.
func (f *Font) Ascender() float64 { return f.metrics.Ascender }

// Descender returns the typographic descender as a positive value.
func (f *Font) Descender() float64 { return f.metrics.Descender }

// LineGap returns the extra space between lines.
func (f *Font) LineGap() float64 { return f.metrics.LineGap }

// LineHeight returns the baseline-to-baseline distance.
func (f *Font) LineHeight() float64 { return f.metrics.LineHeight }

// Slope returns the italic angle of the font in degrees clockwise from the
// vertical. ok is false if the font does not tell.
func (f *Font) Slope() (deg float64, ok bool) {
	return f.metrics.slope, f.metrics.hasSlope
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.SFNT.NumGlyphs()
}

// --- Fallback font ---------------------------------------------------------

// Default returns a font to be used if no other font is given. It is
// always present. Currently we use Go Sans.
func Default() *Font {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *Font

func loadFallbackFont() *Font {
	gofont, err := Parse(goregular.TTF)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Filepath = "internal"
	return gofont
}

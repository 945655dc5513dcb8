package host

import (
	"os"

	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/core/dimen"
	"github.com/npillmayer/keyset/core/font"
	"github.com/npillmayer/keyset/core/profile"
	"github.com/npillmayer/keyset/engine/drawing"
)

// WarningHandler receives the non-fatal problems found while drawing, one
// at a time. Warnings are errors of class core.EWARNING.
type WarningHandler func(warning error)

// DefaultWarningHandler traces warnings.
func DefaultWarningHandler(warning error) {
	tracer().Infof("warning: %v", warning)
}

// DrawingOption configures a drawing.
type DrawingOption func(*drawingOptions)

type drawingOptions struct {
	stencil   drawing.Stencil
	onWarning WarningHandler
}

// WithProfile selects the keycap profile.
func WithProfile(p *profile.Profile) DrawingOption {
	return func(o *drawingOptions) {
		if p != nil {
			o.stencil.Profile = p
		}
	}
}

// WithFont selects the legend font.
func WithFont(f *font.Font) DrawingOption {
	return func(o *drawingOptions) {
		if f != nil {
			o.stencil.Font = f
		}
	}
}

// WithScale sets the scale of the drawing, 1.0 drawing a key unit as
// 19.05 mm.
func WithScale(scale float64) DrawingOption {
	return func(o *drawingOptions) {
		o.stencil.Scale = scale
	}
}

// WithOutlineWidth sets the width of key outlines in millimeters.
func WithOutlineWidth(mm float64) DrawingOption {
	return func(o *drawingOptions) {
		o.stencil.OutlineWidth = dimen.FromMillimeters(mm)
	}
}

// WithShowKeys selects whether key shapes are drawn.
func WithShowKeys(show bool) DrawingOption {
	return func(o *drawingOptions) {
		o.stencil.ShowKeys = show
	}
}

// WithShowMargin selects whether the legend areas are drawn.
func WithShowMargin(show bool) DrawingOption {
	return func(o *drawingOptions) {
		o.stencil.ShowMargin = show
	}
}

// WithWarningHandler sets the receiver of warnings.
func WithWarningHandler(h WarningHandler) DrawingOption {
	return func(o *drawingOptions) {
		o.onWarning = h
	}
}

// Drawing is a rendered layout. It is drawn once, on creation, and cannot
// be changed afterwards.
type Drawing struct {
	drawing *drawing.Drawing
}

// NewDrawing draws keys, a host value for ToKeys. Keys which cannot be
// drawn fail the drawing with an error of class core.ERENDER. Warnings are
// handed to the warning handler; if the process-wide configuration has
// RaiseWarnings set, the first warning fails the drawing instead.
func NewDrawing(keys any, opts ...DrawingOption) (*Drawing, error) {
	ks, err := ToKeys(keys)
	if err != nil {
		return nil, err
	}
	o := drawingOptions{stencil: drawing.NewStencil(), onWarning: DefaultWarningHandler}
	for _, opt := range opts {
		opt(&o)
	}
	result, err := o.stencil.Draw(ks)
	if err != nil {
		return nil, core.WrapError(err, core.ERENDER, "unable to draw keys")
	}
	raise := GetConfig().RaiseWarnings
	for _, w := range result.Warnings {
		warning := core.ErrorWithCode(w, core.EWARNING)
		if raise {
			return nil, warning
		}
		if o.onWarning != nil {
			o.onWarning(warning)
		}
	}
	tracer().Debugf("drawing of %d keys with %d warnings", len(ks), len(result.Warnings))
	return &Drawing{drawing: result.Value}, nil
}

// ToSVG exports the drawing as SVG. Without a destination the document is
// returned. A destination is either a path, which is created or
// truncated, or a host stream accepting text or bytes, which is left open.
func (d *Drawing) ToSVG(dest ...any) (string, error) {
	svg := d.drawing.ToSVG()
	to, err := destination(dest)
	if err != nil || to == nil {
		return svg, err
	}
	return "", writeTo(to, WriteAny, []byte(svg))
}

// ToPNG exports the drawing as PNG at a resolution of ppi pixels per inch.
// A ppi of 0 selects the DPI of the process-wide configuration. dest is
// nil, a path or a binary host stream, as for ToSVG.
func (d *Drawing) ToPNG(dest any, ppi float64) ([]byte, error) {
	if ppi == 0 {
		ppi = float64(GetConfig().DPI)
	}
	png, err := d.drawing.ToPNG(ppi)
	if err != nil {
		return nil, err
	}
	return export(dest, png)
}

// ToPDF exports the drawing as PDF. dest is optional, as for ToSVG, and
// has to accept bytes.
func (d *Drawing) ToPDF(dest ...any) ([]byte, error) {
	pdf, err := d.drawing.ToPDF()
	if err != nil {
		return nil, err
	}
	to, err := destination(dest)
	if err != nil {
		return nil, err
	}
	return export(to, pdf)
}

// ToAI exports the drawing for Adobe Illustrator. dest is optional, as for
// ToSVG, and has to accept bytes.
func (d *Drawing) ToAI(dest ...any) ([]byte, error) {
	ai, err := d.drawing.ToAI()
	if err != nil {
		return nil, err
	}
	to, err := destination(dest)
	if err != nil {
		return nil, err
	}
	return export(to, ai)
}

func destination(dest []any) (any, error) {
	switch len(dest) {
	case 0:
		return nil, nil
	case 1:
		return dest[0], nil
	}
	return nil, typeMismatch("expected at most one destination, got %d", len(dest))
}

// export returns content if dest is nil and writes it to dest otherwise.
func export(dest any, content []byte) ([]byte, error) {
	if dest == nil {
		return content, nil
	}
	return nil, writeTo(dest, WriteBinary, content)
}

// writeTo writes content to a path or to a host stream offering the
// capabilities of mode.
func writeTo(dest any, mode Mode, content []byte) error {
	if path, ok := str(dest); ok {
		return writeFile(path, content)
	}
	file, err := AsFile(dest, mode)
	if err != nil {
		tracer().Debugf("destination %s: %v", typeName(dest), err)
		return typeMismatch("expected a path or a file-like object")
	}
	if mode == WriteAny {
		return file.WriteString(string(content))
	}
	return file.WriteBytes(content)
}

func writeFile(path string, content []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return core.ErrorWithCode(err, core.EIO)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = core.ErrorWithCode(cerr, core.EIO)
		}
	}()
	if _, err = f.Write(content); err != nil {
		return core.ErrorWithCode(err, core.EIO)
	}
	tracer().Debugf("wrote %d bytes to %s", len(content), path)
	return nil
}

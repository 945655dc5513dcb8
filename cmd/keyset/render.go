package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/core/font"
	"github.com/npillmayer/keyset/core/profile"
	"github.com/npillmayer/keyset/host"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// renderSpec collects what a drawing is made of and where it goes. Both
// the render command and job files fill it.
type renderSpec struct {
	Layout        string   `job:"layout"`
	Keys          []any    `job:"keys"`
	Profile       string   `job:"profile"`
	ProfileFormat string   `job:"profile_format"`
	ProfileType   any      `job:"profile_type"`
	Font          string   `job:"font"`
	FontName      string   `job:"font_name"`
	Scale         float64  `job:"scale"`
	OutlineWidth  float64  `job:"outline_width"`
	ShowKeys      bool     `job:"show_keys"`
	ShowMargin    bool     `job:"show_margin"`
	Outputs       []output `job:"outputs"`
}

// output is a destination of a drawing. A path of "-" is stdout.
type output struct {
	Path   string  `job:"path"`
	Format string  `job:"format"`
	PPI    float64 `job:"ppi"`
}

func defaultRenderSpec() renderSpec {
	return renderSpec{Scale: 1, OutlineWidth: 0.5, ShowKeys: true, ProfileFormat: "toml"}
}

// format returns the output format, defaulting to the extension of the
// output path.
func (o output) format() (string, error) {
	f := strings.ToLower(o.Format)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(o.Path)), ".")
	}
	switch f {
	case "svg", "png", "pdf", "ai":
		return f, nil
	case "":
		return "svg", nil
	}
	return "", core.Error(core.ERANGE, "unknown output format '%s'", f)
}

// stopwatch reports the time taken by steps if profiling is on.
type stopwatch struct {
	on    bool
	start time.Time
}

func newStopwatch() *stopwatch {
	return &stopwatch{on: host.GetConfig().Profile, start: time.Now()}
}

func (sw *stopwatch) lap(step string) {
	if !sw.on {
		return
	}
	now := time.Now()
	pterm.Info.Printfln("%s took %v", step, now.Sub(sw.start).Round(time.Microsecond))
	sw.start = now
}

// run draws and exports a render spec. Relative paths are resolved
// against dir.
func (spec renderSpec) run(dir string) error {
	sw := newStopwatch()
	var keys any = spec.Keys
	if spec.Layout != "" {
		layout, err := host.LoadLayout(resolve(dir, spec.Layout))
		if err != nil {
			return err
		}
		if len(spec.Keys) > 0 {
			more, err := host.ToKeys(spec.Keys)
			if err != nil {
				return err
			}
			layout = append(layout, more...)
		}
		keys = layout
	}
	sw.lap("loading layout")
	opts := []host.DrawingOption{
		host.WithScale(spec.Scale),
		host.WithOutlineWidth(spec.OutlineWidth),
		host.WithShowKeys(spec.ShowKeys),
		host.WithShowMargin(spec.ShowMargin),
		host.WithWarningHandler(warningPrinter),
	}
	p, err := spec.profile(dir)
	if err != nil {
		return err
	}
	opts = append(opts, host.WithProfile(p))
	sw.lap("loading profile")
	f, err := spec.font(dir)
	if err != nil {
		return err
	}
	opts = append(opts, host.WithFont(f))
	sw.lap("loading font")
	d, err := host.NewDrawing(keys, opts...)
	if err != nil {
		return err
	}
	sw.lap("drawing")
	if len(spec.Outputs) == 0 {
		return core.Error(core.EMISSING, "no output given")
	}
	for _, out := range spec.Outputs {
		if err := export(d, out, dir); err != nil {
			return err
		}
		sw.lap("writing " + out.Path)
	}
	return nil
}

func (spec renderSpec) profile(dir string) (*profile.Profile, error) {
	p := profile.Default()
	if spec.Profile != "" {
		var err error
		if p, err = host.LoadProfile(resolve(dir, spec.Profile), spec.ProfileFormat); err != nil {
			return nil, err
		}
	}
	if spec.ProfileType != nil {
		pt, err := host.ToProfileType(spec.ProfileType)
		if err != nil {
			return nil, err
		}
		p.Type = pt
	}
	return p, nil
}

func (spec renderSpec) font(dir string) (*font.Font, error) {
	switch {
	case spec.Font != "":
		return host.LoadFont(resolve(dir, spec.Font))
	case spec.FontName != "":
		return host.FindFont(spec.FontName)
	}
	return font.Default(), nil
}

func export(d *host.Drawing, out output, dir string) error {
	format, err := out.format()
	if err != nil {
		return err
	}
	var dest any = resolve(dir, out.Path)
	if out.Path == "-" {
		dest = host.NewFileStream(os.Stdout, os.O_WRONLY, false)
	}
	switch format {
	case "png":
		_, err = d.ToPNG(dest, out.PPI)
	case "pdf":
		_, err = d.ToPDF(dest)
	case "ai":
		_, err = d.ToAI(dest)
	default:
		_, err = d.ToSVG(dest)
	}
	if err == nil && out.Path != "-" {
		pterm.Success.Printfln("wrote %s", out.Path)
	}
	return err
}

func resolve(dir, path string) string {
	if dir == "" || path == "-" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func newRenderCommand() *cobra.Command {
	spec := defaultRenderSpec()
	var out output
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a KLE layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noKeys, _ := cmd.Flags().GetBool("no-keys")
			spec.ShowKeys = !noKeys
			spec.Outputs = []output{out}
			return spec.run("")
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&spec.Layout, "layout", "l", "", "KLE layout file")
	fl.StringVarP(&spec.Profile, "profile-file", "p", "", "keycap profile file")
	fl.StringVar(&spec.ProfileFormat, "profile-format", spec.ProfileFormat, "profile format [toml|json]")
	fl.StringVar(&spec.Font, "font", "", "font file for legends")
	fl.StringVar(&spec.FontName, "font-name", "", "system font for legends")
	fl.Float64Var(&spec.Scale, "scale", spec.Scale, "scale of the drawing")
	fl.Float64Var(&spec.OutlineWidth, "outline-width", spec.OutlineWidth, "width of key outlines in mm")
	fl.Bool("no-keys", false, "draw legends only")
	fl.BoolVar(&spec.ShowMargin, "show-margin", false, "draw legend areas")
	fl.StringVarP(&out.Path, "output", "o", "-", "output file, - for stdout")
	fl.StringVarP(&out.Format, "format", "f", "", "output format [svg|png|pdf|ai], default by file extension")
	fl.Float64Var(&out.PPI, "ppi", 0, "resolution of PNG output, default from --dpi")
	_ = cmd.MarkFlagRequired("layout")
	return cmd
}

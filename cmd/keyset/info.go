package main

import (
	"os"
	"strconv"

	"github.com/npillmayer/keyset/core/font"
	"github.com/npillmayer/keyset/host"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newFontCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "font FILE|NAME",
		Short: "Print the metrics of a font",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFont(args[0])
			if err != nil {
				return err
			}
			return pterm.DefaultTable.WithHasHeader().WithData(fontTable(f)).Render()
		},
	}
}

// openFont loads a font file, or a system font if no such file exists.
func openFont(name string) (*font.Font, error) {
	if _, err := os.Stat(name); err == nil {
		return host.LoadFont(name)
	}
	return host.FindFont(name)
}

func fontTable(f *font.Font) pterm.TableData {
	num := func(x float64) string {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	data := pterm.TableData{
		{"Metric", "Value"},
		{"name", f.Fontname},
		{"family", f.Family},
		{"file", f.Filepath},
		{"glyphs", strconv.Itoa(f.NumGlyphs())},
		{"em size", num(f.EmSize())},
		{"cap height", num(f.CapHeight())},
		{"x height", num(f.XHeight())},
		{"ascender", num(f.Ascender())},
		{"descender", num(f.Descender())},
		{"line gap", num(f.LineGap())},
		{"line height", num(f.LineHeight())},
	}
	if slope, ok := f.Slope(); ok {
		data = append(data, []string{"slope", num(slope)})
	}
	return data
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pterm.DefaultTable.WithHasHeader().WithData(configTable(host.GetConfig())).Render()
		},
	}
}

func configTable(c host.Config) pterm.TableData {
	color := "auto"
	if c.Color != nil {
		color = strconv.FormatBool(*c.Color)
	}
	return pterm.TableData{
		{"Option", "Value"},
		{"verbosity", c.Verbosity.String()},
		{"dpi", strconv.Itoa(c.DPI)},
		{"color", color},
		{"raise_warnings", strconv.FormatBool(c.RaiseWarnings)},
		{"show_align", strconv.FormatBool(c.ShowAlign)},
		{"profile", strconv.FormatBool(c.Profile)},
		{"is_script", strconv.FormatBool(c.IsScript)},
	}
}

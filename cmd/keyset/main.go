/*
Command keyset renders keyboard layouts to SVG, PNG, PDF and AI.

Layouts are read from KLE documents or given inline in job files. Keycap
geometry comes from TOML or JSON profiles, legends are set with any
TrueType or OpenType font.

	keyset render --layout 60.json --profile cherry.toml -o 60.svg
	keyset job keyboard.yaml
	keyset font DejaVuSans.ttf
	keyset config

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'keyset.cli'
func tracer() tracing.Trace {
	return tracing.Select("keyset.cli")
}

func main() {
	initDisplay()
	if err := initTracing(); err != nil {
		fmt.Printf("error configuring tracing: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCommand().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(exitCode(err))
	}
}

// initTracing routes all tracers of the module to Go's log package. Levels
// are adjusted once the configuration is known.
func initTracing() error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.keyset.cli":     "Error",
		"trace.keyset.core":    "Error",
		"trace.keyset.color":   "Error",
		"trace.keyset.font":    "Error",
		"trace.keyset.profile": "Error",
		"trace.keyset.layout":  "Error",
		"trace.keyset.drawing": "Error",
		"trace.keyset.host":    "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// exitCode maps error classes to process exit codes.
func exitCode(err error) int {
	switch core.Code(err) {
	case core.ETYPE, core.ERANGE, core.EINVALID:
		return 2
	case core.EIO, core.EMISSING:
		return 3
	case core.EPARSE:
		return 4
	case core.ERENDER, core.EWARNING:
		return 5
	}
	return 1
}

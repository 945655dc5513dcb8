package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	json "github.com/goccy/go-json"
	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/host"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// job is a declarative render job. Besides the render spec it may carry
// host configuration options, applied before drawing.
//
//	config: { verbosity: VERBOSE, raise_warnings: true }
//	profile: cherry.toml
//	profile_type: { type: spherical, depth: 0.8 }
//	keys:
//	  - { x: 0, y: 0, legends: [ { text: Esc } ] }
//	  - { x: 1.5, shape: { shape: normal, width: 2.25, height: 1 }, color: "#336699" }
//	outputs:
//	  - { path: keys.svg }
//	  - { path: keys.png, ppi: 300 }
type job struct {
	renderSpec `job:",squash"`
	Config     map[string]any `job:"config"`
}

// readJob reads a job file, YAML or JSON by file extension.
func readJob(path string) (*job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, core.ErrorWithCode(err, core.EIO)
	}
	var doc map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &doc)
	default:
		err = yaml.Unmarshal(b, &doc)
	}
	if err != nil {
		return nil, core.WrapError(err, core.EPARSE, "unable to parse job file %s", path)
	}
	return decodeJob(doc)
}

// decodeJob decodes the document of a job file. Keys, shapes, colors and
// profile types are left as host values; the host package converts them.
func decodeJob(doc map[string]any) (*job, error) {
	j := &job{renderSpec: defaultRenderSpec()}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      j,
		TagName:     "job",
	})
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot decode job")
	}
	if err := dec.Decode(doc); err != nil {
		return nil, core.WrapError(err, core.ETYPE, "invalid job")
	}
	return j, nil
}

// runJob executes a job file. Paths in the job are relative to the job
// file.
func runJob(path string) error {
	j, err := readJob(path)
	if err != nil {
		return err
	}
	if len(j.Config) > 0 {
		if err := host.SetConfig(j.Config); err != nil {
			return err
		}
	}
	tracer().Debugf("job %s: %d inline keys, %d outputs", path, len(j.Keys), len(j.Outputs))
	return j.run(filepath.Dir(path))
}

func newJobCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "job FILE",
		Short: "Run a YAML or JSON job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(args[0])
		},
	}
}

package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/host"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// cliConfig is the configuration of a CLI run, merged by viper from
// defaults, config file, environment and flags.
type cliConfig struct {
	Verbosity     string `mapstructure:"verbosity"`
	Verbose       int    `mapstructure:"verbose"`
	Quiet         bool   `mapstructure:"quiet"`
	Color         bool   `mapstructure:"color"`
	NoColor       bool   `mapstructure:"no-color"`
	DPI           int    `mapstructure:"dpi"`
	RaiseWarnings bool   `mapstructure:"raise-warnings"`
	ShowAlign     bool   `mapstructure:"show-align"`
	Profile       bool   `mapstructure:"profile"`
}

// verbosity combines the configured verbosity with -v and -q.
func (c cliConfig) verbosity() (host.Verbosity, error) {
	v, ok := host.ParseVerbosity(c.Verbosity)
	if !ok {
		return host.VerbosityNone, core.Error(core.ERANGE, "invalid verbosity '%s'", c.Verbosity)
	}
	if c.Quiet {
		return host.VerbosityQuiet, nil
	}
	v += host.Verbosity(c.Verbose)
	if v > host.VerbosityDebug {
		v = host.VerbosityDebug
	}
	return v, nil
}

// options returns the host configuration options of c.
func (c cliConfig) options(v *viper.Viper) (map[string]any, error) {
	verbosity, err := c.verbosity()
	if err != nil {
		return nil, err
	}
	options := map[string]any{
		"verbosity":      verbosity,
		"dpi":            c.DPI,
		"raise_warnings": c.RaiseWarnings,
		"show_align":     c.ShowAlign,
		"profile":        c.Profile,
		"is_script":      false,
	}
	switch {
	case c.NoColor:
		options["color"] = false
	case v.IsSet("color"):
		options["color"] = c.Color
	}
	return options, nil
}

// loadConfig merges the CLI configuration. An explicit config file has to
// exist; otherwise keyset.{yaml,toml,json} is looked up in the user config
// directory and the working directory.
func loadConfig(configFile string, flags *pflag.FlagSet) (*viper.Viper, cliConfig, error) {
	v := viper.New()
	defaults := host.DefaultConfig()
	v.SetDefault("verbosity", host.VerbosityNormal.String())
	v.SetDefault("dpi", defaults.DPI)
	v.SetDefault("raise-warnings", defaults.RaiseWarnings)
	v.SetDefault("show-align", defaults.ShowAlign)
	v.SetDefault("profile", defaults.Profile)
	//
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("keyset")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "keyset"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, cliConfig{}, core.WrapError(err, core.EIO, "cannot read config file")
		}
		tracer().Debugf("no config file")
	} else {
		tracer().Infof("config file %s", v.ConfigFileUsed())
	}
	v.SetEnvPrefix("KEYSET")
	v.AutomaticEnv()
	if flags != nil {
		for _, name := range []string{"verbose", "quiet", "color", "no-color", "dpi", "raise-warnings", "profile"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, cliConfig{}, core.WrapError(err, core.EINTERNAL, "cannot bind flag %s", name)
				}
			}
		}
	}
	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cliConfig{}, core.WrapError(err, core.ETYPE, "invalid configuration")
	}
	return v, cfg, nil
}

// configure applies the CLI configuration to the host settings and to the
// display.
func configure(configFile string, flags *pflag.FlagSet) (cliConfig, error) {
	v, cfg, err := loadConfig(configFile, flags)
	if err != nil {
		return cfg, err
	}
	options, err := cfg.options(v)
	if err != nil {
		return cfg, err
	}
	if err := host.SetConfig(options); err != nil {
		return cfg, err
	}
	hc := host.GetConfig()
	tracer().SetTraceLevel(hc.Verbosity.TraceLevel())
	if hc.Color != nil && !*hc.Color {
		pterm.DisableColor()
	}
	if hc.Verbosity <= host.VerbosityQuiet {
		pterm.DisableOutput()
	}
	if hc.Verbosity >= host.VerbosityDebug {
		pterm.EnableDebugMessages()
	}
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:           "keyset",
		Short:         "Render keyboard layouts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := configure(configFile, cmd.Flags())
			return err
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default: keyset.yaml in the user config directory)")
	pf.CountP("verbose", "v", "more output, repeat for debug output")
	pf.BoolP("quiet", "q", false, "no output except errors")
	pf.Bool("color", true, "colored output")
	pf.Bool("no-color", false, "no colored output")
	pf.Int("dpi", host.DefaultConfig().DPI, "default resolution of PNG output")
	pf.Bool("raise-warnings", false, "treat warnings as errors")
	pf.Bool("profile", false, "report the time taken by each step")
	root.AddCommand(newRenderCommand(), newJobCommand(), newFontCommand(), newConfigCommand())
	return root
}

// warningPrinter prints drawing warnings.
func warningPrinter(warning error) {
	tracer().Infof("%v", warning)
	pterm.Warning.Println(warning.Error())
}

package host

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/schuko/tracing"
)

// Verbosity is the amount of output a host wants. Verbosities are ordered
// and compare with plain integers.
type Verbosity int

// Verbosities
const (
	VerbosityNone Verbosity = iota
	VerbosityQuiet
	VerbosityNormal
	VerbosityVerbose
	VerbosityDebug
)

var verbosityNames = [...]string{"NONE", "QUIET", "NORMAL", "VERBOSE", "DEBUG"}

func (v Verbosity) String() string {
	if v < 0 || int(v) >= len(verbosityNames) {
		return "Verbosity(" + strconv.Itoa(int(v)) + ")"
	}
	return verbosityNames[v]
}

// ParseVerbosity parses the name of a verbosity, ignoring case.
func ParseVerbosity(s string) (Verbosity, bool) {
	for i, name := range verbosityNames {
		if strings.EqualFold(name, s) {
			return Verbosity(i), true
		}
	}
	return VerbosityNone, false
}

// TraceLevel is the trace level matching a verbosity.
func (v Verbosity) TraceLevel() tracing.TraceLevel {
	switch {
	case v >= VerbosityDebug:
		return tracing.LevelDebug
	case v >= VerbosityNormal:
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

// Severity is the severity of a message. Severities are ordered and compare
// with plain integers.
type Severity int

// Severities
const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"DEBUG", "INFO", "WARNING", "ERROR"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "Severity(" + strconv.Itoa(int(s)) + ")"
	}
	return severityNames[s]
}

// Config is the process-wide configuration of a host.
type Config struct {
	ShowAlign     bool      `host:"show_align"`
	DPI           int       `host:"dpi"`
	Profile       bool      `host:"profile"`
	Color         *bool     `host:"color"` // nil: decide by terminal
	Verbosity     Verbosity `host:"verbosity"`
	RaiseWarnings bool      `host:"raise_warnings"`
	IsScript      bool      `host:"is_script"`
}

// DefaultConfig returns the configuration of a fresh process.
func DefaultConfig() Config {
	return Config{DPI: 96, Verbosity: VerbosityNone}
}

func (c Config) clone() Config {
	if c.Color != nil {
		col := *c.Color
		c.Color = &col
	}
	return c
}

// Settings holds a configuration and serializes access to it.
type Settings struct {
	mu  sync.Mutex
	cfg Config
}

// NewSettings creates settings with the default configuration.
func NewSettings() *Settings {
	return &Settings{cfg: DefaultConfig()}
}

var globalSettings = NewSettings()

// GlobalSettings returns the settings of the process.
func GlobalSettings() *Settings {
	return globalSettings
}

// Get returns a copy of the current configuration.
func (s *Settings) Get() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.clone()
}

// Set changes the options named by the keys of options, e.g.
// {"verbosity": "DEBUG", "dpi": 300}. Keys are the host names of the
// fields of Config. Verbosities may be given as Verbosity, integer or
// name. A nil value resets an option to its default. Either all options
// are changed or, on error, none.
func (s *Settings) Set(options map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfg.clone()
	options, unknown := resetOptions(&cfg, options)
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(verbosityHook),
		Metadata:   &md,
		Result:     &cfg,
		TagName:    "host",
	})
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot decode config options")
	}
	if err := dec.Decode(options); err != nil {
		code := core.ETYPE
		if core.IsClass(err, core.ERANGE) {
			code = core.ERANGE
		}
		return core.WrapError(err, code, "invalid config option in call to set_config")
	}
	if unknown = append(unknown, md.Unused...); len(unknown) > 0 {
		sort.Strings(unknown)
		return valueError("unknown config option %s in call to set_config", unknown[0])
	}
	if cfg.Verbosity < VerbosityNone || cfg.Verbosity > VerbosityDebug {
		return valueError("invalid verbosity %d in call to set_config", int(cfg.Verbosity))
	}
	if cfg.Verbosity != s.cfg.Verbosity {
		applyVerbosity(cfg.Verbosity)
	}
	s.cfg = cfg
	return nil
}

// Reset restores the default configuration.
func (s *Settings) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Verbosity != VerbosityNone {
		applyVerbosity(VerbosityNone)
	}
	s.cfg = DefaultConfig()
}

// configFields maps host option names to field indices of Config.
var configFields = func() map[string]int {
	t := reflect.TypeOf(Config{})
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fields[t.Field(i).Tag.Get("host")] = i
	}
	return fields
}()

// resetOptions sets the options of cfg given as nil to their defaults. It
// returns the remaining options and the names of unknown nil options.
func resetOptions(cfg *Config, options map[string]any) (map[string]any, []string) {
	defaults := reflect.ValueOf(DefaultConfig())
	target := reflect.ValueOf(cfg).Elem()
	rest := make(map[string]any, len(options))
	var unknown []string
	for name, value := range options {
		if !isNilValue(value) {
			rest[name] = value
			continue
		}
		i, ok := configFields[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		target.Field(i).Set(defaults.Field(i))
	}
	return rest, unknown
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

var verbosityType = reflect.TypeOf(VerbosityNone)

func verbosityHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != verbosityType || from.Kind() != reflect.String {
		return data, nil
	}
	v, ok := ParseVerbosity(reflect.ValueOf(data).String())
	if !ok {
		return nil, valueError("invalid verbosity '%v'", data)
	}
	return v, nil
}

// tracedPackages are the tracing keys of the packages of this module.
var tracedPackages = []string{
	"keyset.core", "keyset.color", "keyset.font", "keyset.profile",
	"keyset.layout", "keyset.drawing", "keyset.host",
}

func applyVerbosity(v Verbosity) {
	level := v.TraceLevel()
	for _, key := range tracedPackages {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// GetConfig returns a copy of the process-wide configuration.
func GetConfig() Config {
	return globalSettings.Get()
}

// SetConfig changes options of the process-wide configuration.
func SetConfig(options map[string]any) error {
	return globalSettings.Set(options)
}

// ResetConfig restores the default process-wide configuration.
func ResetConfig() {
	globalSettings.Reset()
}

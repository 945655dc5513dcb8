package font

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/keyset/core"
)

// Registry is a type for holding fonts which have been looked up by name.
type Registry struct {
	sync.Mutex
	fonts map[string]*Font
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold fonts found by
// name.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts: make(map[string]*Font),
	}
	return fr
}

// StoreFont pushes a font into the registry under a normalized version of
// name. An existing entry is not overridden.
func (fr *Registry) StoreFont(name string, f *Font) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	fname := NormalizeFontname(name)
	if _, ok := fr.fonts[fname]; !ok {
		tracer().Debugf("registry stores font %s as %s", f.Fontname, fname)
		fr.fonts[fname] = f
	}
}

// Font returns a previously stored font.
func (fr *Registry) Font(name string) (*Font, bool) {
	fr.Lock()
	defer fr.Unlock()
	f, ok := fr.fonts[NormalizeFontname(name)]
	return f, ok
}

// NormalizeFontname strips directory and file extension from a font name
// and lower-cases it, with spaces replaced by underscores.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(filepath.Base(fname))
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}

// --- System fonts ----------------------------------------------------------

// Find locates a font by name, either as a path to a font file or as the
// name of a font file installed on the system, and loads it. Fonts found
// are cached in the global registry.
func Find(name string) (*Font, error) {
	if f, ok := GlobalRegistry().Font(name); ok {
		return f, nil
	}
	fpath, err := findfont.Find(name)
	if err != nil || fpath == "" {
		tracer().Infof("font %s is not a system font", name)
		return nil, core.WrapError(err, core.EMISSING, "font not found: %s", name)
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	f, err := Load(fpath)
	if err != nil {
		return nil, err
	}
	GlobalRegistry().StoreFont(name, f)
	return f, nil
}

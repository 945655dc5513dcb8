package host

import (
	"errors"
	"io/fs"
	"os"

	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/core/font"
	"github.com/npillmayer/keyset/core/layout"
	"github.com/npillmayer/keyset/core/profile"
)

// readFile reads a file completely. Failures are of class core.EIO and
// keep the *fs.PathError.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, core.ErrorWithCode(err, core.EIO)
	}
	tracer().Debugf("read %d bytes from %s", len(b), path)
	return b, nil
}

// --- Fonts -----------------------------------------------------------------

// LoadFont loads a TrueType or OpenType font file.
func LoadFont(path string) (*font.Font, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	f, err := LoadFontBytes(b)
	if err != nil {
		return nil, err
	}
	f.Filepath = path
	return f, nil
}

// LoadFontBytes parses a TrueType or OpenType font.
func LoadFontBytes(b []byte) (*font.Font, error) {
	f, err := font.Parse(b)
	if err != nil {
		return nil, core.WrapError(err, core.EPARSE, "unable to parse font")
	}
	return f, nil
}

// LoadFontStream reads a font from a binary host stream.
func LoadFontStream(obj any) (*font.Font, error) {
	file, err := AsFile(obj, ReadBinary)
	if err != nil {
		return nil, err
	}
	b, err := file.ReadBytes()
	if err != nil {
		return nil, err
	}
	return LoadFontBytes(b)
}

// FindFont locates a system font by name, e.g. "DejaVu Sans" or
// "Arial.ttf", and loads it.
func FindFont(name string) (*font.Font, error) {
	f, err := font.Find(name)
	var pathErr *fs.PathError
	switch {
	case err == nil:
	case core.IsClass(err, core.EMISSING):
		return nil, err
	case errors.As(err, &pathErr):
		return nil, core.ErrorWithCode(err, core.EIO)
	default:
		return nil, core.WrapError(err, core.EPARSE, "unable to parse font")
	}
	return f, nil
}

// --- Layouts ---------------------------------------------------------------

// LoadLayout loads a KLE layout file.
func LoadLayout(path string) ([]layout.Key, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return LoadLayoutBytes(b)
}

// LoadLayoutBytes parses a KLE layout document. The keys keep the order of
// the document.
func LoadLayoutBytes(b []byte) ([]layout.Key, error) {
	keys, err := layout.FromKLE(b)
	if err != nil {
		return nil, core.WrapError(err, core.EPARSE, "unable to parse layout")
	}
	return keys, nil
}

// LoadLayoutString parses a KLE layout document.
func LoadLayoutString(s string) ([]layout.Key, error) {
	return LoadLayoutBytes([]byte(s))
}

// LoadLayoutStream reads a KLE layout document from a host stream.
func LoadLayoutStream(obj any) ([]layout.Key, error) {
	file, err := AsFile(obj, ReadAny)
	if err != nil {
		return nil, err
	}
	b, err := file.ReadBytes()
	if err != nil {
		return nil, err
	}
	return LoadLayoutBytes(b)
}

// --- Profiles --------------------------------------------------------------

// LoadProfile loads a profile file. The optional format is a host value
// for ToProfileFormat, the default being TOML.
func LoadProfile(path string, format ...any) (*profile.Profile, error) {
	pf, err := profileFormat(format)
	if err != nil {
		return nil, err
	}
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return LoadProfileBytes(b, pf)
}

// LoadProfileBytes parses a profile document.
func LoadProfileBytes(b []byte, format ...any) (*profile.Profile, error) {
	pf, err := profileFormat(format)
	if err != nil {
		return nil, err
	}
	var p *profile.Profile
	if pf == JSON {
		if p, err = profile.FromJSON(b); err != nil {
			return nil, core.WrapError(err, core.EPARSE, "unable to parse JSON profile")
		}
		return p, nil
	}
	if p, err = profile.FromTOML(b); err != nil {
		return nil, core.WrapError(err, core.EPARSE, "unable to parse TOML profile")
	}
	return p, nil
}

// LoadProfileString parses a profile document.
func LoadProfileString(s string, format ...any) (*profile.Profile, error) {
	return LoadProfileBytes([]byte(s), format...)
}

// LoadProfileStream reads a profile document from a host stream.
func LoadProfileStream(obj any, format ...any) (*profile.Profile, error) {
	pf, err := profileFormat(format)
	if err != nil {
		return nil, err
	}
	file, err := AsFile(obj, ReadAny)
	if err != nil {
		return nil, err
	}
	b, err := file.ReadBytes()
	if err != nil {
		return nil, err
	}
	return LoadProfileBytes(b, pf)
}

func profileFormat(format []any) (ProfileFormat, error) {
	if len(format) == 0 {
		return TOML, nil
	}
	if len(format) > 1 {
		return TOML, typeMismatch("expected at most one profile format, got %d", len(format))
	}
	return ToProfileFormat(format[0])
}

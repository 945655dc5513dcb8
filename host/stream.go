package host

import (
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"github.com/npillmayer/keyset/core"
)

// Mode is a combination of capabilities a stream has to offer.
type Mode int8

// Stream capabilities
const (
	ReadText Mode = iota
	ReadBinary
	ReadAny
	WriteText
	WriteBinary
	WriteAny
)

var modeNames = [...]string{"read-text", "read-binary", "read-any", "write-text", "write-binary", "write-any"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "invalid-mode"
	}
	return modeNames[m]
}

func (m Mode) reading() bool {
	return m <= ReadAny
}

// FileLike is implemented by structured streams, which declare their
// capabilities. Binary streams read and write with io.Reader and io.Writer.
type FileLike interface {
	Readable() bool
	Writable() bool
}

// TextFileLike is implemented by structured text streams. Text streams
// read with TextReader and write with io.StringWriter.
type TextFileLike interface {
	FileLike
	Encoding() string
}

// TextReader reads text. ReadText(n) reads at most n bytes of text, with
// n < 0 reading to the end of the stream.
type TextReader interface {
	ReadText(n int) (string, error)
}

// Messages of failing capability checks
const (
	msgReadable  = "expected a readable file-like object"
	msgWriteable = "expected a writeable file-like object"
	msgText      = "expected a text file-like object"
	msgBinary    = "expected a binary file-like object"
)

func streamError(msg string) error {
	return core.Error(core.EIO, "%s", msg)
}

// checkMode checks that obj offers the capabilities of mode. Structured
// streams are checked by their declared capabilities, other objects are
// probed with a read of zero bytes or a write of nothing.
func checkMode(obj any, mode Mode) error {
	if fl, ok := obj.(FileLike); ok {
		_, isText := obj.(TextFileLike)
		if mode.reading() && !fl.Readable() {
			return streamError(msgReadable)
		}
		if !mode.reading() && !fl.Writable() {
			return streamError(msgWriteable)
		}
		switch mode {
		case ReadText, WriteText:
			if !isText {
				return streamError(msgText)
			}
		case ReadBinary, WriteBinary:
			if isText {
				return streamError(msgBinary)
			}
		}
		return nil
	}
	switch mode {
	case ReadText:
		if !probeReadText(obj) {
			return streamError(msgText)
		}
	case ReadBinary:
		if !probeRead(obj) {
			return streamError(msgBinary)
		}
	case ReadAny:
		if !probeRead(obj) && !probeReadText(obj) {
			return streamError(msgReadable)
		}
	case WriteText:
		if !probeWriteString(obj) {
			return streamError(msgText)
		}
	case WriteBinary:
		if !probeWrite(obj) {
			return streamError(msgBinary)
		}
	case WriteAny:
		if !probeWrite(obj) && !probeWriteString(obj) {
			return streamError(msgWriteable)
		}
	default:
		return core.Error(core.EINTERNAL, "invalid stream mode %d", mode)
	}
	return nil
}

func probeRead(obj any) bool {
	r, ok := obj.(io.Reader)
	if !ok {
		return false
	}
	_, err := r.Read([]byte{})
	return err == nil || err == io.EOF
}

func probeReadText(obj any) bool {
	r, ok := obj.(TextReader)
	if !ok {
		return false
	}
	_, err := r.ReadText(0)
	return err == nil || err == io.EOF
}

func probeWrite(obj any) bool {
	w, ok := obj.(io.Writer)
	if !ok {
		return false
	}
	_, err := w.Write(nil)
	return err == nil
}

func probeWriteString(obj any) bool {
	w, ok := obj.(io.StringWriter)
	if !ok {
		return false
	}
	_, err := w.WriteString("")
	return err == nil
}

// File is a host stream which has been checked for the capabilities of
// a mode. Closing the stream is left to its owner.
type File struct {
	obj  any
	mode Mode
}

// AsFile checks that obj offers the capabilities of mode and wraps it.
func AsFile(obj any, mode Mode) (*File, error) {
	if obj == nil {
		if mode.reading() {
			return nil, streamError(msgReadable)
		}
		return nil, streamError(msgWriteable)
	}
	if err := checkMode(obj, mode); err != nil {
		tracer().Debugf("%s is not a %s stream", typeName(obj), mode)
		return nil, err
	}
	return &File{obj: obj, mode: mode}, nil
}

// Mode returns the capabilities f has been checked for.
func (f *File) Mode() Mode {
	return f.mode
}

var errWrongMode = errors.New("operation not supported by stream mode")

// ReadBytes reads f to its end. A read-any stream offering text only is
// read as text.
func (f *File) ReadBytes() ([]byte, error) {
	if f.mode != ReadBinary && f.mode != ReadAny {
		return nil, core.WrapError(errWrongMode, core.EIO, "cannot read bytes from %s stream", f.mode)
	}
	if r, ok := f.obj.(io.Reader); ok {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, core.ErrorWithCode(err, core.EIO)
		}
		return b, nil
	}
	if r, ok := f.obj.(TextReader); ok && f.mode == ReadAny {
		s, err := readAllText(r)
		return []byte(s), err
	}
	return nil, streamError(msgBinary)
}

// ReadString reads f to its end. A read-any stream offering bytes only is
// read as bytes, which have to be valid UTF-8.
func (f *File) ReadString() (string, error) {
	if f.mode != ReadText && f.mode != ReadAny {
		return "", core.WrapError(errWrongMode, core.EIO, "cannot read text from %s stream", f.mode)
	}
	if r, ok := f.obj.(TextReader); ok {
		return readAllText(r)
	}
	if r, ok := f.obj.(io.Reader); ok && f.mode == ReadAny {
		b, err := io.ReadAll(r)
		if err != nil {
			return "", core.ErrorWithCode(err, core.EIO)
		}
		if !utf8.Valid(b) {
			return "", core.Error(core.EIO, "stream content is not valid UTF-8")
		}
		return string(b), nil
	}
	return "", streamError(msgText)
}

func readAllText(r TextReader) (string, error) {
	s, err := r.ReadText(-1)
	if err != nil && err != io.EOF {
		return "", core.ErrorWithCode(err, core.EIO)
	}
	return s, nil
}

// WriteBytes writes b to f. A write-any stream accepting text only gets b
// as text, which has to be valid UTF-8.
func (f *File) WriteBytes(b []byte) error {
	if f.mode != WriteBinary && f.mode != WriteAny {
		return core.WrapError(errWrongMode, core.EIO, "cannot write bytes to %s stream", f.mode)
	}
	if w, ok := f.obj.(io.Writer); ok {
		return writeFull(w.Write(b))
	}
	if w, ok := f.obj.(io.StringWriter); ok && f.mode == WriteAny {
		if !utf8.Valid(b) {
			return core.Error(core.EIO, "cannot write binary content to a text stream")
		}
		return writeFull(w.WriteString(string(b)))
	}
	return streamError(msgBinary)
}

// WriteString writes s to f. A write-any stream accepting bytes only gets
// the UTF-8 encoding of s.
func (f *File) WriteString(s string) error {
	if f.mode != WriteText && f.mode != WriteAny {
		return core.WrapError(errWrongMode, core.EIO, "cannot write text to %s stream", f.mode)
	}
	if w, ok := f.obj.(io.StringWriter); ok {
		return writeFull(w.WriteString(s))
	}
	if w, ok := f.obj.(io.Writer); ok && f.mode == WriteAny {
		return writeFull(w.Write([]byte(s)))
	}
	return streamError(msgText)
}

func writeFull(_ int, err error) error {
	if err != nil {
		return core.ErrorWithCode(err, core.EIO)
	}
	return nil
}

// --- OS files --------------------------------------------------------------

// NewFileStream adapts an OS file to a structured stream. flag is the
// access mode the file has been opened with (os.O_RDONLY, os.O_WRONLY or
// os.O_RDWR, possibly combined with other flags of os.OpenFile). Text
// streams are UTF-8 encoded.
func NewFileStream(f *os.File, flag int, text bool) FileLike {
	fs := fileStream{f: f, flag: flag}
	if text {
		return textFileStream{fs}
	}
	return binaryFileStream{fs}
}

type fileStream struct {
	f    *os.File
	flag int
}

func (fs fileStream) access() int {
	return fs.flag & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR)
}

func (fs fileStream) Readable() bool {
	return fs.access() == os.O_RDONLY || fs.access() == os.O_RDWR
}

func (fs fileStream) Writable() bool {
	return fs.access() == os.O_WRONLY || fs.access() == os.O_RDWR
}

type binaryFileStream struct {
	fileStream
}

func (bs binaryFileStream) Read(p []byte) (int, error) {
	return bs.f.Read(p)
}

func (bs binaryFileStream) Write(p []byte) (int, error) {
	return bs.f.Write(p)
}

type textFileStream struct {
	fileStream
}

func (ts textFileStream) Encoding() string {
	return "utf-8"
}

func (ts textFileStream) ReadText(n int) (string, error) {
	if n < 0 {
		b, err := io.ReadAll(ts.f)
		return string(b), err
	}
	b := make([]byte, n)
	m, err := ts.f.Read(b)
	return string(b[:m]), err
}

func (ts textFileStream) WriteString(s string) (int, error) {
	return ts.f.WriteString(s)
}

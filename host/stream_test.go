package host

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textOnly reads and writes text only.
type textOnly struct {
	content string
	written strings.Builder
}

func (to *textOnly) WriteString(s string) (int, error) {
	return to.written.WriteString(s)
}

func (to *textOnly) ReadText(n int) (string, error) {
	if n == 0 {
		return "", nil
	}
	s := to.content
	to.content = ""
	if s == "" {
		return "", io.EOF
	}
	return s, nil
}

// closedWriter fails every write.
type closedWriter struct{}

func (closedWriter) Write([]byte) (int, error) {
	return 0, errors.New("write on closed stream")
}

// declared is a structured stream with declared capabilities.
type declared struct {
	bytes.Buffer
	readable, writable bool
}

func (d *declared) Readable() bool { return d.readable }
func (d *declared) Writable() bool { return d.writable }

type declaredText struct {
	declared
}

func (d *declaredText) Encoding() string { return "utf-8" }

func TestAsFileProbing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	_, err := AsFile(strings.NewReader("x"), ReadBinary)
	assert.NoError(t, err)
	_, err = AsFile(strings.NewReader("x"), ReadText)
	require.Error(t, err)
	assert.True(t, core.IsClass(err, core.EIO))
	assert.Equal(t, "expected a text file-like object", err.Error())
	_, err = AsFile(&textOnly{}, ReadBinary)
	assert.Equal(t, "expected a binary file-like object", err.Error())
	_, err = AsFile(&textOnly{}, ReadAny)
	assert.NoError(t, err)
	_, err = AsFile(42, ReadAny)
	assert.Equal(t, "expected a readable file-like object", err.Error())
	_, err = AsFile(closedWriter{}, WriteBinary)
	assert.Equal(t, "expected a binary file-like object", err.Error())
	_, err = AsFile(closedWriter{}, WriteAny)
	assert.Equal(t, "expected a writeable file-like object", err.Error())
	_, err = AsFile(nil, WriteText)
	assert.Equal(t, "expected a writeable file-like object", err.Error())
	err = streamError("100% written")
	assert.True(t, core.IsClass(err, core.EIO))
	assert.Equal(t, "100% written", err.Error())
}

func TestAsFileDeclared(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	_, err := AsFile(&declared{writable: true}, ReadAny)
	assert.Equal(t, "expected a readable file-like object", err.Error())
	_, err = AsFile(&declared{readable: true}, WriteAny)
	assert.Equal(t, "expected a writeable file-like object", err.Error())
	_, err = AsFile(&declared{readable: true}, ReadText)
	assert.Equal(t, "expected a text file-like object", err.Error())
	_, err = AsFile(&declaredText{declared{readable: true}}, ReadBinary)
	assert.Equal(t, "expected a binary file-like object", err.Error())
	_, err = AsFile(&declared{readable: true}, ReadBinary)
	assert.NoError(t, err)
}

func TestFileReadWrite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	f, err := AsFile(&textOnly{content: "héllo"}, ReadAny)
	require.NoError(t, err)
	b, err := f.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("héllo"), b)
	//
	f, err = AsFile(bytes.NewBuffer([]byte{0xff, 0xfe}), ReadAny)
	require.NoError(t, err)
	_, err = f.ReadString()
	assert.True(t, core.IsClass(err, core.EIO))
	//
	var buf bytes.Buffer
	f, err = AsFile(&buf, WriteAny)
	require.NoError(t, err)
	require.NoError(t, f.WriteString("<svg/>"))
	assert.Equal(t, "<svg/>", buf.String())
	_, err = f.ReadBytes()
	assert.True(t, core.IsClass(err, core.EIO))
	//
	to := &textOnly{}
	f, err = AsFile(to, WriteAny)
	require.NoError(t, err)
	assert.Error(t, f.WriteBytes([]byte{0x89, 'P', 'N', 'G'}))
	require.NoError(t, f.WriteBytes([]byte("text")))
	assert.Equal(t, "text", to.written.String())
}

func TestNewFileStream(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.host")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "out.txt")
	w, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	ws := NewFileStream(w, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, true)
	assert.True(t, ws.Writable())
	assert.False(t, ws.Readable())
	_, err = AsFile(ws, WriteBinary)
	assert.Equal(t, "expected a binary file-like object", err.Error())
	f, err := AsFile(ws, WriteText)
	require.NoError(t, err)
	require.NoError(t, f.WriteString("Esc"))
	require.NoError(t, w.Close())
	//
	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()
	rs := NewFileStream(r, os.O_RDONLY, false)
	_, err = AsFile(rs, WriteAny)
	assert.Equal(t, "expected a writeable file-like object", err.Error())
	f, err = AsFile(rs, ReadBinary)
	require.NoError(t, err)
	b, err := f.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, "Esc", string(b))
}

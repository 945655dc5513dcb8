package core

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.core")
	defer teardown()
	//
	err := Error(ERANGE, "invalid value for '%s' for Color(): '%g'", "r", 1.5)
	assert.Equal(t, ERANGE, Code(err))
	assert.Equal(t, "invalid value for 'r' for Color(): '1.5'", err.Error())
	assert.True(t, IsClass(err, ERANGE))
	assert.False(t, IsClass(err, ETYPE))
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
}

func TestWrapErrorKeepsCause(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.core")
	defer teardown()
	//
	cause := &fs.PathError{Op: "open", Path: "nope.ttf", Err: fs.ErrNotExist}
	err := WrapError(cause, EIO, "cannot read %s", "nope.ttf")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, EIO, Code(err))
	assert.Equal(t, "cannot read nope.ttf", UserMessage(err))
	assert.Contains(t, err.Error(), "nope.ttf")
}

func TestErrorWithCodeNil(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "keyset.core")
	defer teardown()
	//
	err := ErrorWithCode(nil, EPARSE)
	assert.Equal(t, "parse error", err.Error())
	assert.Equal(t, EPARSE, Code(err))
	assert.Equal(t, "undefined error", ErrorWithCode(nil, 124).Error())
}

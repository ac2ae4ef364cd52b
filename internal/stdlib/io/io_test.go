package io_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	io "github.com/zombocoder/o2l/internal/stdlib/io"
	"github.com/zombocoder/o2l/internal/value"
)

func TestPrintWithNoArgsPrintsBlankLine(t *testing.T) {
	var out bytes.Buffer
	h := io.New(&out, strings.NewReader(""))
	_, err := h.Call("print", nil)
	require.Nil(t, err)
	assert.Equal(t, "\n", out.String())
}

func TestPrintFormatsStringAndInt(t *testing.T) {
	var out bytes.Buffer
	h := io.New(&out, strings.NewReader(""))
	_, err := h.Call("print", []value.Value{value.Text("%s=%d"), value.Text("x"), value.Int(5)})
	require.Nil(t, err)
	assert.Equal(t, "x=5\n", out.String())
}

func TestPrintFormatsFloatPrecision(t *testing.T) {
	var out bytes.Buffer
	h := io.New(&out, strings.NewReader(""))
	_, err := h.Call("print", []value.Value{value.Text("%.2f"), value.Double(3.14159)})
	require.Nil(t, err)
	assert.Equal(t, "3.14\n", out.String())
}

func TestPrintRequiresTextFormatArg(t *testing.T) {
	var out bytes.Buffer
	h := io.New(&out, strings.NewReader(""))
	_, err := h.Call("print", []value.Value{value.Int(1)})
	assert.NotNil(t, err)
}

func TestInputReadsOneLine(t *testing.T) {
	var out bytes.Buffer
	h := io.New(&out, strings.NewReader("hello world\nsecond line\n"))
	v, err := h.Call("input", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Text("hello world"), v)

	v, err = h.Call("input", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Text("second line"), v)
}

func TestInputAtEOFReturnsEmptyText(t *testing.T) {
	var out bytes.Buffer
	h := io.New(&out, strings.NewReader(""))
	v, err := h.Call("input", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Text(""), v)
}

func TestInputWithPromptWritesPromptToNonTTYWriter(t *testing.T) {
	var out bytes.Buffer
	h := io.New(&out, strings.NewReader("answer\n"))
	_, err := h.Call("input", []value.Value{value.Text("name? ")})
	require.Nil(t, err)
	assert.Equal(t, "name? ", out.String())
}

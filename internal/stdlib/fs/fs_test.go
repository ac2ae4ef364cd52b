package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/stdlib/fs"
	"github.com/zombocoder/o2l/internal/value"
)

func TestWriteReadExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	h := fs.New()

	_, err := h.Call("writeText", []value.Value{value.Text(path), value.Text("hi there")})
	require.Nil(t, err)

	existsV, err := h.Call("exists", []value.Value{value.Text(path)})
	require.Nil(t, err)
	assert.Equal(t, value.Bool(true), existsV)

	contentV, err := h.Call("readText", []value.Value{value.Text(path)})
	require.Nil(t, err)
	assert.Equal(t, value.Text("hi there"), contentV)
}

func TestReadMissingFileIsError(t *testing.T) {
	h := fs.New()
	_, err := h.Call("readText", []value.Value{value.Text(filepath.Join(t.TempDir(), "nope.txt"))})
	assert.NotNil(t, err)
}

func TestIsFileAndIsDirectory(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))

	h := fs.New()
	v, err := h.Call("isFile", []value.Value{value.Text(filePath)})
	require.Nil(t, err)
	assert.Equal(t, value.Bool(true), v)

	v, err = h.Call("isDirectory", []value.Value{value.Text(dir)})
	require.Nil(t, err)
	assert.Equal(t, value.Bool(true), v)

	v, err = h.Call("isDirectory", []value.Value{value.Text(filePath)})
	require.Nil(t, err)
	assert.Equal(t, value.Bool(false), v)
}

func TestListFilesAndCreateDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested", "deeper")
	h := fs.New()

	_, err := h.Call("createDirectory", []value.Value{value.Text(sub)})
	require.Nil(t, err)
	info, statErr := os.Stat(sub)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	v, err := h.Call("listFiles", []value.Value{value.Text(dir)})
	require.Nil(t, err)
	lst := v.(*container.List)
	assert.Equal(t, int64(2), lst.Size()) // a.txt + nested
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	h := fs.New()
	_, err := h.Call("deleteFile", []value.Value{value.Text(path)})
	require.Nil(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPathHelpers(t *testing.T) {
	h := fs.New()

	v, err := h.Call("basename", []value.Value{value.Text("/a/b/c.txt")})
	require.Nil(t, err)
	assert.Equal(t, value.Text("c.txt"), v)

	v, err = h.Call("dirname", []value.Value{value.Text("/a/b/c.txt")})
	require.Nil(t, err)
	assert.Equal(t, value.Text("/a/b"), v)

	v, err = h.Call("extname", []value.Value{value.Text("/a/b/c.txt")})
	require.Nil(t, err)
	assert.Equal(t, value.Text(".txt"), v)

	v, err = h.Call("join", []value.Value{value.Text("a"), value.Text("b"), value.Text("c")})
	require.Nil(t, err)
	assert.Equal(t, value.Text(filepath.Join("a", "b", "c")), v)

	v, err = h.Call("isAbsolute", []value.Value{value.Text("/a/b")})
	require.Nil(t, err)
	assert.Equal(t, value.Bool(true), v)

	v, err = h.Call("changeExtension", []value.Value{value.Text("a/b.txt"), value.Text(".md")})
	require.Nil(t, err)
	assert.Equal(t, value.Text("a/b.md"), v)
}

func TestRelativePath(t *testing.T) {
	h := fs.New()
	v, err := h.Call("relative", []value.Value{value.Text("/a/b"), value.Text("/a/b/c/d.txt")})
	require.Nil(t, err)
	assert.Equal(t, value.Text(filepath.Join("c", "d.txt")), v)
}

func TestHumanSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o644))

	h := fs.New()
	v, err := h.Call("humanSize", []value.Value{value.Text(path)})
	require.Nil(t, err)
	assert.NotEmpty(t, string(v.(value.Text)))
}

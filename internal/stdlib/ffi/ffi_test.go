package ffi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombocoder/o2l/internal/result"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/stdlib/ffi"
	"github.com/zombocoder/o2l/internal/value"
)

// Tests in this file share ffi's process-wide enable flag and rely on
// Go's within-file test ordering (top to bottom), so the "still disabled"
// assertions run before anything calls Enable().

func TestLoadRequiresEnableFirst(t *testing.T) {
	h := ffi.New()
	_, err := h.Call("load", []value.Value{value.Text("/lib/libc.so")})
	require.NotNil(t, err)
	assert.Equal(t, rterror.KindAccessViolation, err.Kind)
}

func TestSymbolRequiresEnableFirst(t *testing.T) {
	h := ffi.New()
	_, err := h.Call("symbol", []value.Value{value.Nil, value.Text("x"), value.Text("i32->i32")})
	require.NotNil(t, err)
	assert.Equal(t, rterror.KindAccessViolation, err.Kind)
}

func TestEnableFlipsGuard(t *testing.T) {
	assert.False(t, ffi.Enabled())
	ffi.Enable()
	assert.True(t, ffi.Enabled())
}

func TestIsEnabledReflectsGuard(t *testing.T) {
	h := ffi.New()
	v, err := h.Call("isEnabled", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Bool(true), v)
}

func TestLoadMissingPathReturnsFailureResult(t *testing.T) {
	h := ffi.New()
	v, err := h.Call("load", []value.Value{value.Text("/definitely/does/not/exist.so")})
	require.Nil(t, err)
	r, ok := v.(*result.Result)
	require.True(t, ok)
	assert.False(t, r.IsSuccess)
}

func TestLoadRequiresTextPathArgument(t *testing.T) {
	h := ffi.New()
	_, err := h.Call("load", []value.Value{value.Int(1)})
	require.NotNil(t, err)
}

func TestSymbolOnLoadedLibraryThenCallReportsUnsupported(t *testing.T) {
	h := ffi.New()
	// Load against a path that exists so load() itself succeeds — use "."
	// which os.Stat resolves fine as a directory entry.
	v, err := h.Call("load", []value.Value{value.Text(".")})
	require.Nil(t, err)
	r := v.(*result.Result)
	require.True(t, r.IsSuccess)
	lib := r.GetResult()

	symV, err := h.Call("symbol", []value.Value{lib, value.Text("frobnicate"), value.Text("i32,i32->i32")})
	require.Nil(t, err)
	symR := symV.(*result.Result)
	require.True(t, symR.IsSuccess)
	fn := symR.GetResult()

	callV, err := h.Call("call", append([]value.Value{fn}, value.Int(1), value.Int(2)))
	require.Nil(t, err)
	callR := callV.(*result.Result)
	assert.False(t, callR.IsSuccess)
	assert.Equal(t, "FFI_UNSUPPORTED", string(callR.GetError().(*result.Error).GetCode().(value.Text)))
}

func TestSymbolRejectsBadSignature(t *testing.T) {
	h := ffi.New()
	v, err := h.Call("load", []value.Value{value.Text(".")})
	require.Nil(t, err)
	lib := v.(*result.Result).GetResult()

	symV, err := h.Call("symbol", []value.Value{lib, value.Text("x"), value.Text("not-a-signature")})
	require.Nil(t, err)
	symR := symV.(*result.Result)
	assert.False(t, symR.IsSuccess)
}

func TestCallArityMismatchIsFailure(t *testing.T) {
	h := ffi.New()
	v, _ := h.Call("load", []value.Value{value.Text(".")})
	lib := v.(*result.Result).GetResult()
	symV, _ := h.Call("symbol", []value.Value{lib, value.Text("f"), value.Text("i32->i32")})
	fn := symV.(*result.Result).GetResult()

	callV, err := h.Call("call", []value.Value{fn})
	require.Nil(t, err)
	callR := callV.(*result.Result)
	assert.False(t, callR.IsSuccess)
}

func TestCloseThenSymbolFails(t *testing.T) {
	h := ffi.New()
	v, _ := h.Call("load", []value.Value{value.Text(".")})
	lib := v.(*result.Result).GetResult()

	_, err := h.Call("close", []value.Value{lib})
	require.Nil(t, err)

	symV, err := h.Call("symbol", []value.Value{lib, value.Text("f"), value.Text("i32->i32")})
	require.Nil(t, err)
	assert.False(t, symV.(*result.Result).IsSuccess)
}

func TestDispatchOnLibraryAndNativeFn(t *testing.T) {
	h := ffi.New()
	v, _ := h.Call("load", []value.Value{value.Text(".")})
	lib := v.(*result.Result).GetResult()

	pathV, err := ffi.Dispatch(lib, "path", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Text("."), pathV)

	symV, _ := h.Call("symbol", []value.Value{lib, value.Text("f"), value.Text("i32->i32")})
	fn := symV.(*result.Result).GetResult()

	nameV, err := ffi.Dispatch(fn, "name", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Text("f"), nameV)
}

func TestDispatchUnknownMethodOnHandles(t *testing.T) {
	h := ffi.New()
	v, _ := h.Call("load", []value.Value{value.Text(".")})
	lib := v.(*result.Result).GetResult()

	_, err := ffi.Dispatch(lib, "bogus", nil)
	require.NotNil(t, err)
}

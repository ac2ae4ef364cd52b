package object

import (
	"fmt"

	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// NativeFn is a built-in host method implementation: given its already-
// evaluated arguments, it returns a Value or a *rterror.Error. Used by the
// stdlib host objects instead of an AST Body, since their
// implementation lives in Go, not in O²L source.
type NativeFn func(args []value.Value) (value.Value, *rterror.Error)

// HostObject is a built-in object exposed by the interpreter: io, os, fs,
// utils, json, http.client, http.server, ffi. Grounded on host_object.go's
// wrapping idiom, specialized from a reflective interface{} wrapper to an
// explicit name->NativeFn table so arity/type checks can produce the fixed
// message forms callers expect.
type HostObject struct {
	Name    string
	Methods map[string]NativeFn
}

func NewHostObject(name string) *HostObject {
	return &HostObject{Name: name, Methods: make(map[string]NativeFn)}
}

func (h *HostObject) Kind() value.Kind { return value.KObject }
func (h *HostObject) TypeName() string { return h.Name }
func (h *HostObject) IdentityPtr() any  { return h }
func (h *HostObject) String() string   { return fmt.Sprintf("<host:%s>", h.Name) }

// Register installs fn under name, fluently (so stdlib packages can build a
// HostObject with a chain of Register calls, the way funxy's builtins_*.go
// files populate a name->builtin map).
func (h *HostObject) Register(name string, fn NativeFn) *HostObject {
	h.Methods[name] = fn
	return h
}

// Call dispatches a call to the host object's method table, producing the
// stable "Unknown method" error form on a miss ( step 6).
func (h *HostObject) Call(method string, args []value.Value) (value.Value, *rterror.Error) {
	fn, ok := h.Methods[method]
	if !ok {
		return nil, rterror.UnknownMethod(method, h.Name)
	}
	return fn(args)
}

// Package ffi builds O²L's `ffi` host object: a process-wide enable flag,
// a Library handle returned by load(path), and a NativeFn handle returned
// by Library.symbol(name, signature). Grounded on
// original_source/src/Runtime/FFILibrary.cpp's load/symbol/call surface.
// github.com/google/uuid tags each Library/NativeFn handle the way an
// open-file builtin tags file handles, so two handles over the same path
// are still distinguishable.
//
// This package wires the handle/lifecycle surface (enable guard, library
// loading, symbol lookup, Result<Value,Error> error envelope) but does not
// marshal actual C calls through libffi — there is no libffi binding
// available to ground a real call path on, and fabricating one behind a
// replace directive would mean depending on a library that doesn't
// exist. NativeFn.call() (and ffi.call) returns a failed Result with code
// FFI_UNSUPPORTED instead of crashing the process.
package ffi

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/result"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// validTypeCodes is the type-code vocabulary recognized for FFI
// signatures, used to validate a symbol() signature string before a
// NativeFn handle is even created.
var validTypeCodes = map[string]bool{
	"i32": true, "i64": true, "f32": true, "f64": true, "bool": true,
	"text": true, "ptr": true, "void": true,
	"struct": true, "array": true, "callback": true, "cstring": true,
}

var enabled atomic.Bool

// Enabled reports whether the process-wide guard is on (via Enable, which
// ffi.enable() and o2l.yaml's ffi flag both call). internal/cli defines the
// `ffi` global either way; load and symbol check this guard at call time.
func Enabled() bool { return enabled.Load() }

// Enable flips the process-wide guard; called by internal/cli when
// o2l.yaml declares `ffi: true`, or by ffi.enable() itself for scripts run
// without a manifest.
func Enable() { enabled.Store(true) }

// Library is the opaque handle load(path) returns: an FFI Library value
// per "FFI opaque handles (pointer, buffer, struct, array,
// callback) — leaves of the tag tree; dispatcher treats them as opaque
// receivers".
type Library struct {
	ID   string
	Path string

	mu      sync.Mutex
	symbols map[string]*NativeFn
	closed  bool
}

func (l *Library) Kind() value.Kind { return value.KFFIHandle }
func (l *Library) TypeName() string { return "Library" }
func (l *Library) IdentityPtr() any  { return l }
func (l *Library) String() string   { return "Library(" + l.Path + ")" }

// NativeFn is the opaque handle symbol() returns: a bound symbol name plus
// its declared signature ("arg1,arg2->ret"), 
type NativeFn struct {
	ID        string
	Name      string
	Signature string
	ArgTypes  []string
	RetType   string
	lib       *Library
}

func (f *NativeFn) Kind() value.Kind { return value.KFFIHandle }
func (f *NativeFn) TypeName() string { return "NativeFn" }
func (f *NativeFn) IdentityPtr() any  { return f }
func (f *NativeFn) String() string   { return "NativeFn(" + f.Name + ": " + f.Signature + ")" }

// New builds the `ffi` host object. The returned HostObject always exposes
// enable()/isEnabled(); load and symbol additionally check Enabled() at
// call time so a script that never calls ffi.enable() (and whose o2l.yaml,
// if any, doesn't set ffi: true) gets a clear AccessViolation instead of a
// silent no-op. close and call take a handle and do not check the guard.
func New() *object.HostObject {
	h := object.NewHostObject("ffi")

	h.Register("enable", func(args []value.Value) (value.Value, *rterror.Error) {
		Enable()
		return value.Nil, nil
	})

	h.Register("isEnabled", func(args []value.Value) (value.Value, *rterror.Error) {
		return value.Bool(Enabled()), nil
	})

	h.Register("load", func(args []value.Value) (value.Value, *rterror.Error) {
		if !Enabled() {
			return nil, rterror.New(rterror.KindAccessViolation, "ffi.load() requires ffi.enable() (or o2l.yaml's ffi: true) first")
		}
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("ffi", "load", "one Text library path argument")
		}
		if _, err := os.Stat(path); err != nil {
			return result.Failure(result.NewError("ffi.load: "+err.Error(), "FFI_LOAD_ERROR"), "Library", "Error"), nil
		}
		lib := &Library{ID: uuid.NewString(), Path: path, symbols: make(map[string]*NativeFn)}
		return result.Success(lib, "Library", "Error"), nil
	})

	h.Register("symbol", func(args []value.Value) (value.Value, *rterror.Error) {
		if !Enabled() {
			return nil, rterror.New(rterror.KindAccessViolation, "ffi.symbol() requires ffi.enable() (or o2l.yaml's ffi: true) first")
		}
		lib, ok := libArg(args, 0)
		name, ok2 := textArg(args, 1)
		sig, ok3 := textArg(args, 2)
		if !ok || !ok2 || !ok3 {
			return nil, rterror.RequiresArgs("ffi", "symbol", "a Library, a Text symbol name, and a Text \"args->ret\" signature")
		}
		argTypes, retType, sigErr := parseSignature(sig)
		if sigErr != nil {
			return result.Failure(result.NewError(sigErr.Error(), "FFI_SIGNATURE_ERROR"), "NativeFn", "Error"), nil
		}

		lib.mu.Lock()
		defer lib.mu.Unlock()
		if lib.closed {
			return result.Failure(result.NewError("ffi.symbol: library closed", "FFI_CLOSED"), "NativeFn", "Error"), nil
		}
		fn := &NativeFn{ID: uuid.NewString(), Name: name, Signature: sig, ArgTypes: argTypes, RetType: retType, lib: lib}
		lib.symbols[name] = fn
		return result.Success(fn, "NativeFn", "Error"), nil
	})

	h.Register("close", func(args []value.Value) (value.Value, *rterror.Error) {
		lib, ok := libArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("ffi", "close", "one Library argument")
		}
		lib.mu.Lock()
		lib.closed = true
		lib.mu.Unlock()
		return value.Nil, nil
	})

	h.Register("call", func(args []value.Value) (value.Value, *rterror.Error) {
		fn, ok := fnArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("ffi", "call", "one NativeFn as the first argument")
		}
		return callNative(fn, args[1:]), nil
	})

	return h
}

// callNative is the single choke point every invocation of a bound symbol
// goes through (whether called as ffi.call(fn, ...) or fn.call(...) via
// the dispatcher). It validates declared arity against the signature and
// then reports the platform-binding gap as a Result.Error rather than
// panicking, : "Errors surfaced as Result<Value, Error>".
func callNative(fn *NativeFn, callArgs []value.Value) *result.Result {
	if len(callArgs) != len(fn.ArgTypes) {
		return result.Failure(
			result.NewError(fmt.Sprintf("NativeFn.call: expected %d arguments for signature %q, got %d", len(fn.ArgTypes), fn.Signature, len(callArgs)), "FFI_ARITY_ERROR"),
			"Value", "Error")
	}
	fn.lib.mu.Lock()
	closed := fn.lib.closed
	fn.lib.mu.Unlock()
	if closed {
		return result.Failure(result.NewError("NativeFn.call: library closed", "FFI_CLOSED"), "Value", "Error")
	}
	return result.Failure(
		result.NewError("NativeFn.call: no native ABI binding is compiled into this build for \""+fn.Name+"\"", "FFI_UNSUPPORTED"),
		"Value", "Error")
}

func parseSignature(sig string) ([]string, string, *sigError) {
	parts := strings.SplitN(sig, "->", 2)
	if len(parts) != 2 {
		return nil, "", &sigError{"ffi signature must be \"arg1,arg2->ret\", got " + sig}
	}
	ret := strings.TrimSpace(parts[1])
	if !validTypeCodes[ret] {
		return nil, "", &sigError{"unknown ffi return type code: " + ret}
	}
	argsPart := strings.TrimSpace(parts[0])
	var args []string
	if argsPart != "" {
		for _, a := range strings.Split(argsPart, ",") {
			a = strings.TrimSpace(a)
			if !validTypeCodes[a] {
				return nil, "", &sigError{"unknown ffi argument type code: " + a}
			}
			args = append(args, a)
		}
	}
	return args, ret, nil
}

type sigError struct{ msg string }

func (e *sigError) Error() string { return e.msg }

// Dispatch resolves a method call on an FFI handle (Library or NativeFn) —
// the opaque-receiver path a stdlib host object can expose. internal/dispatch delegates
// here for the two concrete handle kinds this package defines.
func Dispatch(recv value.Value, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch r := recv.(type) {
	case *Library:
		switch method {
		case "symbol":
			name, ok := textArg(args, 0)
			sig, ok2 := textArg(args, 1)
			if !ok || !ok2 {
				return nil, rterror.RequiresArgs("Library", "symbol", "a Text symbol name and a Text signature")
			}
			argTypes, retType, sigErr := parseSignature(sig)
			if sigErr != nil {
				return result.Failure(result.NewError(sigErr.Error(), "FFI_SIGNATURE_ERROR"), "NativeFn", "Error"), nil
			}
			r.mu.Lock()
			defer r.mu.Unlock()
			fn := &NativeFn{ID: uuid.NewString(), Name: name, Signature: sig, ArgTypes: argTypes, RetType: retType, lib: r}
			r.symbols[name] = fn
			return result.Success(fn, "NativeFn", "Error"), nil
		case "close":
			r.mu.Lock()
			r.closed = true
			r.mu.Unlock()
			return value.Nil, nil
		case "path":
			return value.Text(r.Path), nil
		default:
			return nil, rterror.UnknownMethod(method, "Library")
		}
	case *NativeFn:
		switch method {
		case "call":
			return callNative(r, args), nil
		case "name":
			return value.Text(r.Name), nil
		case "signature":
			return value.Text(r.Signature), nil
		default:
			return nil, rterror.UnknownMethod(method, "NativeFn")
		}
	default:
		return nil, rterror.New(rterror.KindTypeMismatch, "%s does not support method calls", recv.TypeName())
	}
}

func textArg(args []value.Value, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	t, ok := args[i].(value.Text)
	return string(t), ok
}

func libArg(args []value.Value, i int) (*Library, bool) {
	if i >= len(args) {
		return nil, false
	}
	l, ok := args[i].(*Library)
	return l, ok
}

func fnArg(args []value.Value, i int) (*NativeFn, bool) {
	if i >= len(args) {
		return nil, false
	}
	f, ok := args[i].(*NativeFn)
	return f, ok
}

// Package dispatch implements the built-in method tables consulted by the
// central dispatcher (, §4.6.1) for every receiver variant that
// isn't a user-defined object (those are dispatched by package eval, which
// owns method-body evaluation). Grounded on the prior interpreter
// evaluator/apply.go's receiver-type switch and getRuntimeTypeName, and on
// the per-kind builtin files (builtins_std.go, object_primitives.go) for
// the per-type-table idiom.
package dispatch

import (
	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/result"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/stdlib/ffi"
	"github.com/zombocoder/o2l/internal/value"
)

// ReceiverName maps a receiver Value to the canonical name used in stack
// frames and error messages ( step 2).
func ReceiverName(v value.Value) string {
	switch v.(type) {
	case *object.Instance:
		return v.(*object.Instance).Name
	case *object.HostObject:
		return v.(*object.HostObject).Name
	case value.Int:
		return "Int"
	case value.Long:
		return "Long"
	case value.Float:
		return "Float"
	case value.Double:
		return "Double"
	case value.Bool:
		return "Bool"
	case value.Char:
		return "Char"
	case value.Text:
		return "Text"
	case *container.List:
		return "List"
	case *container.ListIterator:
		return "ListIterator"
	case *container.Map:
		return "Map"
	case *container.MapIterator:
		return "MapIterator"
	case *container.MapObject:
		return "MapObject"
	case *container.Set:
		return "Set"
	case *container.SetIterator:
		return "SetIterator"
	case *container.RepeatIterator:
		return "RepeatIterator"
	case *result.Result:
		return "Result"
	case *result.Error:
		return "Error"
	case *ffi.Library:
		return "Library"
	case *ffi.NativeFn:
		return "NativeFn"
	default:
		return "object"
	}
}

// IsBuiltinReceiver reports whether v is handled by this package (as
// opposed to a user *object.Instance, dispatched by package eval).
func IsBuiltinReceiver(v value.Value) bool {
	switch v.(type) {
	case *object.Instance:
		return false
	default:
		return true
	}
}

// Dispatch resolves method on a built-in receiver variant. It never
// receives a *object.Instance — package eval handles those directly so it
// can run method bodies.
func Dispatch(recv value.Value, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch r := recv.(type) {
	case *object.HostObject:
		return r.Call(method, args)
	case value.Text:
		return dispatchText(string(r), method, args)
	case value.Int:
		return dispatchInt(r, method, args)
	case value.Long:
		return dispatchLong(r, method, args)
	case value.Float:
		return dispatchFloat(r, method, args)
	case value.Double:
		return dispatchDouble(r, method, args)
	case value.Bool:
		return dispatchBool(r, method, args)
	case value.Char:
		return dispatchChar(r, method, args)
	case *container.List:
		return dispatchList(r, method, args)
	case *container.ListIterator:
		return dispatchListIterator(r, method, args)
	case *container.Map:
		return dispatchMap(r, method, args)
	case *container.MapIterator:
		return dispatchMapIterator(r, method, args)
	case *container.MapObject:
		return dispatchMapObject(r, method, args)
	case *container.Set:
		return dispatchSet(r, method, args)
	case *container.SetIterator:
		return dispatchSetIterator(r, method, args)
	case *container.RepeatIterator:
		return dispatchRepeatIterator(r, method, args)
	case *result.Result:
		return dispatchResult(r, method, args)
	case *result.Error:
		return dispatchError(r, method, args)
	case *ffi.Library:
		return ffi.Dispatch(r, method, args)
	case *ffi.NativeFn:
		return ffi.Dispatch(r, method, args)
	default:
		return nil, rterror.New(rterror.KindTypeMismatch, "%s does not support method calls", recv.TypeName())
	}
}

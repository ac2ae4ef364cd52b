package eval

import (
	"fmt"

	"github.com/zombocoder/o2l/internal/ast"
	"github.com/zombocoder/o2l/internal/context"
	"github.com/zombocoder/o2l/internal/dispatch"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/result"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// Evaluator owns one interpreter run: the context (scope/this/frame
// stacks,  Context) and the table of declared object types a `new`
// expression can instantiate.
type Evaluator struct {
	Ctx     *context.Context
	objects map[string]*ast.ObjectDecl
}

func New(ctx *context.Context) *Evaluator {
	return &Evaluator{Ctx: ctx, objects: make(map[string]*ast.ObjectDecl)}
}

// RegisterFile declares every object in a parsed file so `new` expressions
// can find them (: the entry file declares `Main` among possibly
// other supporting objects).
func (e *Evaluator) RegisterFile(f *ast.File) {
	for _, o := range f.Objects {
		e.objects[o.Name] = o
	}
}

// DefineGlobal binds a pre-built value (a stdlib host object, or
// __program_args__) at the top-level scope, before Main runs.
func (e *Evaluator) DefineGlobal(name string, v value.Value) {
	e.Ctx.Define(name, v)
}

// LookupObjectDecl reports whether name was registered by RegisterFile;
// used by internal/cli to find Main without going through a `new` call.
func (e *Evaluator) LookupObjectDecl(name string) (*ast.ObjectDecl, bool) {
	d, ok := e.objects[name]
	return d, ok
}

// Instantiate builds a fresh *object.Instance for decl, wires its method
// table, and — if a `constructor` method is declared — runs it against the
// already-evaluated args, as an internal call ( ObjectInstance:
// "Created by the new expression which invokes a constructor").
func (e *Evaluator) Instantiate(decl *ast.ObjectDecl, args []value.Value, pos ast.Position) *object.Instance {
	inst := object.NewInstance(decl.Name)
	for _, m := range decl.Methods {
		inst.DefineMethod(&object.Method{Name: m.Name, Params: m.Params, Body: m.Body, External: m.External})
	}
	if ctor := inst.Lookup("constructor"); ctor != nil {
		e.callUserMethod(inst, ctor, args, false, pos)
	}
	return inst
}

// callUserMethod implements call_method for a user object:
// visibility check, scope/this/frame push, body evaluation, guaranteed
// pop on every exit path, return-signal capture.
func (e *Evaluator) callUserMethod(inst *object.Instance, m *object.Method, args []value.Value, externalCall bool, pos ast.Position) (result value.Value) {
	if err := inst.CheckVisibility(m, externalCall); err != nil {
		panic(err)
	}

	e.Ctx.PushScope()
	e.Ctx.SetThis(inst)
	e.Ctx.PushFrame(rterror.Frame{MethodName: m.Name, ReceiverName: inst.Name, Line: pos.Line, Column: pos.Column})

	defer func() {
		e.Ctx.PopFrame()
		e.Ctx.ClearThis()
		e.Ctx.PopScope()
	}()
	defer stampTrace(e.Ctx)

	for i, p := range m.Params {
		if i < len(args) {
			e.Ctx.Define(p, args[i])
		} else {
			e.Ctx.Define(p, value.Nil)
		}
	}

	result = value.Nil
	func() {
		defer func() {
			if r := recover(); r != nil {
				if rs, ok := r.(returnSignal); ok {
					result = rs.Value
					return
				}
				panic(r)
			}
		}()
		body, _ := m.Body.(*ast.Block)
		if body != nil {
			e.evalBlock(body)
		}
	}()
	return result
}

// evalMethodCall implements the dispatcher algorithm of 
func (e *Evaluator) evalMethodCall(mc *ast.MethodCall) value.Value {
	if mc.Receiver == nil {
		if v, ok := e.tryGlobalConstructor(mc); ok {
			return v
		}
	}

	var recv value.Value
	implicitThis := mc.Receiver == nil
	if implicitThis {
		recv = e.Ctx.This()
		if recv == nil {
			panic(rterror.New(rterror.KindUnresolvedReference, "no 'this' in current scope for call to %s", mc.Method))
		}
	} else {
		recv = e.evalExpr(mc.Receiver)
	}

	recvName := dispatch.ReceiverName(recv)
	frame := rterror.Frame{MethodName: mc.Method, ReceiverName: recvName, Line: mc.Pos().Line, Column: mc.Pos().Column}
	e.Ctx.PushFrame(frame)
	defer e.Ctx.PopFrame()
	defer stampTrace(e.Ctx)

	args := make([]value.Value, len(mc.Args))
	for i, a := range mc.Args {
		args[i] = e.evalExpr(a)
	}

	if inst, ok := recv.(*object.Instance); ok {
		m := inst.Lookup(mc.Method)
		if m == nil {
			panic(rterror.UnknownMethod(mc.Method, inst.Name))
		}
		externalCall := !implicitThis && inst != e.Ctx.This()
		return e.callUserMethod(inst, m, args, externalCall, mc.Pos())
	}

	v, err := dispatch.Dispatch(recv, mc.Method, args)
	if err != nil {
		panic(err)
	}
	return v
}

// tryGlobalConstructor recognizes the bare-call form of Error
// constructor (`Error("message", "code")`, optionally a third cause
// argument), grounded on original_source's ErrorInstance taking those same
// positional fields. It's checked ahead of the ordinary implicit-this
// dispatch so `Error(...)` works both inside and outside a method body
// (e.g. directly inside Main.main(),  S9), without requiring a user
// object to define a method literally named "Error".
func (e *Evaluator) tryGlobalConstructor(mc *ast.MethodCall) (value.Value, bool) {
	if mc.Method != "Error" {
		return nil, false
	}
	if len(mc.Args) != 2 && len(mc.Args) != 3 {
		return nil, false
	}
	msgV := e.evalExpr(mc.Args[0])
	codeV := e.evalExpr(mc.Args[1])
	msg, ok1 := msgV.(value.Text)
	code, ok2 := codeV.(value.Text)
	if !ok1 || !ok2 {
		panic(rterror.New(rterror.KindEvaluation, "Error(message, code) requires two Text arguments"))
	}
	if len(mc.Args) == 3 {
		cause := e.evalExpr(mc.Args[2])
		return result.NewErrorWithCause(string(msg), string(code), cause), true
	}
	return result.NewError(string(msg), string(code)), true
}

// stampTrace runs as a deferred call registered after a frame's PopFrame
// defer, so on a panicking exit it recovers first (while the frame is
// still on the stack), stamps the frame list onto a bare *rterror.Error
// the first time it crosses a call boundary, and re-panics — letting
// PopFrame still run on the way further out. A *rterror.Error that
// already carries a trace (crossed an inner call boundary already) is
// rethrown as-is (: "If it already carries a trace, rethrow
// as-is").
func stampTrace(ctx *context.Context) {
	if r := recover(); r != nil {
		if err, ok := r.(*rterror.Error); ok && len(err.Trace) == 0 {
			err.Trace = ctx.Frames()
		}
		panic(r)
	}
}

// wrapSystemError converts an arbitrary recovered panic into the §4.7
// try/catch "system-level error" shape: a *result.Error with code
// SYSTEM_ERROR. A *rterror.Error keeps only its Message (its Kind is not
// carried over); any other error or value contributes its text.
func wrapSystemError(r any) value.Value {
	switch v := r.(type) {
	case *rterror.Error:
		return result.NewError(v.Message, "SYSTEM_ERROR")
	case error:
		return result.NewError(v.Error(), "SYSTEM_ERROR")
	default:
		return result.NewError(fmt.Sprintf("%v", v), "SYSTEM_ERROR")
	}
}

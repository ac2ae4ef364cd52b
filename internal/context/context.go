// Package context implements O²L's lexical scope chain, `this` binding and
// call-frame stack, generalized from a simple chain-walking Environment into
// one with an explicit define/define_const/reassign/push_frame contract and
// const-binding support.
package context

import (
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

type binding struct {
	val   value.Value
	isConst bool
}

// scope is one lexical block's bindings.
type scope struct {
	vars map[string]*binding
}

func newScope() *scope {
	return &scope{vars: make(map[string]*binding)}
}

// ThisValue is the receiver (an object.Instance) of a method activation.
// It is an interface over value.Value rather than *object.Instance, so
// this package does not import package object.
type ThisValue interface {
	value.Value
}

// Context is a stack of scopes plus the current `this` and call-frame
// stacks. One Context exists per interpreter run (spec doesn't require
// per-goroutine contexts since execution is single-threaded, ).
type Context struct {
	scopes []*scope
	thises []ThisValue // parallel stack so nested method calls restore outer `this`
	frames []rterror.Frame

	// ProgramArgs backs __program_args__ (, §6): populated once by
	// the launcher, read-only to user code thereafter.
	ProgramArgs value.Value
}

// New creates a Context with a single, empty top-level scope.
func New() *Context {
	return &Context{scopes: []*scope{newScope()}}
}

// PushScope opens a new lexical block. Every block-introducing construct
// must pair this with exactly one PopScope (, tested by §8's
// "Scope balance" property).
func (c *Context) PushScope() {
	c.scopes = append(c.scopes, newScope())
}

// PopScope closes the innermost lexical block. Panics on underflow — a
// bug in the evaluator, never user-triggerable, so a loud failure is
// preferable to silently corrupting the scope stack.
func (c *Context) PopScope() {
	if len(c.scopes) == 0 {
		panic("context: pop_scope underflow")
	}
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// Depth reports the current scope-stack depth, used by tests asserting the
// "Scope balance" property.
func (c *Context) Depth() int { return len(c.scopes) }

func (c *Context) top() *scope { return c.scopes[len(c.scopes)-1] }

// Define binds name in the innermost scope as mutable. Redefinition in the
// same scope silently overwrites, 
func (c *Context) Define(name string, v value.Value) {
	c.top().vars[name] = &binding{val: v}
}

// DefineConst binds name in the innermost scope as non-reassignable.
func (c *Context) DefineConst(name string, v value.Value) {
	c.top().vars[name] = &binding{val: v, isConst: true}
}

func (c *Context) find(name string) *binding {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if b, ok := c.scopes[i].vars[name]; ok {
			return b
		}
	}
	return nil
}

// Lookup searches the scope chain innermost-to-outermost.
func (c *Context) Lookup(name string) (value.Value, *rterror.Error) {
	if b := c.find(name); b != nil {
		return b.val, nil
	}
	return nil, rterror.New(rterror.KindUnresolvedReference, "undefined reference: %s", name)
}

// Reassign finds the defining scope and mutates it in place. Fails with
// UnresolvedReference if absent, Evaluation if the binding is a constant
//.
func (c *Context) Reassign(name string, v value.Value) *rterror.Error {
	b := c.find(name)
	if b == nil {
		return rterror.New(rterror.KindUnresolvedReference, "undefined reference: %s", name)
	}
	if b.isConst {
		return rterror.New(rterror.KindEvaluation, "cannot reassign constant: %s", name)
	}
	b.val = v
	return nil
}

// SetThis establishes the receiver for the innermost method activation.
func (c *Context) SetThis(obj ThisValue) {
	c.thises = append(c.thises, obj)
}

// ClearThis pops the innermost `this` binding, restoring the caller's.
func (c *Context) ClearThis() {
	if len(c.thises) == 0 {
		return
	}
	c.thises = c.thises[:len(c.thises)-1]
}

// This returns the current receiver, or nil outside any method activation.
func (c *Context) This() ThisValue {
	if len(c.thises) == 0 {
		return nil
	}
	return c.thises[len(c.thises)-1]
}

// PushFrame records a method-call stack frame for trace-building.
func (c *Context) PushFrame(f rterror.Frame) {
	c.frames = append(c.frames, f)
}

// PopFrame removes the innermost stack frame. Safe to call on an empty
// stack (a no-op) so exception-path cleanup can call it unconditionally.
func (c *Context) PopFrame() {
	if len(c.frames) == 0 {
		return
	}
	c.frames = c.frames[:len(c.frames)-1]
}

// Frames returns a copy of the current call-frame stack, innermost last,
// for stamping onto a newly raised *rterror.Error.
func (c *Context) Frames() []rterror.Frame {
	out := make([]rterror.Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

// FrameDepth reports the current frame-stack depth, used to decide whether
// an exception unwinding through a try already carries a trace (:
// "if it already carries a trace, rethrow as-is").
func (c *Context) FrameDepth() int { return len(c.frames) }

// TruncateFrames discards all frames pushed after the given depth; used
// when a catch block re-enters after an exception, so frames pushed inside
// the failed try don't leak into later calls (: "a pop in an
// exception path discards all frames pushed after the try entry").
func (c *Context) TruncateFrames(depth int) {
	if depth < len(c.frames) {
		c.frames = c.frames[:depth]
	}
}

// TruncateScopes discards all scopes pushed after the given depth, the
// scope-stack analogue of TruncateFrames for exception unwinding.
func (c *Context) TruncateScopes(depth int) {
	if depth < len(c.scopes) {
		c.scopes = c.scopes[:depth]
	}
}

package eval

import (
	"strings"

	"github.com/zombocoder/o2l/internal/ast"
	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// evalBlock pushes a scope, evaluates every statement, and pops the scope
// on every exit path — normal completion, a panic'd control signal, or a
// propagating error — since Go's defer runs during panic unwinding too.
// This is what keeps the §8 "Scope balance" property true without any
// explicit recover here.
func (e *Evaluator) evalBlock(b *ast.Block) {
	e.Ctx.PushScope()
	defer e.Ctx.PopScope()
	for _, s := range b.Stmts {
		e.evalStmt(s)
	}
}

func (e *Evaluator) evalStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		e.evalVarDecl(n)
	case *ast.Assign:
		v := e.evalExpr(n.Value)
		if err := e.Ctx.Reassign(n.Name, v); err != nil {
			panic(err)
		}
	case *ast.ExprStmt:
		e.evalExpr(n.X)
	case *ast.Block:
		e.evalBlock(n)
	case *ast.If:
		e.evalIf(n)
	case *ast.While:
		e.evalWhile(n)
	case *ast.Return:
		var v value.Value = value.Nil
		if n.Value != nil {
			v = e.evalExpr(n.Value)
		}
		panic(returnSignal{Value: v})
	case *ast.Throw:
		v := e.evalExpr(n.Value)
		panic(throwSignal{Value: v})
	case *ast.TryCatchFinally:
		e.evalTry(n)
	default:
		panic(rterror.New(rterror.KindEvaluation, "unsupported statement node"))
	}
}

// evalVarDecl implements declaration-time type check: List<T>
// element checking, a small implicit-numeric-widening table for scalars,
// and lenient (unchecked) acceptance for every other declared type name.
func (e *Evaluator) evalVarDecl(n *ast.VarDecl) {
	v := e.evalExpr(n.Value)
	if n.TypeName != "" {
		checkDeclType(n.TypeName, v)
	}
	if n.Const {
		e.Ctx.DefineConst(n.Name, v)
	} else {
		e.Ctx.Define(n.Name, v)
	}
}

var numericWidening = map[string]map[string]bool{
	"Long":   {"Int": true},
	"Float":  {"Int": true},
	"Double": {"Int": true, "Float": true},
}

func checkDeclType(typeName string, v value.Value) {
	if strings.HasPrefix(typeName, "List<") {
		inner := strings.TrimSuffix(strings.TrimPrefix(typeName, "List<"), ">")
		lst, ok := v.(*container.List)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "declaration type %s does not match value of type %s", typeName, v.TypeName()))
		}
		for _, el := range lst.Snapshot() {
			if el.TypeName() != inner && !numericWidening[inner][el.TypeName()] {
				panic(rterror.New(rterror.KindEvaluation, "List element type mismatch: expected %s, got %s", inner, el.TypeName()))
			}
		}
		return
	}
	if !isPrimitiveTypeName(typeName) {
		return // lenient for records/objects/enums/etc.
	}
	if v.TypeName() == typeName {
		return
	}
	if numericWidening[typeName][v.TypeName()] {
		return
	}
	panic(rterror.New(rterror.KindEvaluation, "declaration type %s does not match value of type %s", typeName, v.TypeName()))
}

func isPrimitiveTypeName(name string) bool {
	switch name {
	case "Int", "Long", "Float", "Double", "Bool", "Char", "Text":
		return true
	default:
		return false
	}
}

func (e *Evaluator) evalIf(n *ast.If) {
	cond := e.evalExpr(n.Cond)
	b, ok := cond.(value.Bool)
	if !ok {
		panic(rterror.New(rterror.KindEvaluation, "if condition must be Bool, got %s", cond.TypeName()))
	}
	if bool(b) {
		e.evalBlock(n.Then)
		return
	}
	switch elseN := n.Else.(type) {
	case nil:
		return
	case *ast.Block:
		e.evalBlock(elseN)
	case *ast.If:
		e.evalIf(elseN)
	}
}

func (e *Evaluator) evalWhile(n *ast.While) {
	for {
		cond := e.evalExpr(n.Cond)
		b, ok := cond.(value.Bool)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "while condition must be Bool, got %s", cond.TypeName()))
		}
		if !bool(b) {
			return
		}
		e.evalBlock(n.Body)
	}
}

// evalTry implements try/catch/finally algorithm. A pending
// outcome (nil = fell through normally) is tracked through the try and
// catch phases and overridden by whatever finally does, per rule 5.
func (e *Evaluator) evalTry(n *ast.TryCatchFinally) {
	depth := e.Ctx.FrameDepth()
	scopeDepth := e.Ctx.Depth()

	var pendingReturn *returnSignal
	var pendingPanic any // non-nil means "re-raise this after finally"

	func() {
		defer func() {
			if r := recover(); r != nil {
				e.Ctx.TruncateFrames(depth)
				e.Ctx.TruncateScopes(scopeDepth)
				switch sig := r.(type) {
				case returnSignal:
					pendingReturn = &sig
				case throwSignal:
					e.runCatch(n, sig.Value, &pendingReturn, &pendingPanic)
				default:
					// System-level error ( rule 2): wrap and run catch.
					e.runCatch(n, wrapSystemError(r), &pendingReturn, &pendingPanic)
				}
			}
		}()
		e.evalBlock(n.Try)
	}()

	if n.HasFinally {
		finallyOverrode := false
		func() {
			defer func() {
				if r := recover(); r != nil {
					if rs, ok := r.(returnSignal); ok {
						pendingReturn = &rs
						pendingPanic = nil
						finallyOverrode = true
						return
					}
					// An exception from finally replaces whatever was
					// propagating ( rule 5).
					pendingReturn = nil
					pendingPanic = r
					finallyOverrode = true
				}
			}()
			e.evalBlock(n.Finally)
		}()
		_ = finallyOverrode
	}

	if pendingPanic != nil {
		panic(pendingPanic)
	}
	if pendingReturn != nil {
		panic(*pendingReturn)
	}
}

// runCatch: if a catch clause exists, run it
// (its own return/throw become the new pending outcome); otherwise the
// caught value re-propagates as a user exception after finally runs.
func (e *Evaluator) runCatch(n *ast.TryCatchFinally, caught value.Value, pendingReturn **returnSignal, pendingPanic *any) {
	if !n.HasCatch {
		*pendingPanic = throwSignal{Value: caught}
		return
	}
	e.Ctx.PushScope()
	defer e.Ctx.PopScope()
	defer func() {
		if r := recover(); r != nil {
			if rs, ok := r.(returnSignal); ok {
				*pendingReturn = &rs
				return
			}
			*pendingPanic = r
		}
	}()
	e.Ctx.Define(n.CatchVar, caught)
	for _, st := range n.Catch.Stmts {
		e.evalStmt(st)
	}
}

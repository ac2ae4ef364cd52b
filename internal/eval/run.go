package eval

import (
	"github.com/zombocoder/o2l/internal/ast"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// CallExternalMethod is the entry point internal/cli uses to invoke
// Main.main() (and http.server route handlers' handle()). The call comes
// from the launcher rather than from another object, so the method's
// visibility is not checked: a non-external method can be invoked. It
// converts every way a method body can terminate — normal return, an
// uncaught *rterror.Error, or an uncaught user throw — into plain return
// values so the launcher doesn't need to know about panic/recover.
func (e *Evaluator) CallExternalMethod(inst *object.Instance, method string, args []value.Value) (returned value.Value, rtErr *rterror.Error, userThrown value.Value) {
	m := inst.Lookup(method)
	if m == nil {
		return value.Nil, rterror.UnknownMethod(method, inst.Name), nil
	}

	defer func() {
		if r := recover(); r != nil {
			switch sig := r.(type) {
			case throwSignal:
				userThrown = sig.Value
			case *rterror.Error:
				rtErr = sig
			default:
				rtErr = rterror.New(rterror.KindSystem, "%v", sig)
			}
		}
	}()

	returned = e.callUserMethod(inst, m, args, false, ast.Position{})
	return returned, nil, nil
}

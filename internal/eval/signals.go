// Package eval implements O²L's statement/expression evaluators and the
// user-object half of the central dispatcher (, §4.6, §4.7).
// Built-in receivers are delegated to package dispatch; this package owns
// everything that needs to run an *ast.Block, which keeps package object
// and package dispatch free of a dependency on the AST.
//
// Grounded on eval-loop
// shape and object_control.go's ReturnValue/ThrowValue signal idiom,
// adapted to Go panic/recover instead of funxy's Go-native error-return
// signal types (funxy threads a *ControlFlow out of every Eval call;
// this interpreter instead panics with a typed signal and recovers at
// the nearest construct that's allowed to observe it — a try/finally or
// a method-call boundary — which keeps ordinary expression evaluation
// free of a second return value everywhere arithmetic and dispatch meet).
package eval

import (
	"github.com/zombocoder/o2l/internal/value"
)

// returnSignal unwinds a method activation up to its call_method boundary
// ( Return: "unwinds via a dedicated non-error signal that is
// *not* intercepted by catch, only by finally").
type returnSignal struct{ Value value.Value }

// throwSignal carries a user-thrown value ( Throw). Distinguished
// from a *rterror.Error panic (a system-level error,  try/catch
// rule 2) so try/catch can apply the SYSTEM_ERROR wrapping rule only to
// the latter.
type throwSignal struct{ Value value.Value }

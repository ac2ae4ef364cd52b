// Package result implements O²L's structured Error value and the
// Result<T,E> discriminated union, matching the exact field layout and
// to_string forms of original_source/src/Runtime/ErrorInstance.hpp and
// ResultInstance.hpp.
package result

import (
	"fmt"

	"github.com/zombocoder/o2l/internal/value"
)

// Error carries {message, code, optional cause}  The cause
// chain renders as nested "caused by" suffixes (implementation flexibility
//  explicitly allows).
type Error struct {
	Message string
	Code    string
	Cause   value.Value // nil when absent, per SPEC_FULL.md's HasCause() note
}

func NewError(message, code string) *Error {
	return &Error{Message: message, Code: code}
}

func NewErrorWithCause(message, code string, cause value.Value) *Error {
	return &Error{Message: message, Code: code, Cause: cause}
}

func (e *Error) Kind() value.Kind { return value.KError }
func (e *Error) TypeName() string { return "Error" }
func (e *Error) IdentityPtr() any  { return e }

func (e *Error) HasCause() bool { return e.Cause != nil }

func (e *Error) String() string {
	s := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.HasCause() {
		s += "\ncaused by: " + value.ToString(e.Cause)
	}
	return s
}

func (e *Error) GetMessage() value.Value { return value.Text(e.Message) }
func (e *Error) GetCode() value.Value    { return value.Text(e.Code) }

// Result is O²L's Result<T,E>: either a success holding a value of declared
// type T, or an error holding a value of declared type E. Type names are
// kept for rendering only; they are not enforced after construction
//.
type Result struct {
	IsSuccess     bool
	Value         value.Value
	Err           value.Value
	ValueTypeName string
	ErrTypeName   string
}

func Success(v value.Value, valueType, errType string) *Result {
	return &Result{IsSuccess: true, Value: v, ValueTypeName: valueType, ErrTypeName: errType}
}

func Failure(e value.Value, valueType, errType string) *Result {
	return &Result{IsSuccess: false, Err: e, ValueTypeName: valueType, ErrTypeName: errType}
}

func (r *Result) Kind() value.Kind { return value.KResult }
func (r *Result) TypeName() string {
	return fmt.Sprintf("Result<%s, %s>", r.ValueTypeName, r.ErrTypeName)
}
func (r *Result) IdentityPtr() any { return r }

// String reproduces original_source/src/Runtime/ResultInstance.hpp's
// toString() verbatim.
func (r *Result) String() string {
	if r.IsSuccess {
		return fmt.Sprintf("Result.Success(%s)", value.ToString(r.Value))
	}
	return fmt.Sprintf("Result.Error(%s)", value.ToString(r.Err))
}

// GetResult returns the success value without checking IsSuccess, matching
// : "do not fail if error — caller must check".
func (r *Result) GetResult() value.Value {
	if r.Value == nil {
		return value.Nil
	}
	return r.Value
}

func (r *Result) GetError() value.Value {
	if r.Err == nil {
		return value.Nil
	}
	return r.Err
}

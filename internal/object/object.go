// Package object implements O²L's user-defined object runtime: instances,
// method tables with public/protected visibility, and properties. Grounded
// on object_data.go's DataInstance/Constructor shape and object_advanced.go's
// method-table idiom, generalized to add the external/internal visibility
// model fresh (there's no public/protected distinction in that source).
//
// Method bodies are kept as an opaque Body (an AST node, interpreted by
// package eval) so this package has no dependency on the statement/
// expression evaluator; package eval runs a method's Body against its
// Instance.
package object

import (
	"fmt"
	"sync"

	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// Method is one entry in an Instance's method table.
type Method struct {
	Name     string
	Params   []string
	Body     any // *ast.Block, interpreted by package eval
	External bool
}

// Instance is a user-defined object: a name, a method table, a property
// map, and nothing else directly accessible from outside (:
// "properties are not part of the external call surface").
type Instance struct {
	mu         sync.Mutex
	Name       string
	Methods    map[string]*Method
	Properties map[string]value.Value
}

func NewInstance(name string) *Instance {
	return &Instance{Name: name, Methods: make(map[string]*Method), Properties: make(map[string]value.Value)}
}

func (o *Instance) Kind() value.Kind  { return value.KObject }
func (o *Instance) TypeName() string  { return o.Name }
func (o *Instance) IdentityPtr() any  { return o }
func (o *Instance) String() string    { return fmt.Sprintf("%s@object", o.Name) }

// DefineMethod installs a method in the table (overwrites any previous
// method of the same name, matching the source language's single
// definition-per-name rule at class-body evaluation time).
func (o *Instance) DefineMethod(m *Method) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Methods[m.Name] = m
}

// Lookup returns the named method, or nil if undefined.
func (o *Instance) Lookup(name string) *Method {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Methods[name]
}

// CheckVisibility enforces the rule that an external call to a
// non-external method is an AccessViolation.
func (o *Instance) CheckVisibility(m *Method, externalCall bool) *rterror.Error {
	if externalCall && !m.External {
		return rterror.New(rterror.KindAccessViolation,
			"cannot call protected method '%s' on %s from outside", m.Name, o.Name)
	}
	return nil
}

// GetProperty reads a field; used internally (e.g. by the dispatcher
// reading fields a host object stores). Returns value.Nil if undefined —
// absent-property reads are not part of the failure surface.
func (o *Instance) GetProperty(name string) value.Value {
	o.mu.Lock()
	defer o.mu.Unlock()
	if v, ok := o.Properties[name]; ok {
		return v
	}
	return value.Nil
}

func (o *Instance) SetProperty(name string, v value.Value) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Properties[name] = v
}

package object

import (
	"fmt"

	"github.com/zombocoder/o2l/internal/value"
)

// Enum is a single member of an enumerated type: a fixed, named set of
// constant instances compared by identity.
type Enum struct {
	TypeName_ string
	Member    string
	Ordinal   int
}

func NewEnum(typeName, member string, ordinal int) *Enum {
	return &Enum{TypeName_: typeName, Member: member, Ordinal: ordinal}
}

func (e *Enum) Kind() value.Kind { return value.KEnum }
func (e *Enum) TypeName() string { return e.TypeName_ }
func (e *Enum) IdentityPtr() any  { return e }
func (e *Enum) String() string   { return fmt.Sprintf("%s.%s", e.TypeName_, e.Member) }

// Protocol describes a capability a type claims to implement: a name plus
// the method signatures (names only — O²L has no structural type checking
// of protocol conformance beyond method presence, per "lenient"
// declaration-time checking for non-primitive types).
type Protocol struct {
	Name    string
	Methods []string
}

func NewProtocol(name string, methods []string) *Protocol {
	return &Protocol{Name: name, Methods: methods}
}

func (p *Protocol) Kind() value.Kind { return value.KProtocol }
func (p *Protocol) TypeName() string { return p.Name }
func (p *Protocol) IdentityPtr() any  { return p }
func (p *Protocol) String() string   { return fmt.Sprintf("protocol %s", p.Name) }

// Conforms reports whether obj's method table contains every method this
// protocol requires.
func (p *Protocol) Conforms(obj *Instance) bool {
	for _, m := range p.Methods {
		if obj.Lookup(m) == nil {
			return false
		}
	}
	return true
}

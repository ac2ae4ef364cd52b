package value

import "fmt"

// Stringer is implemented by every variant that needs more than its Kind
// to render; primitives implement it via their own String() in
// primitives.go. Compound
// variants (objects, containers, records, errors, results) live in their own
// packages and implement value.Value plus fmt.Stringer directly.
type Stringer interface {
	fmt.Stringer
}

// Identity is implemented by variants that compare by shared reference
// rather than by value (objects, most containers, iterators) 
type Identity interface {
	IdentityPtr() any
}

// Structural is implemented by variants that compare field-by-field
// (RecordInstance) 
type Structural interface {
	StructuralFields() map[string]Value
}

// ToString renders any Value using its own String() method when available,
// falling back to a stable default. Every concrete variant in this module
// and its sibling packages implements fmt.Stringer, so the fallback path is
// unreachable in practice; it exists so ToString is total 
func ToString(v Value) string {
	if v == nil {
		return "nil"
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("<%s>", v.TypeName())
}

// Equals implements variant-aware equality: different Kinds are
// never equal (including across numeric kinds — Int(1) != Long(1) is a
// deliberate language choice), identity variants compare by shared pointer,
// structural variants compare field maps, and primitives compare by value.
func Equals(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Int:
		return av == b.(Int)
	case Long:
		bv := b.(Long)
		if av.V == nil || bv.V == nil {
			return av.String() == bv.String()
		}
		return av.V.Cmp(bv.V) == 0
	case Float:
		return av == b.(Float)
	case Double:
		return av == b.(Double)
	case Bool:
		return av == b.(Bool)
	case Char:
		return av == b.(Char)
	case Text:
		return av == b.(Text)
	case NilValue:
		return true
	}
	if as, ok := a.(Structural); ok {
		bs, ok2 := b.(Structural)
		if !ok2 {
			return false
		}
		af, bf := as.StructuralFields(), bs.StructuralFields()
		if len(af) != len(bf) {
			return false
		}
		for k, fv := range af {
			other, ok := bf[k]
			if !ok || !Equals(fv, other) {
				return false
			}
		}
		return true
	}
	if ai, ok := a.(Identity); ok {
		bi, ok2 := b.(Identity)
		if !ok2 {
			return false
		}
		return ai.IdentityPtr() == bi.IdentityPtr()
	}
	// Variants without an Identity/Structural marker (shouldn't happen for
	// well-formed values) fall back to reference-free string comparison.
	return ToString(a) == ToString(b)
}

// LessByString is the ordering predicate used only by sets and ordered maps
// ( "by_string_form"): containers never compare values of mixed
// kinds, so lexical comparison of the canonical rendering is sufficient.
func LessByString(a, b Value) bool {
	return ToString(a) < ToString(b)
}

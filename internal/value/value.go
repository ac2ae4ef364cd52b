// Package value implements O²L's runtime value universe: the tagged union
// that spans primitives, user objects, records, containers, iterators and
// the error/result types, plus the equality, ordering and rendering rules
// that apply uniformly across every variant.
package value

// Kind tags the concrete variant a Value holds, used for fast dispatch and
// for type-name rendering instead of a long type-switch chain everywhere.
type Kind int

const (
	KInt Kind = iota
	KLong
	KFloat
	KDouble
	KBool
	KChar
	KText
	KObject
	KEnum
	KRecordType
	KRecordInstance
	KProtocol
	KList
	KMap
	KSet
	KListIterator
	KMapIterator
	KSetIterator
	KRepeatIterator
	KMapObject
	KError
	KResult
	KFFIHandle
	KNil
)

// Value is anything that can be held by an O²L variable, passed as an
// argument, or returned from a method. Concrete kinds implement it by
// embedding no common struct; the interface is intentionally small so that
// every variant — from a bare Int to a shared ObjectInstance — satisfies it
// uniformly.
type Value interface {
	Kind() Kind
	// TypeName returns the canonical type name used in error messages and
	// declaration type checks, e.g. "Int", "List<Text>", "Map<Text, Int>".
	TypeName() string
}

// Named is implemented by values that carry their own element/key/value
// type name (the container family).
type Named interface {
	Value
	ElementTypeName() string
}

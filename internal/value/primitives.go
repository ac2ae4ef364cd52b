package value

import (
	"math/big"
	"strconv"
)

// Int is a 64-bit signed integer.
type Int int64

func (Int) Kind() Kind        { return KInt }
func (Int) TypeName() string  { return "Int" }
func (i Int) String() string  { return strconv.FormatInt(int64(i), 10) }

// Long is a 128-bit signed integer backed by math/big; the host Go runtime
// has no native int128, so big.Int is the idiomatic stand-in ( allows
// "else 64-bit" but every target we build for can hold 128 bits in big.Int
// at negligible cost, so we always take the wider representation).
type Long struct {
	V *big.Int
}

func NewLong(v int64) Long { return Long{V: big.NewInt(v)} }

// NewLongFromString parses a validated decimal integer string (callers,
// e.g. internal/text.ToLong, have already checked the syntax) into a Long.
func NewLongFromString(s string) Long {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		v = big.NewInt(0)
	}
	return Long{V: v}
}

func (Long) Kind() Kind       { return KLong }
func (Long) TypeName() string { return "Long" }
func (l Long) String() string {
	if l.V == nil {
		return "0"
	}
	return l.V.String()
}

// Float is 32-bit.
type Float float32

func (Float) Kind() Kind       { return KFloat }
func (Float) TypeName() string { return "Float" }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 32) }

// Double is 64-bit.
type Double float64

func (Double) Kind() Kind       { return KDouble }
func (Double) TypeName() string { return "Double" }
func (d Double) String() string { return strconv.FormatFloat(float64(d), 'g', -1, 64) }

type Bool bool

func (Bool) Kind() Kind       { return KBool }
func (Bool) TypeName() string { return "Bool" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Char is a single byte, matching the Latin-1 per-character semantics 
// requires of Text.
type Char byte

func (Char) Kind() Kind       { return KChar }
func (Char) TypeName() string { return "Char" }
func (c Char) String() string { return string([]byte{byte(c)}) }

// Text is an owned UTF-8 byte sequence; per-character predicates in
// internal/text treat it as Latin-1 (one byte per Char), 
type Text string

func (Text) Kind() Kind        { return KText }
func (Text) TypeName() string  { return "Text" }
func (t Text) String() string  { return string(t) }

// NilValue is the unit/empty value returned by void built-in methods.
type NilValue struct{}

func (NilValue) Kind() Kind       { return KNil }
func (NilValue) TypeName() string { return "Nil" }
func (NilValue) String() string   { return "nil" }

var Nil = NilValue{}

package object

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zombocoder/o2l/internal/value"
)

// RecordType is the schema for a record: its name and declared field names
// in declaration order.
type RecordType struct {
	Name   string
	Fields []string
}

func (r *RecordType) Kind() value.Kind { return value.KRecordType }
func (r *RecordType) TypeName() string { return r.Name }
func (r *RecordType) IdentityPtr() any  { return r }
func (r *RecordType) String() string   { return fmt.Sprintf("record %s", r.Name) }

// RecordInstance is a populated record. Unlike Instance (user object),
// equality is structural (field-by-field), 
type RecordInstance struct {
	TypeName_ string
	Fields    map[string]value.Value
	order     []string // declaration order, for stable String() rendering
}

func NewRecordInstance(typeName string, order []string, fields map[string]value.Value) *RecordInstance {
	return &RecordInstance{TypeName_: typeName, Fields: fields, order: order}
}

func (r *RecordInstance) Kind() value.Kind { return value.KRecordInstance }
func (r *RecordInstance) TypeName() string { return r.TypeName_ }

// StructuralFields satisfies value.Structural so value.Equals compares
// records field-by-field instead of by identity.
func (r *RecordInstance) StructuralFields() map[string]value.Value { return r.Fields }

func (r *RecordInstance) String() string {
	names := r.order
	if len(names) == 0 {
		names = make([]string, 0, len(r.Fields))
		for k := range r.Fields {
			names = append(names, k)
		}
		sort.Strings(names)
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", n, value.ToString(r.Fields[n])))
	}
	return fmt.Sprintf("%s{ %s }", r.TypeName_, strings.Join(parts, ", "))
}

func (r *RecordInstance) Get(name string) (value.Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

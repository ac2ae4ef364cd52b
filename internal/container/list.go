// Package container implements O²L's List, Map and Set runtimes plus their
// iterators, RepeatIterator and MapObject. Unlike a copy-on-write
// persistent vector, O²L containers are mutable with shared identity:
// append/remove/reverse/pop all mutate the same shared List reference.
package container

import (
	"fmt"
	"strings"
	"sync"

	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// List is a mutable, shared-by-identity, homogeneous-by-convention sequence.
// The declared ElementType is informational: elements are stored
// as generic value.Value regardless, and ElementType only drives the
// "List<T>" type name and the declaration-time element check in
// internal/eval.
type List struct {
	mu          sync.Mutex
	elems       []value.Value
	ElementType string
}

func NewList(elementType string, elems []value.Value) *List {
	cp := append([]value.Value(nil), elems...)
	return &List{elems: cp, ElementType: elementType}
}

func (l *List) Kind() value.Kind         { return value.KList }
func (l *List) ElementTypeName() string  { return l.ElementType }
func (l *List) TypeName() string {
	if l.ElementType == "" {
		return "List"
	}
	return fmt.Sprintf("List<%s>", l.ElementType)
}
func (l *List) IdentityPtr() any { return l }

func (l *List) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	parts := make([]string, len(l.elems))
	for i, e := range l.elems {
		parts[i] = value.ToString(e)
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

// Append adds v to the end of the list (mutates in place).
func (l *List) Append(v value.Value) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.elems = append(l.elems, v)
}

// Get returns the element at 0-based index i; out-of-range raises an
// Evaluation error 
func (l *List) Get(i int64) (value.Value, *rterror.Error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || int(i) >= len(l.elems) {
		return nil, rterror.New(rterror.KindEvaluation, "List index out of range: %d", i)
	}
	return l.elems[i], nil
}

// Set overwrites the element at index i in place, reporting whether i was
// in range. Used by internal/stdlib/jsonlib's path-based array assignment.
func (l *List) Set(i int64, v value.Value) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || int(i) >= len(l.elems) {
		return false
	}
	l.elems[i] = v
	return true
}

// RemoveAt removes the element at index i (mutates in place).
func (l *List) RemoveAt(i int64) *rterror.Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || int(i) >= len(l.elems) {
		return rterror.New(rterror.KindEvaluation, "List index out of range: %d", i)
	}
	l.elems = append(l.elems[:i], l.elems[i+1:]...)
	return nil
}

// Reverse reverses the list in place.
func (l *List) Reverse() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, j := 0, len(l.elems)-1; i < j; i, j = i+1, j-1 {
		l.elems[i], l.elems[j] = l.elems[j], l.elems[i]
	}
}

// Pop removes and returns the last element; fails on an empty list.
func (l *List) Pop() (value.Value, *rterror.Error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.elems) == 0 {
		return nil, rterror.New(rterror.KindEvaluation, "List.pop() on empty list")
	}
	v := l.elems[len(l.elems)-1]
	l.elems = l.elems[:len(l.elems)-1]
	return v, nil
}

func (l *List) Size() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(len(l.elems))
}

func (l *List) IsEmpty() bool { return l.Size() == 0 }

// Clear removes all elements in place.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.elems = nil
}

// Contains does a linear scan using value.Equals.
func (l *List) Contains(v value.Value) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.elems {
		if value.Equals(e, v) {
			return true
		}
	}
	return false
}

// IndexOf returns the first matching index, or -1 if absent.
func (l *List) IndexOf(v value.Value) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.elems {
		if value.Equals(e, v) {
			return int64(i)
		}
	}
	return -1
}

// Snapshot returns a copy of the current elements, used by Iterator() so
// the iterator doesn't observe later mutation (: "iterators do not
// detect mutation of the underlying container").
func (l *List) Snapshot() []value.Value {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]value.Value(nil), l.elems...)
}

// Iterator builds a ListIterator snapshotting the current elements.
func (l *List) Iterator() *ListIterator {
	return &ListIterator{source: l, elems: l.Snapshot()}
}

// ListIterator holds a shared reference to its source list plus a cursor.
type ListIterator struct {
	source *List
	elems  []value.Value
	cursor int
}

func (it *ListIterator) Kind() value.Kind      { return value.KListIterator }
func (it *ListIterator) TypeName() string      { return "ListIterator" }
func (it *ListIterator) IdentityPtr() any       { return it }
func (it *ListIterator) String() string {
	return fmt.Sprintf("ListIterator(index=%d/%d)", it.cursor, len(it.elems))
}

func (it *ListIterator) HasNext() bool { return it.cursor < len(it.elems) }

func (it *ListIterator) Next() (value.Value, *rterror.Error) {
	if !it.HasNext() {
		return nil, rterror.New(rterror.KindEvaluation, "ListIterator.next() called when hasNext() is false")
	}
	v := it.elems[it.cursor]
	it.cursor++
	return v, nil
}

func (it *ListIterator) Reset() { it.cursor = 0 }

func (it *ListIterator) CurrentIndex() int64 { return int64(it.cursor) }

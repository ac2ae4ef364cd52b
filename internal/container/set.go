package container

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// Set is a mutable, shared-by-identity collection ordered by the string
// form of its elements. Like Map, equality of two Set
// instances is by reference ( Open Questions).
type Set struct {
	mu          sync.Mutex
	index       map[string]int
	elems       []value.Value
	ElementType string
}

func NewSet(elementType string) *Set {
	return &Set{index: make(map[string]int), ElementType: elementType}
}

func (s *Set) Kind() value.Kind        { return value.KSet }
func (s *Set) ElementTypeName() string { return s.ElementType }
func (s *Set) TypeName() string {
	if s.ElementType == "" {
		return "Set"
	}
	return fmt.Sprintf("Set<%s>", s.ElementType)
}
func (s *Set) IdentityPtr() any { return s }

func (s *Set) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	parts := make([]string, len(s.elems))
	for i, e := range s.elems {
		parts[i] = value.ToString(e)
	}
	return "( " + strings.Join(parts, ", ") + " )"
}

func (s *Set) insertSorted(ks string, v value.Value) {
	i := sort.Search(len(s.elems), func(i int) bool { return value.ToString(s.elems[i]) >= ks })
	s.elems = append(s.elems, nil)
	copy(s.elems[i+1:], s.elems[i:])
	s.elems[i] = v
	for j := i; j < len(s.elems); j++ {
		s.index[value.ToString(s.elems[j])] = j
	}
}

// Add inserts v if not already present (mutates in place); no-op if present.
func (s *Set) Add(v value.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ks := value.ToString(v)
	if _, ok := s.index[ks]; ok {
		return
	}
	s.insertSorted(ks, v)
}

func (s *Set) Contains(v value.Value) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[value.ToString(v)]
	return ok
}

// Remove deletes v if present (no-op otherwise).
func (s *Set) Remove(v value.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ks := value.ToString(v)
	i, ok := s.index[ks]
	if !ok {
		return
	}
	s.elems = append(s.elems[:i], s.elems[i+1:]...)
	delete(s.index, ks)
	for j := i; j < len(s.elems); j++ {
		s.index[value.ToString(s.elems[j])] = j
	}
}

func (s *Set) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.elems))
}

func (s *Set) Empty() bool { return s.Size() == 0 }

func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elems = nil
	s.index = make(map[string]int)
}

// Elements returns a new List<ElementType> in canonical order.
func (s *Set) Elements() *List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewList(s.ElementType, append([]value.Value(nil), s.elems...))
}

func (s *Set) Snapshot() []value.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]value.Value(nil), s.elems...)
}

func (s *Set) Iterator() *SetIterator {
	return &SetIterator{source: s, elems: s.Snapshot()}
}

// SetIterator snapshots elements at construction time, grounded on
// original_source's SetIterator holding a std::set const_iterator taken at
// construction — mutating the set afterward is invisible to the iterator.
type SetIterator struct {
	source *Set
	elems  []value.Value
	cursor int
}

func (it *SetIterator) Kind() value.Kind { return value.KSetIterator }
func (it *SetIterator) TypeName() string { return "SetIterator" }
func (it *SetIterator) IdentityPtr() any  { return it }
func (it *SetIterator) String() string {
	return fmt.Sprintf("SetIterator(index=%d/%d)", it.cursor, len(it.elems))
}

func (it *SetIterator) HasNext() bool { return it.cursor < len(it.elems) }

func (it *SetIterator) Next() (value.Value, *rterror.Error) {
	if !it.HasNext() {
		return nil, rterror.New(rterror.KindEvaluation, "SetIterator.next() called when hasNext() is false")
	}
	v := it.elems[it.cursor]
	it.cursor++
	return v, nil
}

func (it *SetIterator) Reset() { it.cursor = 0 }

func (it *SetIterator) CurrentIndex() int64 { return int64(it.cursor) }
func (it *SetIterator) TotalSize() int64    { return int64(len(it.elems)) }

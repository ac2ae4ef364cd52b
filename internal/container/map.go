package container

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

type mapEntry struct {
	key value.Value
	val value.Value
}

// Key and Val expose a snapshotted entry's fields to other packages (e.g.
// package dispatch building a formatMap table from Map.Snapshot()).
func (e mapEntry) Key() value.Value { return e.key }
func (e mapEntry) Val() value.Value { return e.val }

// MapEntry is the exported name for mapEntry, returned by Map.Snapshot().
type MapEntry = mapEntry

// Map is a mutable, shared-by-identity keyed collection. Equality of two
// Map instances is by reference, not structural —  Open Questions
// preserves this "surprising" source behaviour deliberately.
//
// Iteration order follows the canonical string form of keys,
// so entries are kept in a slice ordered by key string-form rather than in
// Go map order; lookup is still O(1) via an index keyed by that same
// string form (sufficient since a Map's keys never mix kinds, ).
type Map struct {
	mu        sync.Mutex
	index     map[string]int
	entries   []mapEntry
	KeyType   string
	ValueType string
}

func NewMap(keyType, valueType string) *Map {
	return &Map{index: make(map[string]int), KeyType: keyType, ValueType: valueType}
}

func (m *Map) Kind() value.Kind        { return value.KMap }
func (m *Map) ElementTypeName() string { return m.ValueType }
func (m *Map) TypeName() string {
	if m.KeyType == "" && m.ValueType == "" {
		return "Map"
	}
	return fmt.Sprintf("Map<%s, %s>", m.KeyType, m.ValueType)
}
func (m *Map) IdentityPtr() any { return m }

func (m *Map) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	parts := make([]string, len(m.entries))
	for i, e := range m.entries {
		parts[i] = fmt.Sprintf("%s: %s", value.ToString(e.key), value.ToString(e.val))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (m *Map) keyOf(k value.Value) string { return value.ToString(k) }

func (m *Map) insertSorted(ks string, e mapEntry) {
	i := sort.Search(len(m.entries), func(i int) bool { return value.ToString(m.entries[i].key) >= ks })
	m.entries = append(m.entries, mapEntry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = e
	for j := i; j < len(m.entries); j++ {
		m.index[value.ToString(m.entries[j].key)] = j
	}
}

// Put inserts or overwrites the value for k (mutates in place).
func (m *Map) Put(k, v value.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ks := m.keyOf(k)
	if i, ok := m.index[ks]; ok {
		m.entries[i].val = v
		return
	}
	m.insertSorted(ks, mapEntry{key: k, val: v})
}

// Get fails if the key is absent, 
func (m *Map) Get(k value.Value) (value.Value, *rterror.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.index[m.keyOf(k)]; ok {
		return m.entries[i].val, nil
	}
	return nil, rterror.New(rterror.KindEvaluation, "Map.get() key not found: %s", value.ToString(k))
}

func (m *Map) Contains(k value.Value) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.index[m.keyOf(k)]
	return ok
}

// Remove deletes the key if present (no-op otherwise).
func (m *Map) Remove(k value.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ks := m.keyOf(k)
	i, ok := m.index[ks]
	if !ok {
		return
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, ks)
	for j := i; j < len(m.entries); j++ {
		m.index[value.ToString(m.entries[j].key)] = j
	}
}

func (m *Map) Size() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.entries))
}

func (m *Map) Empty() bool { return m.Size() == 0 }

func (m *Map) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.index = make(map[string]int)
}

// Keys returns a new List<KeyType> in canonical key order.
func (m *Map) Keys() *List {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]value.Value, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.key
	}
	return NewList(m.KeyType, out)
}

// Values returns a new List<ValueType> in canonical key order.
func (m *Map) Values() *List {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]value.Value, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.val
	}
	return NewList(m.ValueType, out)
}

// Snapshot returns a copy of entries in canonical order, used by Iterator().
func (m *Map) Snapshot() []mapEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mapEntry(nil), m.entries...)
}

func (m *Map) Iterator() *MapIterator {
	return &MapIterator{source: m, entries: m.Snapshot()}
}

// MapIterator snapshots entries at construction time, matching 's
// note that iterators don't observe later container mutation.
type MapIterator struct {
	source  *Map
	entries []mapEntry
	cursor  int
}

func (it *MapIterator) Kind() value.Kind { return value.KMapIterator }
func (it *MapIterator) TypeName() string { return "MapIterator" }
func (it *MapIterator) IdentityPtr() any  { return it }
func (it *MapIterator) String() string {
	return fmt.Sprintf("MapIterator(index=%d/%d)", it.cursor, len(it.entries))
}

func (it *MapIterator) HasNext() bool { return it.cursor < len(it.entries) }

// NextKey advances the cursor and returns the key, matching nextValue/
// nextEntry/MapItem — all four "next"-family methods share one cursor and
// advance it, per original_source/src/Runtime/MapIterator.cpp's nextKey().
func (it *MapIterator) NextKey() (value.Value, *rterror.Error) {
	if !it.HasNext() {
		return nil, rterror.New(rterror.KindEvaluation, "MapIterator.next() called when hasNext() is false")
	}
	k := it.entries[it.cursor].key
	it.cursor++
	return k, nil
}

// NextEntry advances the cursor and returns "key:value" ( notes this
// collapses type information; MapItem() is preferred in new code).
func (it *MapIterator) NextEntry() (value.Value, *rterror.Error) {
	if !it.HasNext() {
		return nil, rterror.New(rterror.KindEvaluation, "MapIterator.next() called when hasNext() is false")
	}
	e := it.entries[it.cursor]
	it.cursor++
	return value.Text(fmt.Sprintf("%s:%s", value.ToString(e.key), value.ToString(e.val))), nil
}

// NextValue advances the cursor (shares the cursor with NextEntry/MapItem;
// only one of the "next"-family methods should be used per iteration step
// in a given O²L program, matching the prior design).
func (it *MapIterator) NextValue() (value.Value, *rterror.Error) {
	if !it.HasNext() {
		return nil, rterror.New(rterror.KindEvaluation, "MapIterator.next() called when hasNext() is false")
	}
	e := it.entries[it.cursor]
	it.cursor++
	return e.val, nil
}

func (it *MapIterator) MapItem() (*MapObject, *rterror.Error) {
	if !it.HasNext() {
		return nil, rterror.New(rterror.KindEvaluation, "MapIterator.next() called when hasNext() is false")
	}
	e := it.entries[it.cursor]
	it.cursor++
	return NewMapObject(e.key, e.val, it.source.KeyType, it.source.ValueType), nil
}

func (it *MapIterator) Reset() { it.cursor = 0 }

func (it *MapIterator) CurrentIndex() int64 { return int64(it.cursor) }
func (it *MapIterator) TotalSize() int64    { return int64(len(it.entries)) }

// MapObject is a key-value pair view returned by MapIterator.MapItem(),
// grounded verbatim on original_source/src/Runtime/MapObject.cpp for its
// to_string form.
type MapObject struct {
	key, val           value.Value
	keyType, valueType string
}

func NewMapObject(k, v value.Value, keyType, valueType string) *MapObject {
	return &MapObject{key: k, val: v, keyType: keyType, valueType: valueType}
}

func (o *MapObject) Kind() value.Kind { return value.KMapObject }
func (o *MapObject) TypeName() string { return "MapObject" }
func (o *MapObject) IdentityPtr() any  { return o }
func (o *MapObject) String() string {
	return fmt.Sprintf("MapObject{key: %s, value: %s}", value.ToString(o.key), value.ToString(o.val))
}

func (o *MapObject) GetKey() value.Value   { return o.key }
func (o *MapObject) GetVal() value.Value   { return o.val }
func (o *MapObject) GetValue() value.Value { return o.val }

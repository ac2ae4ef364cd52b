package container

import (
	"fmt"

	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// RepeatIterator backs utils.repeat(n); grounded verbatim on
// original_source/src/Runtime/RepeatIterator.cpp for its construction
// guard and to_string form.
type RepeatIterator struct {
	total   int64
	current int64
}

// NewRepeatIterator rejects negative counts at construction.
func NewRepeatIterator(count int64) (*RepeatIterator, *rterror.Error) {
	if count < 0 {
		return nil, rterror.New(rterror.KindEvaluation, "RepeatIterator count cannot be negative: %d", count)
	}
	return &RepeatIterator{total: count}, nil
}

func (it *RepeatIterator) Kind() value.Kind { return value.KRepeatIterator }
func (it *RepeatIterator) TypeName() string { return "RepeatIterator" }
func (it *RepeatIterator) IdentityPtr() any  { return it }
func (it *RepeatIterator) String() string {
	return fmt.Sprintf("RepeatIterator(count=%d/%d, hasNext=%t)", it.current, it.total, it.HasNext())
}

func (it *RepeatIterator) HasNext() bool { return it.current < it.total }

// Next yields the current 0-based counter, then advances.
func (it *RepeatIterator) Next() (value.Value, *rterror.Error) {
	if !it.HasNext() {
		return nil, rterror.New(rterror.KindEvaluation, "RepeatIterator.next() called when hasNext() is false")
	}
	v := value.Int(it.current)
	it.current++
	return v, nil
}

func (it *RepeatIterator) Reset() { it.current = 0 }

func (it *RepeatIterator) CurrentCount() int64 { return it.current }
func (it *RepeatIterator) TotalCount() int64   { return it.total }

// Package utils builds O²L's `utils` host object: currently just
// the RepeatIterator factory. Grounded on original_source/src/Runtime/
// UtilsLibrary.cpp.
package utils

import (
	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func New() *object.HostObject {
	h := object.NewHostObject("utils")

	h.Register("repeat", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) == 0 {
			return nil, rterror.RequiresArgs("utils", "repeat", "one Int count argument")
		}
		n, ok := args[0].(value.Int)
		if !ok {
			return nil, rterror.RequiresArgs("utils", "repeat", "an Int count argument")
		}
		it, err := container.NewRepeatIterator(int64(n))
		if err != nil {
			return nil, err
		}
		return it, nil
	})

	return h
}

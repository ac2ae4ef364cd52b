package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func TestHostObjectUnknownMethodStableMessage(t *testing.T) {
	h := object.NewHostObject("widgets")
	_, err := h.Call("bogus", nil)
	require.NotNil(t, err)
	assert.Equal(t, "Unknown method 'bogus' on widgets type", err.Message)
}

func TestHostObjectRegisterIsFluentAndOverwrites(t *testing.T) {
	h := object.NewHostObject("widgets")
	chained := h.Register("a", func(args []value.Value) (value.Value, *rterror.Error) {
		return value.Int(1), nil
	})
	assert.Same(t, h, chained)

	h.Register("a", func(args []value.Value) (value.Value, *rterror.Error) {
		return value.Int(2), nil
	})
	v, err := h.Call("a", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Int(2), v)
}

func TestHostObjectTypeNameAndString(t *testing.T) {
	h := object.NewHostObject("io")
	assert.Equal(t, "io", h.TypeName())
	assert.Equal(t, "<host:io>", h.String())
}

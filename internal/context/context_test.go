package context_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombocoder/o2l/internal/context"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func TestDefineAndLookup(t *testing.T) {
	ctx := context.New()
	ctx.Define("x", value.Int(1))
	v, err := ctx.Lookup("x")
	require.Nil(t, err)
	assert.Equal(t, value.Int(1), v)
}

func TestLookupUndefinedFails(t *testing.T) {
	ctx := context.New()
	_, err := ctx.Lookup("missing")
	require.NotNil(t, err)
	assert.Equal(t, rterror.KindUnresolvedReference, err.Kind)
}

func TestReassignConstantFails(t *testing.T) {
	ctx := context.New()
	ctx.DefineConst("pi", value.Double(3.14))
	err := ctx.Reassign("pi", value.Double(3.0))
	require.NotNil(t, err)
	assert.Equal(t, rterror.KindEvaluation, err.Kind)
}

func TestReassignUndefinedFails(t *testing.T) {
	ctx := context.New()
	err := ctx.Reassign("nope", value.Int(1))
	require.NotNil(t, err)
	assert.Equal(t, rterror.KindUnresolvedReference, err.Kind)
}

func TestScopeChainShadowing(t *testing.T) {
	ctx := context.New()
	ctx.Define("x", value.Int(1))
	ctx.PushScope()
	ctx.Define("x", value.Int(2))
	v, _ := ctx.Lookup("x")
	assert.Equal(t, value.Int(2), v)
	ctx.PopScope()
	v, _ = ctx.Lookup("x")
	assert.Equal(t, value.Int(1), v)
}

// TestScopeBalance asserts "Scope balance" property: push/pop
// must be perfectly paired regardless of how many scopes nest.
func TestScopeBalance(t *testing.T) {
	ctx := context.New()
	before := ctx.Depth()
	ctx.PushScope()
	ctx.PushScope()
	ctx.PushScope()
	ctx.PopScope()
	ctx.PopScope()
	ctx.PopScope()
	assert.Equal(t, before, ctx.Depth())
}

func TestFrameTruncation(t *testing.T) {
	ctx := context.New()
	depth := ctx.FrameDepth()
	ctx.PushFrame(rterror.Frame{MethodName: "a"})
	ctx.PushFrame(rterror.Frame{MethodName: "b"})
	ctx.TruncateFrames(depth)
	assert.Equal(t, depth, ctx.FrameDepth())
}

func TestThisStackNesting(t *testing.T) {
	ctx := context.New()
	assert.Nil(t, ctx.This())
	ctx.SetThis(value.Text("outer")) // ThisValue just needs Kind/TypeName
	ctx.SetThis(value.Text("inner"))
	assert.Equal(t, value.Text("inner"), ctx.This())
	ctx.ClearThis()
	assert.Equal(t, value.Text("outer"), ctx.This())
	ctx.ClearThis()
	assert.Nil(t, ctx.This())
}

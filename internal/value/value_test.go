package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zombocoder/o2l/internal/value"
)

func TestEqualsNumericKindsDoNotCrossCompare(t *testing.T) {
	assert.False(t, value.Equals(value.Int(1), value.NewLong(1)))
	assert.False(t, value.Equals(value.Int(1), value.Float(1.0)))
	assert.False(t, value.Equals(value.Int(1), value.Double(1.0)))
	assert.True(t, value.Equals(value.Int(1), value.Int(1)))
	assert.True(t, value.Equals(value.NewLong(7), value.NewLong(7)))
}

func TestEqualsPrimitivesByValue(t *testing.T) {
	assert.True(t, value.Equals(value.Text("abc"), value.Text("abc")))
	assert.False(t, value.Equals(value.Text("abc"), value.Text("abd")))
	assert.True(t, value.Equals(value.Bool(true), value.Bool(true)))
	assert.True(t, value.Equals(value.Char('a'), value.Char('a')))
}

func TestEqualsDifferentKindsNeverEqual(t *testing.T) {
	assert.False(t, value.Equals(value.Text("1"), value.Int(1)))
	assert.False(t, value.Equals(value.Bool(true), value.Int(1)))
}

func TestEqualsNilHandling(t *testing.T) {
	assert.True(t, value.Equals(nil, nil))
	assert.False(t, value.Equals(nil, value.Int(0)))
	assert.False(t, value.Equals(value.Int(0), nil))
}

func TestToStringTotalAcrossPrimitives(t *testing.T) {
	assert.Equal(t, "5", value.ToString(value.Int(5)))
	assert.Equal(t, "true", value.ToString(value.Bool(true)))
	assert.Equal(t, "a", value.ToString(value.Char('a')))
	assert.Equal(t, "hi", value.ToString(value.Text("hi")))
	assert.Equal(t, "nil", value.ToString(value.Nil))
}

func TestLessByStringOrdersByCanonicalRendering(t *testing.T) {
	assert.True(t, value.LessByString(value.Int(1), value.Int(2)))
	assert.False(t, value.LessByString(value.Text("b"), value.Text("a")))
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "Int", value.Int(0).TypeName())
	assert.Equal(t, "Long", value.NewLong(0).TypeName())
	assert.Equal(t, "Float", value.Float(0).TypeName())
	assert.Equal(t, "Double", value.Double(0).TypeName())
	assert.Equal(t, "Bool", value.Bool(false).TypeName())
	assert.Equal(t, "Char", value.Char(0).TypeName())
	assert.Equal(t, "Text", value.Text("").TypeName())
}

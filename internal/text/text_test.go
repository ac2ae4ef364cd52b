package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombocoder/o2l/internal/text"
	"github.com/zombocoder/o2l/internal/value"
)

func TestCaseConversions(t *testing.T) {
	assert.Equal(t, "Hello", text.Capitalize("hello"))
	assert.Equal(t, "hello", text.CaseFold("HELLO"))
	assert.Equal(t, "hello", text.Lower("HELLO"))
	assert.Equal(t, "HELLO", text.Upper("hello"))
	assert.Equal(t, "hELLO", text.SwapCase("Hello"))
	assert.Equal(t, "Hello World", text.Title("hello world"))
}

func TestLengthAndCount(t *testing.T) {
	assert.Equal(t, int64(5), text.Length("hello"))
	assert.Equal(t, int64(2), text.Count("abcabc", "abc"))
	assert.Equal(t, int64(0), text.Count("abc", ""))
}

func TestPredicates(t *testing.T) {
	assert.True(t, text.IsAlnum("abc123"))
	assert.False(t, text.IsAlnum(""))
	assert.True(t, text.IsAlpha("abc"))
	assert.False(t, text.IsAlpha("abc1"))
	assert.True(t, text.IsAscii(""))
	assert.False(t, text.IsAscii("caf\xe9"))
	assert.True(t, text.IsDecimal("123"))
	assert.True(t, text.IsIdentifier("_foo2"))
	assert.False(t, text.IsIdentifier("2foo"))
	assert.True(t, text.IsLower("abc"))
	assert.False(t, text.IsLower("ABC"))
	assert.True(t, text.IsUpper("ABC"))
	assert.True(t, text.IsNumeric("-12.5"))
	assert.True(t, text.IsPrintable(""))
	assert.False(t, text.IsPrintable("\x01"))
	assert.True(t, text.IsSpace(" \t\n"))
	assert.False(t, text.IsSpace(""))
	assert.True(t, text.IsTitle("Hello World"))
}

func TestSearch(t *testing.T) {
	assert.Equal(t, int64(1), text.Find("abc", "b"))
	assert.Equal(t, int64(-1), text.Find("abc", "z"))
	assert.Equal(t, int64(5), text.RFind("abcabc", "c"))

	idx, err := text.Index("abc", "b")
	require.Nil(t, err)
	assert.Equal(t, int64(1), idx)

	_, err = text.Index("abc", "z")
	assert.NotNil(t, err)

	ridx, err := text.RIndex("abcabc", "a")
	require.Nil(t, err)
	assert.Equal(t, int64(3), ridx)

	assert.True(t, text.StartsWith("hello", "he"))
	assert.True(t, text.EndsWith("hello", "lo"))
}

func TestEditOperations(t *testing.T) {
	assert.Equal(t, "abc", text.Strip("  abc  "))
	assert.Equal(t, "abc  ", text.LStrip("  abc  "))
	assert.Equal(t, "  abc", text.RStrip("  abc  "))
	assert.Equal(t, "xbc", text.Replace("abc", "a", "x"))

	assert.Equal(t, []string{"a", "b", "c"}, text.Split("a,b,c", ","))
	assert.Equal(t, []string{"a", "b"}, text.Split("a  b", ""))

	assert.Equal(t, []string{"line1", "line2"}, text.SplitLines("line1\nline2"))
	assert.Nil(t, text.SplitLines(""))
}

func TestJustifyAndPad(t *testing.T) {
	assert.Equal(t, " ab ", text.Center("ab", 4))
	assert.Equal(t, "ab  ", text.LJust("ab", 4))
	assert.Equal(t, "  ab", text.RJust("ab", 4))
	assert.Equal(t, "-007", text.ZFill("-7", 4))
	assert.Equal(t, "007", text.ZFill("7", 3))
}

func TestJoinStringifiesScalarsOnly(t *testing.T) {
	got := text.Join(",", []value.Value{value.Int(1), value.Text("a"), value.Bool(true)})
	assert.Equal(t, "1,a,true", got)
}

func TestPartitionAndRPartition(t *testing.T) {
	assert.Equal(t, [3]string{"a", "=", "b=c"}, text.Partition("a=b=c", "="))
	assert.Equal(t, [3]string{"a=b", "=", "c"}, text.RPartition("a=b=c", "="))
	assert.Equal(t, [3]string{"abc", "", ""}, text.Partition("abc", "="))
}

func TestFormatPositional(t *testing.T) {
	got := text.Format("{0} plus {1} is {0}{1}", []value.Value{value.Text("a"), value.Text("b")})
	assert.Equal(t, "a plus b is ab", got)
}

func TestFormatMapByKey(t *testing.T) {
	got := text.FormatMap("{name} is {age}", map[string]value.Value{
		"name": value.Text("Ann"),
		"age":  value.Int(30),
	})
	assert.Equal(t, "Ann is 30", got)
}

func TestTranslate(t *testing.T) {
	table, err := text.MakeTrans("ab", "xy")
	require.Nil(t, err)
	assert.Equal(t, "xyc", text.Translate("abc", table))

	_, err = text.MakeTrans("a", "xy")
	assert.NotNil(t, err)
}

func TestParsers(t *testing.T) {
	v, err := text.ToInt(" 42 ")
	require.Nil(t, err)
	assert.Equal(t, int64(42), v)

	_, err = text.ToInt("abc")
	assert.NotNil(t, err)

	d, err := text.ToDouble("3.14")
	require.Nil(t, err)
	assert.InDelta(t, 3.14, d, 1e-9)

	b, err := text.ToBool("YES")
	require.Nil(t, err)
	assert.True(t, b)

	b, err = text.ToBool("")
	require.Nil(t, err)
	assert.False(t, b)

	_, err = text.ToBool("maybe")
	assert.NotNil(t, err)
}

// Package text implements O²L's built-in Text method suite,
// the largest built-in method table in the interpreter.
//
// Deliberately built on strings/unicode/strconv rather than
// golang.org/x/text: Text is pinned to Latin-1/byte-level semantics
// (isAlnum, isUpper, one-byte Char, per-character predicates), and x/text's
// Unicode-normalizing case folding would silently change that behavior.
// See DESIGN.md for the full reasoning — this is the one deliberate
// stdlib-over-ecosystem choice in the repository.
package text

import (
	"strconv"
	"strings"

	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func isCased(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func req(method, requirement string) *rterror.Error {
	return rterror.RequiresArgs("Text", method, requirement)
}

// --- Case ---

func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func CaseFold(s string) string { return strings.ToLower(s) }
func Lower(s string) string    { return strings.ToLower(s) }
func Upper(s string) string    { return strings.ToUpper(s) }

func SwapCase(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 32
		case c >= 'A' && c <= 'Z':
			b[i] = c + 32
		}
	}
	return string(b)
}

func Title(s string) string {
	b := []byte(strings.ToLower(s))
	prevAlpha := false
	for i, c := range b {
		isAlpha := (c >= 'a' && c <= 'z')
		if isAlpha && !prevAlpha {
			b[i] = c - 32
		}
		prevAlpha = isAlpha
	}
	return string(b)
}

// --- Metrics ---

func Length(s string) int64 { return int64(len(s)) }

// Count returns the number of non-overlapping occurrences of sub; an empty
// sub counts as 0.
func Count(s, sub string) int64 {
	if sub == "" {
		return 0
	}
	return int64(strings.Count(s, sub))
}

// --- Predicates ---

func IsAlnum(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || isCased(c)) {
			return false
		}
	}
	return true
}

func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isCased(s[i]) {
			return false
		}
	}
	return true
}

// IsAscii: empty string is true.
func IsAscii(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

func IsDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func IsDigit(s string) bool { return IsDecimal(s) }

// IsIdentifier: first char letter or '_', rest alnum or '_'.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	first := s[0]
	if !(isCased(first) || first == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isCased(c) || (c >= '0' && c <= '9') || c == '_') {
			return false
		}
	}
	return true
}

// IsLower requires at least one cased char, all cased chars lowercase.
func IsLower(s string) bool {
	seenCased := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isCased(c) {
			seenCased = true
			if c >= 'A' && c <= 'Z' {
				return false
			}
		}
	}
	return seenCased
}

// IsNumeric: digits plus '.', '+', '-'.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || c == '.' || c == '+' || c == '-') {
			return false
		}
	}
	return true
}

// IsPrintable: empty string is true.
func IsPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return false
		}
	}
	return true
}

func IsSpace(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f') {
			return false
		}
	}
	return true
}

func IsTitle(s string) bool {
	if s == "" {
		return false
	}
	seenCased := false
	for i := 0; i < len(s); i++ {
		if isCased(s[i]) {
			seenCased = true
			break
		}
	}
	return seenCased && s == Title(s)
}

func IsUpper(s string) bool {
	seenCased := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isCased(c) {
			seenCased = true
			if c >= 'a' && c <= 'z' {
				return false
			}
		}
	}
	return seenCased
}

// --- Search ---

func Find(s, sub string) int64 { return int64(strings.Index(s, sub)) }
func RFind(s, sub string) int64 { return int64(strings.LastIndex(s, sub)) }

func Index(s, sub string) (int64, *rterror.Error) {
	i := strings.Index(s, sub)
	if i < 0 {
		return 0, rterror.New(rterror.KindEvaluation, "Text.index(): substring not found: %q", sub)
	}
	return int64(i), nil
}

func RIndex(s, sub string) (int64, *rterror.Error) {
	i := strings.LastIndex(s, sub)
	if i < 0 {
		return 0, rterror.New(rterror.KindEvaluation, "Text.rindex(): substring not found: %q", sub)
	}
	return int64(i), nil
}

func StartsWith(s, prefix string) bool { return strings.HasPrefix(s, prefix) }
func EndsWith(s, suffix string) bool   { return strings.HasSuffix(s, suffix) }

// --- Edit ---

func Strip(s string) string  { return strings.TrimSpace(s) }
func LStrip(s string) string { return strings.TrimLeft(s, " \t\n\r\v\f") }
func RStrip(s string) string { return strings.TrimRight(s, " \t\n\r\v\f") }

func Replace(s, old, newS string) string { return strings.ReplaceAll(s, old, newS) }

// Split: empty delim splits on whitespace runs.
func Split(s, delim string) []string {
	if delim == "" {
		return strings.Fields(s)
	}
	return strings.Split(s, delim)
}

// RSplit: empty delimiter behaves exactly like Split, per Open
// Question ("documented as 'same as split' in source; keep that behaviour").
func RSplit(s, delim string) []string {
	if delim == "" {
		return strings.Fields(s)
	}
	parts := strings.Split(s, delim)
	out := make([]string, len(parts))
	copy(out, parts)
	return out
}

func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func Center(s string, width int64) string {
	n := int64(len(s))
	if n >= width {
		return s
	}
	total := width - n
	left := total / 2
	right := total - left
	return strings.Repeat(" ", int(left)) + s + strings.Repeat(" ", int(right))
}

func LJust(s string, width int64) string {
	if int64(len(s)) >= width {
		return s
	}
	return s + strings.Repeat(" ", int(width-int64(len(s))))
}

func RJust(s string, width int64) string {
	if int64(len(s)) >= width {
		return s
	}
	return strings.Repeat(" ", int(width-int64(len(s)))) + s
}

// ZFill preserves a leading sign.
func ZFill(s string, width int64) string {
	if int64(len(s)) >= width {
		return s
	}
	sign := ""
	rest := s
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		sign = s[:1]
		rest = s[1:]
	}
	pad := int(width) - len(sign) - len(rest)
	if pad < 0 {
		pad = 0
	}
	return sign + strings.Repeat("0", pad) + rest
}

// Join stringifies numeric, Bool, Text and Char elements; other elements
// render as "[object]".
func Join(sep string, elems []value.Value) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		switch e.(type) {
		case value.Int, value.Long, value.Float, value.Double, value.Bool, value.Text, value.Char:
			parts[i] = value.ToString(e)
		default:
			parts[i] = "[object]"
		}
	}
	return strings.Join(parts, sep)
}

// Partition returns a 3-element [before, sep-or-empty, after] split.
func Partition(s, sep string) [3]string {
	i := strings.Index(s, sep)
	if i < 0 {
		return [3]string{s, "", ""}
	}
	return [3]string{s[:i], sep, s[i+len(sep):]}
}

func RPartition(s, sep string) [3]string {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return [3]string{"", "", s}
	}
	return [3]string{s[:i], sep, s[i+len(sep):]}
}

// --- Templating ---

// Format substitutes {0}, {1}, ... with positional args' to_string.
func Format(tmpl string, args []value.Value) string {
	var b strings.Builder
	i := 0
	for i < len(tmpl) {
		if tmpl[i] == '{' {
			if j := strings.IndexByte(tmpl[i:], '}'); j > 0 {
				key := tmpl[i+1 : i+j]
				if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(args) {
					b.WriteString(value.ToString(args[idx]))
					i += j + 1
					continue
				}
			}
		}
		b.WriteByte(tmpl[i])
		i++
	}
	return b.String()
}

// FormatMap substitutes {key} with the value of key in m.
func FormatMap(tmpl string, m map[string]value.Value) string {
	var b strings.Builder
	i := 0
	for i < len(tmpl) {
		if tmpl[i] == '{' {
			if j := strings.IndexByte(tmpl[i:], '}'); j > 0 {
				key := tmpl[i+1 : i+j]
				if v, ok := m[key]; ok {
					b.WriteString(value.ToString(v))
					i += j + 1
					continue
				}
			}
		}
		b.WriteByte(tmpl[i])
		i++
	}
	return b.String()
}

// MakeTrans builds a char-to-char translation table from equal-length
// from/to strings.
func MakeTrans(from, to string) (map[byte]byte, *rterror.Error) {
	if len(from) != len(to) {
		return nil, req("makeTrans", "two strings of equal length")
	}
	m := make(map[byte]byte, len(from))
	for i := 0; i < len(from); i++ {
		m[from[i]] = to[i]
	}
	return m, nil
}

func Translate(s string, table map[byte]byte) string {
	b := []byte(s)
	for i, c := range b {
		if r, ok := table[c]; ok {
			b[i] = r
		}
	}
	return string(b)
}

// --- Parse ---

func stripForParse(s string) string { return strings.TrimSpace(s) }

func ToInt(s string) (int64, *rterror.Error) {
	v, err := strconv.ParseInt(stripForParse(s), 10, 64)
	if err != nil {
		return 0, rterror.New(rterror.KindEvaluation, "Text.toInt(): invalid integer: %q", s)
	}
	return v, nil
}

func ToLong(s string) (string, *rterror.Error) {
	t := stripForParse(s)
	if t == "" {
		return "", rterror.New(rterror.KindEvaluation, "Text.toLong(): invalid integer: %q", s)
	}
	if _, ok := new(bigIntParser).parse(t); !ok {
		return "", rterror.New(rterror.KindEvaluation, "Text.toLong(): invalid integer: %q", s)
	}
	return t, nil
}

// bigIntParser validates an optionally-signed decimal integer string
// without pulling in math/big here (internal/value.Long does that); this
// keeps internal/text free of a dependency on internal/value's Long type.
type bigIntParser struct{}

func (bigIntParser) parse(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if i == len(s) {
		return "", false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", false
		}
	}
	return s, true
}

func ToDouble(s string) (float64, *rterror.Error) {
	v, err := strconv.ParseFloat(stripForParse(s), 64)
	if err != nil {
		return 0, rterror.New(rterror.KindEvaluation, "Text.toDouble(): invalid number: %q", s)
	}
	return v, nil
}

func ToFloat(s string) (float32, *rterror.Error) {
	v, err := strconv.ParseFloat(stripForParse(s), 32)
	if err != nil {
		return 0, rterror.New(rterror.KindEvaluation, "Text.toFloat(): invalid number: %q", s)
	}
	return float32(v), nil
}

// ToBool accepts true/1/yes/on and false/0/no/off/"" case-insensitively.
func ToBool(s string) (bool, *rterror.Error) {
	switch strings.ToLower(stripForParse(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off", "":
		return false, nil
	default:
		return false, rterror.New(rterror.KindEvaluation, "Text.toBool(): invalid boolean: %q", s)
	}
}

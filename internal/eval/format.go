package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/value"
)

// FormatPrint implements io.print formatter: a single format
// string consumed left-to-right, directives substituted from args in
// order. Exposed here (rather than in internal/stdlib/io) because the
// directive semantics are core-spec behaviour, not a stdlib detail — the
// io host object just calls this and writes a trailing newline.
func FormatPrint(format string, args []value.Value) string {
	var b strings.Builder
	argi := 0
	next := func() (value.Value, bool) {
		if argi < len(args) {
			v := args[argi]
			argi++
			return v, true
		}
		return nil, false
	}

	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(format) {
			b.WriteByte(c)
			break
		}
		switch format[i+1] {
		case '%':
			b.WriteByte('%')
			i += 2
		case 's':
			v, ok := next()
			if !ok {
				b.WriteString(format[i : i+2])
			} else {
				b.WriteString(value.ToString(v))
			}
			i += 2
		case 'd':
			v, ok := next()
			if !ok {
				b.WriteString(format[i : i+2])
			} else {
				b.WriteString(formatInteger(v))
			}
			i += 2
		case 'l':
			v, ok := next()
			if !ok {
				b.WriteString(format[i : i+2])
			} else {
				b.WriteString(formatLong(v))
			}
			i += 2
		case 'o':
			v, ok := next()
			if !ok {
				b.WriteString(format[i : i+2])
			} else {
				b.WriteString(formatDetailed(v))
			}
			i += 2
		case '.':
			consumed, rendered, ok := formatPrecision(format[i:], next)
			if !ok {
				b.WriteString(format[i : i+2])
				i += 2
			} else {
				b.WriteString(rendered)
				i += consumed
			}
		default:
			b.WriteByte('%')
			i++
		}
	}
	return b.String()
}

func formatInteger(v value.Value) string {
	switch n := v.(type) {
	case value.Int:
		return n.String()
	case value.Long:
		return n.String()
	default:
		return "[non-integer]"
	}
}

func formatLong(v value.Value) string {
	switch n := v.(type) {
	case value.Long:
		return n.String()
	case value.Int:
		return strconv.FormatInt(int64(n), 10)
	default:
		return "[non-integer]"
	}
}

// formatPrecision parses "%.Nf" (N optional) starting at rest[0]=='%' and
// rest[1]=='.', returning how many bytes of the format string it consumed.
func formatPrecision(rest string, next func() (value.Value, bool)) (int, string, bool) {
	j := 2
	start := j
	for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
		j++
	}
	if j >= len(rest) || rest[j] != 'f' {
		return 0, "", false
	}
	precStr := rest[start:j]
	prec := -1
	if precStr != "" {
		prec, _ = strconv.Atoi(precStr)
	}
	v, ok := next()
	if !ok {
		return 0, "", false
	}
	var f float64
	switch n := v.(type) {
	case value.Float:
		f = float64(n)
	case value.Double:
		f = float64(n)
	case value.Int:
		f = float64(n)
	default:
		return j + 1, "[non-numeric]", true
	}
	if prec < 0 {
		return j + 1, strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return j + 1, strconv.FormatFloat(f, 'f', prec, 64), true
}

// formatDetailed renders %o: a user object instance as "Name{...}" (its
// properties are not listed); every other value, including records, enums,
// maps and iterators, renders as its to_string.
func formatDetailed(v value.Value) string {
	switch o := v.(type) {
	case *object.Instance:
		return fmt.Sprintf("%s{...}", o.Name)
	case *container.Map:
		return o.String()
	default:
		return value.ToString(v)
	}
}

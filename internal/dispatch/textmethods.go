package dispatch

import (
	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/text"
	"github.com/zombocoder/o2l/internal/value"
)

func argText(args []value.Value, i int, method, requirement string) (string, *rterror.Error) {
	if i >= len(args) {
		return "", rterror.RequiresArgs("Text", method, requirement)
	}
	t, ok := args[i].(value.Text)
	if !ok {
		return "", rterror.RequiresArgs("Text", method, requirement)
	}
	return string(t), nil
}

func argWidth(args []value.Value, i int, method string) (int64, *rterror.Error) {
	return argInt(args, i, "Text", method, "1 Int width argument")
}

func dispatchText(s string, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "capitalize":
		return value.Text(text.Capitalize(s)), nil
	case "caseFold":
		return value.Text(text.CaseFold(s)), nil
	case "lower":
		return value.Text(text.Lower(s)), nil
	case "upper":
		return value.Text(text.Upper(s)), nil
	case "swapCase":
		return value.Text(text.SwapCase(s)), nil
	case "title":
		return value.Text(text.Title(s)), nil
	case "length":
		return value.Int(text.Length(s)), nil
	case "count":
		sub, err := argText(args, 0, "count", "1 Text argument")
		if err != nil {
			return nil, err
		}
		return value.Int(text.Count(s, sub)), nil
	case "isAlnum":
		return value.Bool(text.IsAlnum(s)), nil
	case "isAlpha":
		return value.Bool(text.IsAlpha(s)), nil
	case "isAscii":
		return value.Bool(text.IsAscii(s)), nil
	case "isDecimal":
		return value.Bool(text.IsDecimal(s)), nil
	case "isDigit":
		return value.Bool(text.IsDigit(s)), nil
	case "isIdentifier":
		return value.Bool(text.IsIdentifier(s)), nil
	case "isLower":
		return value.Bool(text.IsLower(s)), nil
	case "isNumeric":
		return value.Bool(text.IsNumeric(s)), nil
	case "isPrintable":
		return value.Bool(text.IsPrintable(s)), nil
	case "isSpace":
		return value.Bool(text.IsSpace(s)), nil
	case "isTitle":
		return value.Bool(text.IsTitle(s)), nil
	case "isUpper":
		return value.Bool(text.IsUpper(s)), nil
	case "find":
		sub, err := argText(args, 0, "find", "1 Text argument")
		if err != nil {
			return nil, err
		}
		return value.Int(text.Find(s, sub)), nil
	case "rfind":
		sub, err := argText(args, 0, "rfind", "1 Text argument")
		if err != nil {
			return nil, err
		}
		return value.Int(text.RFind(s, sub)), nil
	case "index":
		sub, err := argText(args, 0, "index", "1 Text argument")
		if err != nil {
			return nil, err
		}
		i, err := text.Index(s, sub)
		if err != nil {
			return nil, err
		}
		return value.Int(i), nil
	case "rindex":
		sub, err := argText(args, 0, "rindex", "1 Text argument")
		if err != nil {
			return nil, err
		}
		i, err := text.RIndex(s, sub)
		if err != nil {
			return nil, err
		}
		return value.Int(i), nil
	case "startswith":
		sub, err := argText(args, 0, "startswith", "1 Text argument")
		if err != nil {
			return nil, err
		}
		return value.Bool(text.StartsWith(s, sub)), nil
	case "endswith":
		sub, err := argText(args, 0, "endswith", "1 Text argument")
		if err != nil {
			return nil, err
		}
		return value.Bool(text.EndsWith(s, sub)), nil
	case "strip":
		return value.Text(text.Strip(s)), nil
	case "lstrip":
		return value.Text(text.LStrip(s)), nil
	case "rstrip":
		return value.Text(text.RStrip(s)), nil
	case "replace":
		old, err := argText(args, 0, "replace", "2 Text arguments")
		if err != nil {
			return nil, err
		}
		newS, err := argText(args, 1, "replace", "2 Text arguments")
		if err != nil {
			return nil, err
		}
		return value.Text(text.Replace(s, old, newS)), nil
	case "split":
		delim := ""
		if len(args) > 0 {
			d, err := argText(args, 0, "split", "0 or 1 Text argument")
			if err != nil {
				return nil, err
			}
			delim = d
		}
		return toTextList(text.Split(s, delim)), nil
	case "rsplit":
		delim := ""
		if len(args) > 0 {
			d, err := argText(args, 0, "rsplit", "0 or 1 Text argument")
			if err != nil {
				return nil, err
			}
			delim = d
		}
		return toTextList(text.RSplit(s, delim)), nil
	case "splitlines":
		return toTextList(text.SplitLines(s)), nil
	case "center":
		w, err := argWidth(args, 0, "center")
		if err != nil {
			return nil, err
		}
		return value.Text(text.Center(s, w)), nil
	case "ljust":
		w, err := argWidth(args, 0, "ljust")
		if err != nil {
			return nil, err
		}
		return value.Text(text.LJust(s, w)), nil
	case "rjust":
		w, err := argWidth(args, 0, "rjust")
		if err != nil {
			return nil, err
		}
		return value.Text(text.RJust(s, w)), nil
	case "zfill":
		w, err := argWidth(args, 0, "zfill")
		if err != nil {
			return nil, err
		}
		return value.Text(text.ZFill(s, w)), nil
	case "join":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("Text", "join", "1 List argument")
		}
		l, ok := args[0].(*container.List)
		if !ok {
			return nil, rterror.RequiresArgs("Text", "join", "1 List argument")
		}
		return value.Text(text.Join(s, l.Snapshot())), nil
	case "partition":
		sep, err := argText(args, 0, "partition", "1 Text argument")
		if err != nil {
			return nil, err
		}
		p := text.Partition(s, sep)
		return toTextList(p[:]), nil
	case "rpartition":
		sep, err := argText(args, 0, "rpartition", "1 Text argument")
		if err != nil {
			return nil, err
		}
		p := text.RPartition(s, sep)
		return toTextList(p[:]), nil
	case "format":
		return value.Text(text.Format(s, args)), nil
	case "formatMap":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("Text", "formatMap", "1 Map argument")
		}
		m, ok := args[0].(*container.Map)
		if !ok {
			return nil, rterror.RequiresArgs("Text", "formatMap", "1 Map argument")
		}
		fm := make(map[string]value.Value)
		for _, e := range m.Snapshot() {
			fm[value.ToString(e.Key())] = e.Val()
		}
		return value.Text(text.FormatMap(s, fm)), nil
	case "makeTrans":
		from, err := argText(args, 0, "makeTrans", "2 Text arguments")
		if err != nil {
			return nil, err
		}
		to, err := argText(args, 1, "makeTrans", "2 Text arguments")
		if err != nil {
			return nil, err
		}
		table, err := text.MakeTrans(from, to)
		if err != nil {
			return nil, err
		}
		return newTransTable(table), nil
	case "translate":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("Text", "translate", "1 translation table argument")
		}
		tbl, ok := args[0].(*transTable)
		if !ok {
			return nil, rterror.RequiresArgs("Text", "translate", "1 translation table argument")
		}
		return value.Text(text.Translate(s, tbl.m)), nil
	case "toInt":
		v, err := text.ToInt(s)
		if err != nil {
			return nil, err
		}
		return value.Int(v), nil
	case "toLong":
		v, err := text.ToLong(s)
		if err != nil {
			return nil, err
		}
		return value.NewLongFromString(v), nil
	case "toDouble":
		v, err := text.ToDouble(s)
		if err != nil {
			return nil, err
		}
		return value.Double(v), nil
	case "toFloat":
		v, err := text.ToFloat(s)
		if err != nil {
			return nil, err
		}
		return value.Float(v), nil
	case "toBool":
		v, err := text.ToBool(s)
		if err != nil {
			return nil, err
		}
		return value.Bool(v), nil
	default:
		return nil, rterror.UnknownMethod(method, "Text")
	}
}

func toTextList(parts []string) *container.List {
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.Text(p)
	}
	return container.NewList("Text", elems)
}

// transTable is an opaque runtime value produced by Text.makeTrans() and
// consumed by Text.translate(). It isn't one of this design's
// named §3 variants, so it's kept local to this package rather than added
// to the Value universe's Kind enum.
type transTable struct {
	m map[byte]byte
}

func (t *transTable) Kind() value.Kind  { return value.KObject }
func (t *transTable) TypeName() string  { return "TranslationTable" }
func (t *transTable) IdentityPtr() any  { return t }
func (t *transTable) String() string    { return "TranslationTable" }

func newTransTable(m map[byte]byte) *transTable { return &transTable{m: m} }

// Package jsonlib builds O²L's `json` host object. Grounded on
// original_source/src/Runtime/JsonLibrary.cpp's method surface (parse,
// validate, get/set/remove by dot-path, stringify, pretty/minify, merge,
// keys/values/size, array ops, equals/clone), rendered with encoding/json
// for the wire format the way builtins_json.go does.
package jsonlib

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/result"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func New() *object.HostObject {
	h := object.NewHostObject("json")

	h.Register("parse", func(args []value.Value) (value.Value, *rterror.Error) {
		text, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("json", "parse", "one Text argument")
		}
		var raw any
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return result.Failure(result.NewError("invalid JSON: "+err.Error(), "EVALUATION"), "Value", "Error"), nil
		}
		return result.Success(fromAny(raw), "Value", "Error"), nil
	})

	h.Register("validate", func(args []value.Value) (value.Value, *rterror.Error) {
		text, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("json", "validate", "one Text argument")
		}
		return value.Bool(json.Valid([]byte(text))), nil
	})

	h.Register("stringify", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) == 0 {
			return nil, rterror.RequiresArgs("json", "stringify", "one Value argument")
		}
		b, err := json.Marshal(toAny(args[0]))
		if err != nil {
			return nil, rterror.New(rterror.KindEvaluation, "json.stringify: %s", err)
		}
		return value.Text(string(b)), nil
	})

	h.Register("pretty", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) == 0 {
			return nil, rterror.RequiresArgs("json", "pretty", "one Value argument")
		}
		b, err := json.MarshalIndent(toAny(args[0]), "", "  ")
		if err != nil {
			return nil, rterror.New(rterror.KindEvaluation, "json.pretty: %s", err)
		}
		return value.Text(string(b)), nil
	})

	h.Register("minify", func(args []value.Value) (value.Value, *rterror.Error) {
		text, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("json", "minify", "one Text argument")
		}
		var raw any
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, rterror.New(rterror.KindEvaluation, "json.minify: invalid JSON: %s", err)
		}
		b, _ := json.Marshal(raw)
		return value.Text(string(b)), nil
	})

	h.Register("getByPath", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) < 2 {
			return nil, rterror.RequiresArgs("json", "getByPath", "a root Value and a Text path")
		}
		path, ok := textArg(args, 1)
		if !ok {
			return nil, rterror.RequiresArgs("json", "getByPath", "a Text path as the second argument")
		}
		v, found := getByPath(args[0], path)
		if !found {
			return result.Failure(result.NewError("path not found: "+path, "EVALUATION"), "Value", "Error"), nil
		}
		return result.Success(v, "Value", "Error"), nil
	})

	h.Register("setByPath", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) < 3 {
			return nil, rterror.RequiresArgs("json", "setByPath", "a root Value, a Text path, and a Value to set")
		}
		path, ok := textArg(args, 1)
		if !ok {
			return nil, rterror.RequiresArgs("json", "setByPath", "a Text path as the second argument")
		}
		if !setByPath(args[0], path, args[2]) {
			return nil, rterror.New(rterror.KindEvaluation, "json.setByPath: path not found: %s", path)
		}
		return value.Nil, nil
	})

	h.Register("removeByPath", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) < 2 {
			return nil, rterror.RequiresArgs("json", "removeByPath", "a root Value and a Text path")
		}
		path, ok := textArg(args, 1)
		if !ok {
			return nil, rterror.RequiresArgs("json", "removeByPath", "a Text path as the second argument")
		}
		removeByPath(args[0], path)
		return value.Nil, nil
	})

	h.Register("merge", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) < 2 {
			return nil, rterror.RequiresArgs("json", "merge", "two Map arguments")
		}
		a, ok1 := args[0].(*container.Map)
		b, ok2 := args[1].(*container.Map)
		if !ok1 || !ok2 {
			return nil, rterror.RequiresArgs("json", "merge", "two Map arguments")
		}
		out := container.NewMap(a.KeyType, a.ValueType)
		for _, e := range a.Snapshot() {
			out.Put(e.Key(), e.Val())
		}
		for _, e := range b.Snapshot() {
			out.Put(e.Key(), e.Val())
		}
		return out, nil
	})

	h.Register("keys", func(args []value.Value) (value.Value, *rterror.Error) {
		m, ok := mapArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("json", "keys", "one Map argument")
		}
		return m.Keys(), nil
	})

	h.Register("values", func(args []value.Value) (value.Value, *rterror.Error) {
		m, ok := mapArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("json", "values", "one Map argument")
		}
		return m.Values(), nil
	})

	h.Register("size", func(args []value.Value) (value.Value, *rterror.Error) {
		switch c := valueArg(args, 0).(type) {
		case *container.Map:
			return value.Int(c.Size()), nil
		case *container.List:
			return value.Int(c.Size()), nil
		default:
			return nil, rterror.RequiresArgs("json", "size", "a Map or List argument")
		}
	})

	h.Register("push", func(args []value.Value) (value.Value, *rterror.Error) {
		lst, ok := listArg(args, 0)
		if !ok || len(args) < 2 {
			return nil, rterror.RequiresArgs("json", "push", "a List and a Value to append")
		}
		lst.Append(args[1])
		return value.Nil, nil
	})

	h.Register("pop", func(args []value.Value) (value.Value, *rterror.Error) {
		lst, ok := listArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("json", "pop", "one List argument")
		}
		v, err := lst.Pop()
		if err != nil {
			return nil, err
		}
		return v, nil
	})

	h.Register("slice", func(args []value.Value) (value.Value, *rterror.Error) {
		lst, ok := listArg(args, 0)
		if !ok || len(args) < 3 {
			return nil, rterror.RequiresArgs("json", "slice", "a List and two Int bounds")
		}
		start, ok1 := intArg(args, 1)
		end, ok2 := intArg(args, 2)
		if !ok1 || !ok2 {
			return nil, rterror.RequiresArgs("json", "slice", "Int start and end arguments")
		}
		snap := lst.Snapshot()
		if start < 0 {
			start = 0
		}
		if end > int64(len(snap)) {
			end = int64(len(snap))
		}
		if start > end {
			start = end
		}
		return container.NewList(lst.ElementTypeName(), snap[start:end]), nil
	})

	h.Register("indexOf", func(args []value.Value) (value.Value, *rterror.Error) {
		lst, ok := listArg(args, 0)
		if !ok || len(args) < 2 {
			return nil, rterror.RequiresArgs("json", "indexOf", "a List and a Value to find")
		}
		return value.Int(lst.IndexOf(args[1])), nil
	})

	h.Register("equals", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) < 2 {
			return nil, rterror.RequiresArgs("json", "equals", "two Value arguments")
		}
		return value.Bool(deepEquals(args[0], args[1])), nil
	})

	h.Register("clone", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) == 0 {
			return nil, rterror.RequiresArgs("json", "clone", "one Value argument")
		}
		return fromAny(toAny(args[0])), nil
	})

	h.Register("typeOf", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) == 0 {
			return nil, rterror.RequiresArgs("json", "typeOf", "one Value argument")
		}
		return value.Text(args[0].TypeName()), nil
	})

	return h
}

func textArg(args []value.Value, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	t, ok := args[i].(value.Text)
	return string(t), ok
}

func intArg(args []value.Value, i int) (int64, bool) {
	if i >= len(args) {
		return 0, false
	}
	n, ok := args[i].(value.Int)
	return int64(n), ok
}

func valueArg(args []value.Value, i int) value.Value {
	if i >= len(args) {
		return value.Nil
	}
	return args[i]
}

func mapArg(args []value.Value, i int) (*container.Map, bool) {
	if i >= len(args) {
		return nil, false
	}
	m, ok := args[i].(*container.Map)
	return m, ok
}

func listArg(args []value.Value, i int) (*container.List, bool) {
	if i >= len(args) {
		return nil, false
	}
	l, ok := args[i].(*container.List)
	return l, ok
}

// fromAny converts a decoded encoding/json tree (map[string]any,
// []any, float64, string, bool, nil) into O²L Values.
func fromAny(raw any) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.Nil
	case bool:
		return value.Bool(v)
	case float64:
		if v == float64(int64(v)) {
			return value.Int(int64(v))
		}
		return value.Double(v)
	case string:
		return value.Text(v)
	case []any:
		elems := make([]value.Value, len(v))
		for i, e := range v {
			elems[i] = fromAny(e)
		}
		return container.NewList("", elems)
	case map[string]any:
		m := container.NewMap("Text", "")
		for k, val := range v {
			m.Put(value.Text(k), fromAny(val))
		}
		return m
	default:
		return value.Nil
	}
}

// toAny converts an O²L Value back into a JSON-marshalable Go value.
func toAny(v value.Value) any {
	switch x := v.(type) {
	case value.NilValue:
		return nil
	case value.Bool:
		return bool(x)
	case value.Int:
		return int64(x)
	case value.Long:
		return x.String()
	case value.Float:
		return float64(x)
	case value.Double:
		return float64(x)
	case value.Char:
		return string([]byte{byte(x)})
	case value.Text:
		return string(x)
	case *container.List:
		snap := x.Snapshot()
		out := make([]any, len(snap))
		for i, e := range snap {
			out[i] = toAny(e)
		}
		return out
	case *container.Map:
		out := make(map[string]any)
		for _, e := range x.Snapshot() {
			out[value.ToString(e.Key())] = toAny(e.Val())
		}
		return out
	default:
		return value.ToString(v)
	}
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func getByPath(root value.Value, path string) (value.Value, bool) {
	cur := root
	for _, seg := range splitPath(path) {
		if idx, err := strconv.Atoi(seg); err == nil {
			lst, ok := cur.(*container.List)
			if !ok {
				return nil, false
			}
			v, gerr := lst.Get(int64(idx))
			if gerr != nil {
				return nil, false
			}
			cur = v
			continue
		}
		m, ok := cur.(*container.Map)
		if !ok {
			return nil, false
		}
		v, gerr := m.Get(value.Text(seg))
		if gerr != nil {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func setByPath(root value.Value, path string, newVal value.Value) bool {
	segs := splitPath(path)
	if len(segs) == 0 {
		return false
	}
	cur := root
	for _, seg := range segs[:len(segs)-1] {
		if idx, err := strconv.Atoi(seg); err == nil {
			lst, ok := cur.(*container.List)
			if !ok {
				return false
			}
			v, gerr := lst.Get(int64(idx))
			if gerr != nil {
				return false
			}
			cur = v
			continue
		}
		m, ok := cur.(*container.Map)
		if !ok {
			return false
		}
		v, gerr := m.Get(value.Text(seg))
		if gerr != nil {
			return false
		}
		cur = v
	}
	last := segs[len(segs)-1]
	if idx, err := strconv.Atoi(last); err == nil {
		lst, ok := cur.(*container.List)
		if !ok {
			return false
		}
		return lst.Set(int64(idx), newVal)
	}
	m, ok := cur.(*container.Map)
	if !ok {
		return false
	}
	m.Put(value.Text(last), newVal)
	return true
}

func removeByPath(root value.Value, path string) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return
	}
	parentPath := strings.Join(segs[:len(segs)-1], ".")
	var parent value.Value
	if parentPath == "" {
		parent = root
	} else {
		v, ok := getByPath(root, parentPath)
		if !ok {
			return
		}
		parent = v
	}
	last := segs[len(segs)-1]
	if idx, err := strconv.Atoi(last); err == nil {
		if lst, ok := parent.(*container.List); ok {
			lst.RemoveAt(int64(idx))
		}
		return
	}
	if m, ok := parent.(*container.Map); ok {
		m.Remove(value.Text(last))
	}
}

func deepEquals(a, b value.Value) bool {
	return fmt.Sprintf("%v", toAny(a)) == fmt.Sprintf("%v", toAny(b)) && value.ToString(a) == value.ToString(b)
}

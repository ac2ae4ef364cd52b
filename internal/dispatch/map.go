package dispatch

import (
	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func dispatchMap(m *container.Map, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "put":
		if len(args) != 2 {
			return nil, rterror.RequiresArgs("Map", "put", "2 arguments (key, value)")
		}
		m.Put(args[0], args[1])
		return value.Nil, nil
	case "get":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("Map", "get", "1 argument (key)")
		}
		return m.Get(args[0])
	case "contains":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("Map", "contains", "1 argument (key)")
		}
		return value.Bool(m.Contains(args[0])), nil
	case "remove":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("Map", "remove", "1 argument (key)")
		}
		m.Remove(args[0])
		return value.Nil, nil
	case "size":
		return value.Int(m.Size()), nil
	case "empty":
		return value.Bool(m.Empty()), nil
	case "clear":
		m.Clear()
		return value.Nil, nil
	case "keys":
		return m.Keys(), nil
	case "values":
		return m.Values(), nil
	case "iterator":
		return m.Iterator(), nil
	default:
		return nil, rterror.UnknownMethod(method, "Map")
	}
}

func dispatchMapIterator(it *container.MapIterator, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "hasNext":
		return value.Bool(it.HasNext()), nil
	case "nextKey":
		return it.NextKey()
	case "nextValue":
		return it.NextValue()
	case "nextEntry":
		return it.NextEntry()
	case "MapItem":
		return it.MapItem()
	case "reset":
		it.Reset()
		return value.Nil, nil
	case "getCurrentIndex":
		return value.Int(it.CurrentIndex()), nil
	case "getTotalSize":
		return value.Int(it.TotalSize()), nil
	default:
		return nil, rterror.UnknownMethod(method, "MapIterator")
	}
}

func dispatchMapObject(o *container.MapObject, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "getKey":
		return o.GetKey(), nil
	case "getVal":
		return o.GetVal(), nil
	case "getValue":
		return o.GetValue(), nil
	default:
		return nil, rterror.UnknownMethod(method, "MapObject")
	}
}

func dispatchSet(s *container.Set, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "add":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("Set", "add", "1 argument")
		}
		s.Add(args[0])
		return value.Nil, nil
	case "contains":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("Set", "contains", "1 argument")
		}
		return value.Bool(s.Contains(args[0])), nil
	case "remove":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("Set", "remove", "1 argument")
		}
		s.Remove(args[0])
		return value.Nil, nil
	case "size":
		return value.Int(s.Size()), nil
	case "empty":
		return value.Bool(s.Empty()), nil
	case "clear":
		s.Clear()
		return value.Nil, nil
	case "elements":
		return s.Elements(), nil
	case "iterator":
		return s.Iterator(), nil
	default:
		return nil, rterror.UnknownMethod(method, "Set")
	}
}

func dispatchSetIterator(it *container.SetIterator, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "hasNext":
		return value.Bool(it.HasNext()), nil
	case "next":
		return it.Next()
	case "reset":
		it.Reset()
		return value.Nil, nil
	case "getCurrentIndex":
		return value.Int(it.CurrentIndex()), nil
	case "getTotalSize":
		return value.Int(it.TotalSize()), nil
	default:
		return nil, rterror.UnknownMethod(method, "SetIterator")
	}
}

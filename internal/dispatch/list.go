package dispatch

import (
	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func argInt(args []value.Value, i int, typeName, method, requirement string) (int64, *rterror.Error) {
	if i >= len(args) {
		return 0, rterror.RequiresArgs(typeName, method, requirement)
	}
	switch v := args[i].(type) {
	case value.Int:
		return int64(v), nil
	default:
		return 0, rterror.RequiresArgs(typeName, method, requirement)
	}
}

func dispatchList(l *container.List, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "add":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("List", "add", "1 argument")
		}
		l.Append(args[0])
		return value.Nil, nil
	case "get":
		i, err := argInt(args, 0, "List", "get", "1 Int argument")
		if err != nil {
			return nil, err
		}
		return l.Get(i)
	case "remove":
		i, err := argInt(args, 0, "List", "remove", "1 Int argument")
		if err != nil {
			return nil, err
		}
		if err := l.RemoveAt(i); err != nil {
			return nil, err
		}
		return value.Nil, nil
	case "reverse":
		l.Reverse()
		return value.Nil, nil
	case "pop":
		return l.Pop()
	case "size":
		return value.Int(l.Size()), nil
	case "isEmpty":
		return value.Bool(l.IsEmpty()), nil
	case "clear":
		l.Clear()
		return value.Nil, nil
	case "contains":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("List", "contains", "1 argument")
		}
		return value.Bool(l.Contains(args[0])), nil
	case "indexOf":
		if len(args) != 1 {
			return nil, rterror.RequiresArgs("List", "indexOf", "1 argument")
		}
		return value.Int(l.IndexOf(args[0])), nil
	case "iterator":
		return l.Iterator(), nil
	case "forEach":
		// Intentionally unimplemented, : reproduce a stable
		// error rather than silently no-op.
		return nil, rterror.New(rterror.KindEvaluation, "List.forEach() is not implemented")
	default:
		return nil, rterror.UnknownMethod(method, "List")
	}
}

func dispatchListIterator(it *container.ListIterator, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "hasNext":
		return value.Bool(it.HasNext()), nil
	case "next":
		return it.Next()
	case "reset":
		it.Reset()
		return value.Nil, nil
	case "getCurrentIndex", "index":
		return value.Int(it.CurrentIndex()), nil
	default:
		return nil, rterror.UnknownMethod(method, "ListIterator")
	}
}

func dispatchRepeatIterator(it *container.RepeatIterator, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "hasNext":
		return value.Bool(it.HasNext()), nil
	case "next":
		return it.Next()
	case "reset":
		it.Reset()
		return value.Nil, nil
	case "getCurrentCount":
		return value.Int(it.CurrentCount()), nil
	case "getTotalCount":
		return value.Int(it.TotalCount()), nil
	default:
		return nil, rterror.UnknownMethod(method, "RepeatIterator")
	}
}

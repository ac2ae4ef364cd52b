package dispatch

import (
	"github.com/zombocoder/o2l/internal/result"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func dispatchResult(r *result.Result, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "isSuccess":
		return value.Bool(r.IsSuccess), nil
	case "getResult":
		return r.GetResult(), nil
	case "getError":
		return r.GetError(), nil
	default:
		return nil, rterror.UnknownMethod(method, "Result")
	}
}

func dispatchError(e *result.Error, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "getMessage":
		return e.GetMessage(), nil
	case "getCode":
		return e.GetCode(), nil
	default:
		return nil, rterror.UnknownMethod(method, "Error")
	}
}

package dispatch

import (
	"math"
	"math/big"

	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func dispatchInt(n value.Int, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "toString":
		return value.Text(n.String()), nil
	case "toInt":
		return n, nil
	case "toLong":
		return value.NewLong(int64(n)), nil
	case "toFloat":
		return value.Float(n), nil
	case "toDouble":
		return value.Double(n), nil
	case "toBool":
		return value.Bool(n != 0), nil
	default:
		return nil, rterror.UnknownMethod(method, "Int")
	}
}

var maxInt64Big = big.NewInt(math.MaxInt64)
var minInt64Big = big.NewInt(math.MinInt64)

func dispatchLong(n value.Long, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "toString":
		return value.Text(n.String()), nil
	case "toInt":
		if n.V == nil {
			return value.Int(0), nil
		}
		if n.V.Cmp(maxInt64Big) > 0 || n.V.Cmp(minInt64Big) < 0 {
			return nil, rterror.New(rterror.KindEvaluation, "Long.toInt(): value out of Int range: %s", n.String())
		}
		return value.Int(n.V.Int64()), nil
	case "toLong":
		return n, nil
	case "toFloat":
		f, _ := new(big.Float).SetInt(n.V).Float32()
		return value.Float(f), nil
	case "toDouble":
		f, _ := new(big.Float).SetInt(n.V).Float64()
		return value.Double(f), nil
	case "toBool":
		return value.Bool(n.V != nil && n.V.Sign() != 0), nil
	default:
		return nil, rterror.UnknownMethod(method, "Long")
	}
}

func dispatchFloat(n value.Float, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "toString":
		return value.Text(n.String()), nil
	case "toInt":
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return nil, rterror.New(rterror.KindEvaluation, "Float.toInt(): value is not finite")
		}
		if float64(n) > float64(math.MaxInt64) || float64(n) < float64(math.MinInt64) {
			return nil, rterror.New(rterror.KindEvaluation, "Float.toInt(): value out of Int range: %s", n.String())
		}
		return value.Int(int64(n)), nil
	case "toLong":
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return nil, rterror.New(rterror.KindEvaluation, "Float.toLong(): value is not finite")
		}
		bi, _ := big.NewFloat(float64(n)).Int(nil)
		return value.Long{V: bi}, nil
	case "toFloat":
		return n, nil
	case "toDouble":
		return value.Double(n), nil
	case "toBool":
		return value.Bool(n != 0), nil
	case "isNaN":
		return value.Bool(math.IsNaN(float64(n))), nil
	case "isInfinite":
		return value.Bool(math.IsInf(float64(n), 0)), nil
	case "isFinite":
		return value.Bool(!math.IsNaN(float64(n)) && !math.IsInf(float64(n), 0)), nil
	default:
		return nil, rterror.UnknownMethod(method, "Float")
	}
}

func dispatchDouble(n value.Double, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "toString":
		return value.Text(n.String()), nil
	case "toInt":
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return nil, rterror.New(rterror.KindEvaluation, "Double.toInt(): value is not finite")
		}
		if float64(n) > float64(math.MaxInt64) || float64(n) < float64(math.MinInt64) {
			return nil, rterror.New(rterror.KindEvaluation, "Double.toInt(): value out of Int range: %s", n.String())
		}
		return value.Int(int64(n)), nil
	case "toLong":
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return nil, rterror.New(rterror.KindEvaluation, "Double.toLong(): value is not finite")
		}
		bi, _ := big.NewFloat(float64(n)).Int(nil)
		return value.Long{V: bi}, nil
	case "toFloat":
		return value.Float(n), nil
	case "toDouble":
		return n, nil
	case "toBool":
		return value.Bool(n != 0), nil
	case "isNaN":
		return value.Bool(math.IsNaN(float64(n))), nil
	case "isInfinite":
		return value.Bool(math.IsInf(float64(n), 0)), nil
	case "isFinite":
		return value.Bool(!math.IsNaN(float64(n)) && !math.IsInf(float64(n), 0)), nil
	default:
		return nil, rterror.UnknownMethod(method, "Double")
	}
}

func dispatchBool(b value.Bool, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "toString":
		return value.Text(b.String()), nil
	case "toInt":
		if b {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	case "toLong":
		if b {
			return value.NewLong(1), nil
		}
		return value.NewLong(0), nil
	case "toBool":
		return b, nil
	default:
		return nil, rterror.UnknownMethod(method, "Bool")
	}
}

func dispatchChar(c value.Char, method string, args []value.Value) (value.Value, *rterror.Error) {
	switch method {
	case "toString":
		return value.Text(c.String()), nil
	case "toInt":
		return value.Int(c), nil
	default:
		return nil, rterror.UnknownMethod(method, "Char")
	}
}

package eval

import (
	"math/big"

	"github.com/zombocoder/o2l/internal/ast"
	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func (e *Evaluator) evalExpr(x ast.Expr) value.Value {
	switch n := x.(type) {
	case *ast.IntLit:
		return value.Int(n.Value)
	case *ast.LongLit:
		return value.NewLongFromString(n.Value)
	case *ast.FloatLit:
		return value.Float(n.Value)
	case *ast.DoubleLit:
		return value.Double(n.Value)
	case *ast.BoolLit:
		return value.Bool(n.Value)
	case *ast.CharLit:
		return value.Char(n.Value)
	case *ast.TextLit:
		return value.Text(n.Value)
	case *ast.ThisExpr:
		this := e.Ctx.This()
		if this == nil {
			panic(rterror.New(rterror.KindUnresolvedReference, "'this' used outside a method"))
		}
		return this
	case *ast.Identifier:
		v, err := e.Ctx.Lookup(n.Name)
		if err != nil {
			panic(err)
		}
		return v
	case *ast.ListLit:
		elems := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = e.evalExpr(el)
		}
		return container.NewList("", elems)
	case *ast.SetLit:
		set := container.NewSet("")
		for _, el := range n.Elements {
			set.Add(e.evalExpr(el))
		}
		return set
	case *ast.MapLit:
		m := container.NewMap("", "")
		for _, ent := range n.Entries {
			m.Put(e.evalExpr(ent.Key), e.evalExpr(ent.Value))
		}
		return m
	case *ast.New:
		decl, ok := e.LookupObjectDecl(n.TypeName)
		if !ok {
			panic(rterror.New(rterror.KindUnresolvedReference, "undefined object type: %s", n.TypeName))
		}
		args := make([]value.Value, len(n.Args))
		for i, a := range n.Args {
			args[i] = e.evalExpr(a)
		}
		return e.Instantiate(decl, args, n.Pos())
	case *ast.MethodCall:
		return e.evalMethodCall(n)
	case *ast.UnaryExpr:
		return e.evalUnary(n)
	case *ast.BinaryExpr:
		return e.evalBinary(n)
	default:
		panic(rterror.New(rterror.KindEvaluation, "unsupported expression node"))
	}
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpr) value.Value {
	v := e.evalExpr(n.X)
	switch n.Op {
	case "!":
		b, ok := v.(value.Bool)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "'!' requires Bool, got %s", v.TypeName()))
		}
		return value.Bool(!bool(b))
	case "-":
		switch x := v.(type) {
		case value.Int:
			return value.Int(-x)
		case value.Float:
			return value.Float(-x)
		case value.Double:
			return value.Double(-x)
		case value.Long:
			return value.NewLongFromString("-" + x.String())
		default:
			panic(rterror.New(rterror.KindEvaluation, "unary '-' requires a numeric operand, got %s", v.TypeName()))
		}
	default:
		panic(rterror.New(rterror.KindEvaluation, "unknown unary operator %s", n.Op))
	}
}

func (e *Evaluator) evalBinary(n *ast.BinaryExpr) value.Value {
	switch n.Op {
	case "&&":
		l := e.evalExpr(n.Left)
		lb, ok := l.(value.Bool)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "'&&' requires Bool operands"))
		}
		if !bool(lb) {
			return value.Bool(false)
		}
		r := e.evalExpr(n.Right)
		rb, ok := r.(value.Bool)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "'&&' requires Bool operands"))
		}
		return rb
	case "||":
		l := e.evalExpr(n.Left)
		lb, ok := l.(value.Bool)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "'||' requires Bool operands"))
		}
		if bool(lb) {
			return value.Bool(true)
		}
		r := e.evalExpr(n.Right)
		rb, ok := r.(value.Bool)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "'||' requires Bool operands"))
		}
		return rb
	}

	l := e.evalExpr(n.Left)
	r := e.evalExpr(n.Right)

	switch n.Op {
	case "==":
		return value.Bool(value.Equals(l, r))
	case "!=":
		return value.Bool(!value.Equals(l, r))
	}

	// Arithmetic and ordering comparisons require same-kind numeric
	// operands (: numeric variants never cross-compare), except
	// '+' on Text, which concatenates.
	if lt, lok := l.(value.Text); lok && n.Op == "+" {
		rt, rok := r.(value.Text)
		if !rok {
			panic(rterror.New(rterror.KindEvaluation, "Text '+' requires a Text right-hand operand"))
		}
		return value.Text(string(lt) + string(rt))
	}

	switch a := l.(type) {
	case value.Int:
		b, ok := r.(value.Int)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "operator %s requires matching Int operands", n.Op))
		}
		return intArith(n.Op, a, b)
	case value.Long:
		b, ok := r.(value.Long)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "operator %s requires matching Long operands", n.Op))
		}
		return longArith(n.Op, a, b)
	case value.Float:
		b, ok := r.(value.Float)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "operator %s requires matching Float operands", n.Op))
		}
		return floatArith(n.Op, a, b)
	case value.Double:
		b, ok := r.(value.Double)
		if !ok {
			panic(rterror.New(rterror.KindEvaluation, "operator %s requires matching Double operands", n.Op))
		}
		return doubleArith(n.Op, a, b)
	default:
		panic(rterror.New(rterror.KindEvaluation, "operator %s not supported on %s", n.Op, l.TypeName()))
	}
}

func intArith(op string, a, b value.Int) value.Value {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		if b == 0 {
			panic(rterror.New(rterror.KindEvaluation, "division by zero"))
		}
		return a / b
	case "%":
		if b == 0 {
			panic(rterror.New(rterror.KindEvaluation, "division by zero"))
		}
		return a % b
	case "<":
		return value.Bool(a < b)
	case "<=":
		return value.Bool(a <= b)
	case ">":
		return value.Bool(a > b)
	case ">=":
		return value.Bool(a >= b)
	default:
		panic(rterror.New(rterror.KindEvaluation, "unknown operator %s", op))
	}
}

func longArith(op string, a, b value.Long) value.Value {
	av, bv := a.V, b.V
	switch op {
	case "+":
		return value.Long{V: new(big.Int).Add(av, bv)}
	case "-":
		return value.Long{V: new(big.Int).Sub(av, bv)}
	case "*":
		return value.Long{V: new(big.Int).Mul(av, bv)}
	case "/":
		if bv.Sign() == 0 {
			panic(rterror.New(rterror.KindEvaluation, "division by zero"))
		}
		return value.Long{V: new(big.Int).Quo(av, bv)}
	case "%":
		if bv.Sign() == 0 {
			panic(rterror.New(rterror.KindEvaluation, "division by zero"))
		}
		return value.Long{V: new(big.Int).Rem(av, bv)}
	case "<":
		return value.Bool(av.Cmp(bv) < 0)
	case "<=":
		return value.Bool(av.Cmp(bv) <= 0)
	case ">":
		return value.Bool(av.Cmp(bv) > 0)
	case ">=":
		return value.Bool(av.Cmp(bv) >= 0)
	default:
		panic(rterror.New(rterror.KindEvaluation, "unknown operator %s", op))
	}
}

func floatArith(op string, a, b value.Float) value.Value {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		return a / b
	case "<":
		return value.Bool(a < b)
	case "<=":
		return value.Bool(a <= b)
	case ">":
		return value.Bool(a > b)
	case ">=":
		return value.Bool(a >= b)
	default:
		panic(rterror.New(rterror.KindEvaluation, "unknown operator %s", op))
	}
}

func doubleArith(op string, a, b value.Double) value.Value {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		return a / b
	case "<":
		return value.Bool(a < b)
	case "<=":
		return value.Bool(a <= b)
	case ">":
		return value.Bool(a > b)
	case ">=":
		return value.Bool(a >= b)
	default:
		panic(rterror.New(rterror.KindEvaluation, "unknown operator %s", op))
	}
}

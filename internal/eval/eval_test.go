package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombocoder/o2l/internal/context"
	"github.com/zombocoder/o2l/internal/eval"
	"github.com/zombocoder/o2l/internal/parser"
	"github.com/zombocoder/o2l/internal/value"
)

// run parses src, registers it, instantiates Main and calls main(),
// returning its outcome the way internal/cli does.
func run(t *testing.T, src string) (value.Value, error, value.Value) {
	t.Helper()
	file, err := parser.ParseFile(src)
	require.NoError(t, err)

	ctx := context.New()
	ev := eval.New(ctx)
	ev.RegisterFile(file)

	decl, ok := ev.LookupObjectDecl("Main")
	require.True(t, ok)

	inst := ev.Instantiate(decl, nil, file.Position)
	returned, rtErr, thrown := ev.CallExternalMethod(inst, "main", nil)
	if rtErr != nil {
		return returned, rtErr, thrown
	}
	return returned, nil, thrown
}

func TestMainReturnsInt(t *testing.T) {
	src := `
object Main {
  method main() {
    return 42;
  }
}`
	v, err, thrown := run(t, src)
	require.NoError(t, err)
	require.Nil(t, thrown)
	assert.Equal(t, value.Int(42), v)
}

func TestVarDeclAndArithmetic(t *testing.T) {
	src := `
object Main {
  method main() {
    x: Int = 10;
    y: Int = 20;
    return x + y;
  }
}`
	v, err, _ := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, value.Int(30), v)
}

func TestIfElseBranching(t *testing.T) {
	src := `
object Main {
  method main() {
    x: Int = 5;
    if (x > 10) {
      return 1;
    } else {
      return 2;
    }
  }
}`
	v, err, _ := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, value.Int(2), v)
}

func TestWhileLoop(t *testing.T) {
	src := `
object Main {
  method main() {
    i: Int = 0;
    sum: Int = 0;
    while (i < 5) {
      sum = sum + i;
      i = i + 1;
    }
    return sum;
  }
}`
	v, err, _ := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, value.Int(10), v)
}

// TestExternalCallToProtectedMethodFails asserts "Visibility"
// property end to end: an external call into a non-external method
// surfaces as an uncaught AccessViolation.
func TestExternalCallToProtectedMethodFails(t *testing.T) {
	src := `
object Widget {
  method secretHelper() {
    return 1;
  }
}
object Main {
  method main() {
    w: Widget = new Widget();
    return w.secretHelper();
  }
}`
	_, err, _ := run(t, src)
	require.Error(t, err)
}

// TestInternalCallToProtectedMethodSucceeds is the same method, called
// from within the object itself via `this` — must succeed.
func TestInternalCallToProtectedMethodSucceeds(t *testing.T) {
	src := `
object Widget {
  method secretHelper() {
    return 1;
  }
  external method publicCall() {
    return this.secretHelper();
  }
}
object Main {
  method main() {
    w: Widget = new Widget();
    return w.publicCall();
  }
}`
	v, err, _ := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), v)
}

func TestConstructorRunsOnNew(t *testing.T) {
	src := `
object Counter {
  constructor() {
    return 0;
  }
  external method value() {
    return 99;
  }
}
object Main {
  method main() {
    c: Counter = new Counter();
    return c.value();
  }
}`
	v, err, _ := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, value.Int(99), v)
}

// TestTryThrowCatchFinally is S9 scenario: a thrown Error is
// caught, its code read, and finally is observed to run exactly once.
func TestTryThrowCatchFinally(t *testing.T) {
	src := `
object Main {
  method main() {
    result: Text = "";
    finallyRan: Int = 0;
    try {
      throw Error("boom", "E1");
    } catch (e) {
      result = e.getCode();
    } finally {
      finallyRan = finallyRan + 1;
    }
    return result;
  }
}`
	v, err, thrown := run(t, src)
	require.NoError(t, err)
	require.Nil(t, thrown)
	assert.Equal(t, value.Text("E1"), v)
}

func TestFinallyRunsOnNormalFallthrough(t *testing.T) {
	src := `
object Main {
  method main() {
    x: Int = 0;
    try {
      x = 1;
    } finally {
      x = x + 10;
    }
    return x;
  }
}`
	v, err, _ := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, value.Int(11), v)
}

// TestFinallyOverridesReturn asserts that a return inside
// finally overrides the try block's return value.
func TestFinallyOverridesReturn(t *testing.T) {
	src := `
object Main {
  method main() {
    try {
      return 1;
    } finally {
      return 2;
    }
  }
}`
	v, err, _ := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, value.Int(2), v)
}

// TestUncaughtThrowPropagatesWithoutCatch asserts a throw with no matching
// catch clause re-raises as a user exception after finally runs.
func TestUncaughtThrowPropagatesWithoutCatch(t *testing.T) {
	src := `
object Main {
  method main() {
    try {
      throw Error("oops", "E9");
    } finally {
    }
    return 0;
  }
}`
	_, err, thrown := run(t, src)
	require.Nil(t, err)
	require.NotNil(t, thrown)
}

func TestListLiteralAndDeclTypeCheck(t *testing.T) {
	src := `
object Main {
  method main() {
    xs: List<Int> = [1, 2, 3];
    return xs.size();
  }
}`
	v, err, _ := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), v)
}

// TestListElementTypeMismatchRaises asserts "List element-type
// enforcement" property.
func TestListElementTypeMismatchRaises(t *testing.T) {
	src := `
object Main {
  method main() {
    xs: List<Int> = ["a"];
    return xs.size();
  }
}`
	_, err, _ := run(t, src)
	require.Error(t, err)
}

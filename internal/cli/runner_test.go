package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombocoder/o2l/internal/cli"
)

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.obq")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunNormalExitCode(t *testing.T) {
	path := writeProgram(t, `
object Main {
  method main() {
    return 7;
  }
}`)
	var out, errOut bytes.Buffer
	code := cli.Run(path, nil, nil, &out, &errOut)
	assert.Equal(t, 7, code)
	assert.Empty(t, errOut.String())
}

func TestRunDefaultExitCodeWhenNonIntReturn(t *testing.T) {
	path := writeProgram(t, `
object Main {
  method main() {
    return "done";
  }
}`)
	var out, errOut bytes.Buffer
	code := cli.Run(path, nil, nil, &out, &errOut)
	assert.Equal(t, 0, code)
}

func TestRunUncaughtExceptionReportsAndExitsNonZero(t *testing.T) {
	path := writeProgram(t, `
object Main {
  method main() {
    throw Error("boom", "E1");
  }
}`)
	var out, errOut bytes.Buffer
	code := cli.Run(path, nil, nil, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "Uncaught exception:")
}

func TestRunMissingMainObjectIsError(t *testing.T) {
	path := writeProgram(t, `
object NotMain {
  method main() {
    return 0;
  }
}`)
	var out, errOut bytes.Buffer
	code := cli.Run(path, nil, nil, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "no 'Main' object")
}

func TestRunSyntaxErrorIsReported(t *testing.T) {
	path := writeProgram(t, `object Main { method main( { return 0; } }`)
	var out, errOut bytes.Buffer
	code := cli.Run(path, nil, nil, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "syntax error")
}

func TestRunMissingFileIsError(t *testing.T) {
	var out, errOut bytes.Buffer
	code := cli.Run(filepath.Join(t.TempDir(), "nope.obq"), nil, nil, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "cannot read")
}

func TestRunProgramArgsAvailable(t *testing.T) {
	path := writeProgram(t, `
object Main {
  method main() {
    args: List<Text> = __program_args__;
    return args.size();
  }
}`)
	var out, errOut bytes.Buffer
	code := cli.Run(path, nil, []string{"a", "b", "c"}, &out, &errOut)
	assert.Equal(t, 3, code)
}

func TestRunIoPrintDoesNotAbort(t *testing.T) {
	path := writeProgram(t, `
object Main {
  method main() {
    io.print("hello");
    return 0;
  }
}`)
	var out, errOut bytes.Buffer
	code := cli.Run(path, nil, nil, &out, &errOut)
	assert.Equal(t, 0, code)
}

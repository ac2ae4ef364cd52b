package osmod_test

import (
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/result"
	"github.com/zombocoder/o2l/internal/stdlib/osmod"
	"github.com/zombocoder/o2l/internal/value"
)

func TestArgsAndArgc(t *testing.T) {
	h := osmod.New([]string{"a", "b"})
	v, err := h.Call("argc", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Int(2), v)

	v, err = h.Call("args", nil)
	require.Nil(t, err)
	lst := v.(*container.List)
	assert.Equal(t, int64(2), lst.Size())
}

func TestGetEnv(t *testing.T) {
	os.Setenv("O2L_TEST_VAR", "hello")
	defer os.Unsetenv("O2L_TEST_VAR")
	h := osmod.New(nil)
	v, err := h.Call("getEnv", []value.Value{value.Text("O2L_TEST_VAR")})
	require.Nil(t, err)
	assert.Equal(t, value.Text("hello"), v)
}

func TestOSIntrospection(t *testing.T) {
	h := osmod.New(nil)
	v, err := h.Call("getOSName", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Text(runtime.GOOS), v)

	v, err = h.Call("getArchitecture", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Text(runtime.GOARCH), v)

	v, err = h.Call("getCPUCount", nil)
	require.Nil(t, err)
	assert.True(t, int64(v.(value.Int)) > 0)

	v, err = h.Call("getProcessId", nil)
	require.Nil(t, err)
	assert.Equal(t, value.Int(os.Getpid()), v)
}

func TestExecuteRunsShellCommand(t *testing.T) {
	h := osmod.New(nil)
	v, err := h.Call("execute", []value.Value{value.Text("exit 0")})
	require.Nil(t, err)
	assert.Equal(t, value.Int(0), v)

	v, err = h.Call("execute", []value.Value{value.Text("exit 3")})
	require.Nil(t, err)
	assert.Equal(t, value.Int(3), v)
}

func TestExecuteWithOutputCapturesStdout(t *testing.T) {
	h := osmod.New(nil)
	v, err := h.Call("executeWithOutput", []value.Value{value.Text("echo hi")})
	require.Nil(t, err)
	out := v.(*container.Map)
	output, _ := out.Get(value.Text("output"))
	assert.Contains(t, string(output.(value.Text)), "hi")
}

func TestExecuteWithTimeoutExceeded(t *testing.T) {
	h := osmod.New(nil)
	v, err := h.Call("executeWithTimeout", []value.Value{value.Text("sleep 2"), value.Int(50)})
	require.Nil(t, err)
	out := v.(*container.Map)
	timedOut, _ := out.Get(value.Text("timedOut"))
	assert.Equal(t, value.Bool(true), timedOut)
}

func TestExecuteAsyncAndPollAsync(t *testing.T) {
	h := osmod.New(nil)
	idV, err := h.Call("executeAsync", []value.Value{value.Text("echo async-done")})
	require.Nil(t, err)

	var polled *container.Map
	for i := 0; i < 50; i++ {
		v, perr := h.Call("pollAsync", []value.Value{idV})
		require.Nil(t, perr)
		r := v.(*result.Result)
		require.True(t, r.IsSuccess)
		m := r.GetResult().(*container.Map)
		done, _ := m.Get(value.Text("done"))
		if bool(done.(value.Bool)) {
			polled = m
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NotNil(t, polled)
	out, _ := polled.Get(value.Text("output"))
	assert.Contains(t, string(out.(value.Text)), "async-done")
}

func TestPollAsyncUnknownHandleIsFailure(t *testing.T) {
	h := osmod.New(nil)
	v, err := h.Call("pollAsync", []value.Value{value.Int(999)})
	require.Nil(t, err)
	r := v.(*result.Result)
	assert.False(t, r.IsSuccess)
}

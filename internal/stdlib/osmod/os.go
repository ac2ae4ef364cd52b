// Package osmod builds O²L's `os` host object: environment,
// process/host introspection, and process execution, with the per-OS
// facts split into build-tagged sysinfo_<os>.go files. Process execution
// is grounded on original_source/src/Runtime/SystemLibrary.cpp's
// execute/executeWithOutput/executeWithTimeout/executeAsync surface.
package osmod

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"os/user"
	"runtime"
	"strings"
	"sync"
	"time"

	humanize "github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/result"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// asyncHandle tracks an in-flight executeAsync process, supervised by an
// errgroup.Group the same way a background worker pool would.
type asyncHandle struct {
	mu     sync.Mutex
	done   bool
	output string
	code   int64
	err    error
}

func New(programArgs []string) *object.HostObject {
	h := object.NewHostObject("os")
	var asyncGroup errgroup.Group
	handles := struct {
		mu sync.Mutex
		m  map[int64]*asyncHandle
	}{m: make(map[int64]*asyncHandle)}
	var nextHandle int64

	h.Register("getEnv", func(args []value.Value) (value.Value, *rterror.Error) {
		name, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("os", "getEnv", "one Text argument")
		}
		return value.Text(os.Getenv(name)), nil
	})

	h.Register("args", func(args []value.Value) (value.Value, *rterror.Error) {
		elems := make([]value.Value, len(programArgs))
		for i, a := range programArgs {
			elems[i] = value.Text(a)
		}
		return container.NewList("Text", elems), nil
	})

	h.Register("argc", func(args []value.Value) (value.Value, *rterror.Error) {
		return value.Int(len(programArgs)), nil
	})

	h.Register("getOSName", func(args []value.Value) (value.Value, *rterror.Error) {
		return value.Text(runtime.GOOS), nil
	})
	h.Register("getArchitecture", func(args []value.Value) (value.Value, *rterror.Error) {
		return value.Text(runtime.GOARCH), nil
	})
	h.Register("getOSVersion", func(args []value.Value) (value.Value, *rterror.Error) {
		return value.Text(runtimeVersionString()), nil
	})
	h.Register("getHostname", func(args []value.Value) (value.Value, *rterror.Error) {
		name, err := os.Hostname()
		if err != nil {
			return value.Text(""), nil
		}
		return value.Text(name), nil
	})
	h.Register("getUsername", func(args []value.Value) (value.Value, *rterror.Error) {
		u, err := user.Current()
		if err != nil {
			return value.Text(""), nil
		}
		return value.Text(u.Username), nil
	})
	h.Register("getCurrentDir", func(args []value.Value) (value.Value, *rterror.Error) {
		d, err := os.Getwd()
		if err != nil {
			return value.Text(""), nil
		}
		return value.Text(d), nil
	})
	h.Register("getProcessId", func(args []value.Value) (value.Value, *rterror.Error) {
		return value.Int(os.Getpid()), nil
	})
	h.Register("getParentProcessId", func(args []value.Value) (value.Value, *rterror.Error) {
		return value.Int(os.Getppid()), nil
	})
	h.Register("getUptime", func(args []value.Value) (value.Value, *rterror.Error) {
		secs, err := uptimeSeconds()
		if err != nil {
			return value.Int(0), nil
		}
		return value.Int(secs), nil
	})
	h.Register("getUptimeHuman", func(args []value.Value) (value.Value, *rterror.Error) {
		secs, err := uptimeSeconds()
		if err != nil {
			return value.Text("unknown"), nil
		}
		return value.Text(humanize.RelTime(time.Now().Add(-time.Duration(secs)*time.Second), time.Now(), "", "")), nil
	})
	h.Register("getTotalMemory", func(args []value.Value) (value.Value, *rterror.Error) {
		total, _, err := memoryInfo()
		if err != nil {
			return value.NewLong(0), nil
		}
		return value.NewLongFromString(itoa(total)), nil
	})
	h.Register("getFreeMemory", func(args []value.Value) (value.Value, *rterror.Error) {
		_, free, err := memoryInfo()
		if err != nil {
			return value.NewLong(0), nil
		}
		return value.NewLongFromString(itoa(free)), nil
	})
	h.Register("getTotalMemoryHuman", func(args []value.Value) (value.Value, *rterror.Error) {
		total, _, err := memoryInfo()
		if err != nil {
			return value.Text("unknown"), nil
		}
		return value.Text(humanize.Bytes(total)), nil
	})
	h.Register("getCPUCount", func(args []value.Value) (value.Value, *rterror.Error) {
		return value.Int(runtime.NumCPU()), nil
	})

	h.Register("execute", func(args []value.Value) (value.Value, *rterror.Error) {
		cmdline, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("os", "execute", "one Text command argument")
		}
		cmd := shellCommand(cmdline)
		if err := cmd.Run(); err != nil {
			return value.Int(exitCodeOf(err)), nil
		}
		return value.Int(0), nil
	})

	h.Register("executeWithOutput", func(args []value.Value) (value.Value, *rterror.Error) {
		cmdline, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("os", "executeWithOutput", "one Text command argument")
		}
		cmd := shellCommand(cmdline)
		var buf bytes.Buffer
		cmd.Stdout = &buf
		cmd.Stderr = &buf
		runErr := cmd.Run()
		out := container.NewMap("Text", "Value")
		out.Put(value.Text("output"), value.Text(buf.String()))
		out.Put(value.Text("exitCode"), value.Int(exitCodeOf(runErr)))
		return out, nil
	})

	h.Register("executeWithTimeout", func(args []value.Value) (value.Value, *rterror.Error) {
		cmdline, ok := textArg(args, 0)
		if !ok || len(args) < 2 {
			return nil, rterror.RequiresArgs("os", "executeWithTimeout", "a Text command and an Int timeout in milliseconds")
		}
		ms, ok := intArg(args, 1)
		if !ok {
			return nil, rterror.RequiresArgs("os", "executeWithTimeout", "an Int timeout in milliseconds")
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(ms)*time.Millisecond)
		defer cancel()
		cmd := shellCommandContext(ctx, cmdline)
		var buf bytes.Buffer
		cmd.Stdout = &buf
		cmd.Stderr = &buf
		runErr := cmd.Run()
		out := container.NewMap("Text", "Value")
		out.Put(value.Text("output"), value.Text(buf.String()))
		out.Put(value.Text("timedOut"), value.Bool(ctx.Err() == context.DeadlineExceeded))
		out.Put(value.Text("exitCode"), value.Int(exitCodeOf(runErr)))
		return out, nil
	})

	h.Register("executeAsync", func(args []value.Value) (value.Value, *rterror.Error) {
		cmdline, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("os", "executeAsync", "one Text command argument")
		}
		handles.mu.Lock()
		nextHandle++
		id := nextHandle
		ah := &asyncHandle{}
		handles.m[id] = ah
		handles.mu.Unlock()

		asyncGroup.Go(func() error {
			cmd := shellCommand(cmdline)
			var buf bytes.Buffer
			cmd.Stdout = &buf
			cmd.Stderr = &buf
			runErr := cmd.Run()
			ah.mu.Lock()
			ah.done = true
			ah.output = buf.String()
			ah.code = int64(exitCodeOf(runErr))
			ah.err = runErr
			ah.mu.Unlock()
			return nil
		})
		return value.Int(id), nil
	})

	h.Register("pollAsync", func(args []value.Value) (value.Value, *rterror.Error) {
		id, ok := intArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("os", "pollAsync", "an Int handle returned by executeAsync")
		}
		handles.mu.Lock()
		ah, found := handles.m[id]
		handles.mu.Unlock()
		if !found {
			return result.Failure(result.NewError("unknown async handle", "EVALUATION"), "Value", "Error"), nil
		}
		ah.mu.Lock()
		defer ah.mu.Unlock()
		out := container.NewMap("Text", "Value")
		out.Put(value.Text("done"), value.Bool(ah.done))
		out.Put(value.Text("output"), value.Text(ah.output))
		out.Put(value.Text("exitCode"), value.Int(ah.code))
		return result.Success(out, "Value", "Error"), nil
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
	switch n := args[i].(type) {
	case value.Int:
		return int64(n), true
	case value.Long:
		if n.V == nil {
			return 0, true
		}
		return n.V.Int64(), true
	default:
		return 0, false
	}
}

func shellCommand(cmdline string) *exec.Cmd {
	return shellCommandContext(context.Background(), cmdline)
}

func shellCommandContext(ctx context.Context, cmdline string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", cmdline)
	}
	return exec.CommandContext(ctx, "/bin/sh", "-c", cmdline)
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	return -1
}

func runtimeVersionString() string {
	return strings.TrimPrefix(runtime.Version(), "go")
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}

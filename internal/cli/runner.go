package cli

import (
	"fmt"
	stdio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/context"
	"github.com/zombocoder/o2l/internal/eval"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/parser"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/stdlib/ffi"
	"github.com/zombocoder/o2l/internal/stdlib/fs"
	"github.com/zombocoder/o2l/internal/stdlib/httpclient"
	"github.com/zombocoder/o2l/internal/stdlib/httpserver"
	"github.com/zombocoder/o2l/internal/stdlib/io"
	"github.com/zombocoder/o2l/internal/stdlib/jsonlib"
	"github.com/zombocoder/o2l/internal/stdlib/osmod"
	"github.com/zombocoder/o2l/internal/stdlib/utils"
	"github.com/zombocoder/o2l/internal/value"
)

// Run bootstraps and executes one O²L program:
// locate the entry .obq, bootstrap stdlib, populate __program_args__,
// invoke Main.main(), and map its outcome to an exit code. stdout/stderr
// are parameters so tests can capture them instead of touching the real
// process streams.
func Run(entryPath string, manifest *Manifest, programArgs []string, stdout, stderr stdio.Writer) int {
	src, err := os.ReadFile(entryPath)
	if err != nil {
		fmt.Fprintln(stderr, "o2l: cannot read "+entryPath+": "+err.Error())
		return 1
	}

	file, perr := parser.ParseFile(string(src))
	if perr != nil {
		fmt.Fprintln(stderr, "o2l: syntax error in "+entryPath+": "+perr.Error())
		return 1
	}

	ctx := context.New()
	ev := eval.New(ctx)
	ev.RegisterFile(file)

	if manifest != nil && manifest.FFI {
		ffi.Enable()
	}

	bootstrapStdlib(ev, programArgs)

	argList := make([]value.Value, len(programArgs))
	for i, a := range programArgs {
		argList[i] = value.Text(a)
	}
	ctx.ProgramArgs = container.NewList("Text", argList)
	ev.DefineGlobal("__program_args__", ctx.ProgramArgs)

	mainDecl, ok := ev.LookupObjectDecl("Main")
	if !ok {
		fmt.Fprintln(stderr, "o2l: no 'Main' object declared in "+entryPath)
		return 1
	}

	inst := ev.Instantiate(mainDecl, nil, file.Position)
	returned, rtErr, thrown := ev.CallExternalMethod(inst, "main", nil)

	if rtErr != nil {
		reportUncaught(stderr, rtErr.Error(), rtErr.TraceString())
		return 1
	}
	if thrown != nil {
		reportUncaught(stderr, value.ToString(thrown), "")
		return 1
	}
	if n, ok := returned.(value.Int); ok {
		return int(n)
	}
	return 0
}

// reportUncaught writes required uncaught-exception format:
// first line "Uncaught exception:", then the exception's rendering, then
// the stack trace frame-by-frame (inner-most first — rterror.TraceString
// already orders it that way).
func reportUncaught(stderr stdio.Writer, rendered, trace string) {
	fmt.Fprintln(stderr, "Uncaught exception:")
	fmt.Fprintln(stderr, rendered)
	if trace != "" {
		stdio.WriteString(stderr, trace)
	}
}

// bootstrapStdlib installs every host object at the
// top-level scope, usable without an import for system ones. The
// http.server sub-object is wired here, not in internal/stdlib/httpserver,
// because routing a registered handler through to the live evaluator
// requires package eval, which httpserver deliberately doesn't import
// (: the server's worker threads "never re-enter the interpreter"
// except through the single dispatch path wired below).
func bootstrapStdlib(ev *eval.Evaluator, programArgs []string) {
	ev.DefineGlobal("io", io.New(os.Stdout, os.Stdin))
	ev.DefineGlobal("os", osmod.New(programArgs))
	ev.DefineGlobal("fs", fs.New())
	ev.DefineGlobal("utils", utils.New())
	ev.DefineGlobal("json", jsonlib.New())
	ev.DefineGlobal("ffi", ffi.New())

	httpClient := httpclient.New()
	httpServerObj, srv := httpserver.New()
	wireServerHandlers(ev, httpServerObj, srv)

	http := object.NewHostObject("http")
	http.Register("client", func(args []value.Value) (value.Value, *rterror.Error) {
		return httpClient, nil
	})
	http.Register("server", func(args []value.Value) (value.Value, *rterror.Error) {
		return httpServerObj, nil
	})
	ev.DefineGlobal("http", http)
}

// wireServerHandlers overrides http.server's get/post/put/delete/patch/
// head/options registrations (stubbed in internal/stdlib/httpserver with a
// "requires internal/cli" error) with real ones that marshal an incoming
// net/http request into an O²L request Map, call the matching user-defined
// route handler *as a host NativeFn call*, and marshal the returned Map
// back into an HTTP response.
func wireServerHandlers(ev *eval.Evaluator, h *object.HostObject, srv *httpserver.Server) {
	serial := make(chan struct{}, 1) // shared by every route: one handler call at a time
	for _, method := range []string{"get", "post", "put", "delete", "patch", "head", "options"} {
		m := strings.ToUpper(method)
		h.Register(method, func(args []value.Value) (value.Value, *rterror.Error) {
			if len(args) < 2 {
				return nil, rterror.RequiresArgs("http.server", method, "a Text pattern and a handler value")
			}
			pattern, ok := args[0].(value.Text)
			if !ok {
				return nil, rterror.RequiresArgs("http.server", method, "a Text pattern as the first argument")
			}
			handlerVal := args[1]
			srv.RegisterRoute(m, string(pattern), func(req *container.Map) *container.Map {
				serial <- struct{}{}
				defer func() { <-serial }()
				return invokeHandler(ev, handlerVal, req)
			})
			return value.Nil, nil
		})
	}
}

// invokeHandler dispatches a single HTTP request through the normal
// method-call dispatch path — handlerVal is either a user *object.Instance
// bound method name "handle" by convention, or (more commonly) an
// ObjectInstance whose "handle(req)" method the route was registered with.
// This is the one reentry point from a server goroutine into evaluator
// state. net/http runs each request on its own goroutine; the routes
// wireServerHandlers registers take a shared one-slot channel around this
// call, so only one request at a time ever touches the interpreter.
func invokeHandler(ev *eval.Evaluator, handlerVal value.Value, req *container.Map) *container.Map {
	inst, ok := handlerVal.(*object.Instance)
	if !ok {
		errResp := container.NewMap("Text", "Value")
		errResp.Put(value.Text("status"), value.Int(500))
		errResp.Put(value.Text("body"), value.Text("handler is not an object instance"))
		return errResp
	}
	returned, rtErr, thrown := ev.CallExternalMethod(inst, "handle", []value.Value{req})
	if rtErr != nil || thrown != nil {
		errResp := container.NewMap("Text", "Value")
		errResp.Put(value.Text("status"), value.Int(500))
		msg := "handler failed"
		if rtErr != nil {
			msg = rtErr.Error()
		} else if thrown != nil {
			msg = value.ToString(thrown)
		}
		errResp.Put(value.Text("body"), value.Text(msg))
		return errResp
	}
	if m, ok := returned.(*container.Map); ok {
		return m
	}
	resp := container.NewMap("Text", "Value")
	resp.Put(value.Text("status"), value.Int(200))
	resp.Put(value.Text("body"), value.Text(value.ToString(returned)))
	return resp
}

// EntryDir returns the directory that contains entryPath.
func EntryDir(entryPath string) string {
	return filepath.Dir(entryPath)
}

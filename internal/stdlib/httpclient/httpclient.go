// Package httpclient builds O²L's `http.client` host object.
// Grounded on original_source/src/Runtime/HttpClientLibrary.cpp's verb
// methods and stateful request builder, rendered with net/http the way
// builtins_http.go wires its own HTTP client calls.
package httpclient

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func New() *object.HostObject {
	h := object.NewHostObject("http.client")
	client := &http.Client{Timeout: 30 * time.Second}

	verb := func(method string) func([]value.Value) (value.Value, *rterror.Error) {
		return func(args []value.Value) (value.Value, *rterror.Error) {
			url, ok := textArg(args, 0)
			if !ok {
				return nil, rterror.RequiresArgs("http.client", method, "one Text URL argument")
			}
			var body io.Reader
			if len(args) > 1 {
				if b, ok := args[1].(value.Text); ok {
					body = strings.NewReader(string(b))
				}
			}
			req, err := http.NewRequest(method, url, body)
			if err != nil {
				return errorResponse(err), nil
			}
			if len(args) > 2 {
				if hdrs, ok := args[2].(*container.Map); ok {
					applyHeaders(req, hdrs)
				}
			}
			return doRequest(client, req), nil
		}
	}

	h.Register("get", verb(http.MethodGet))
	h.Register("post", verb(http.MethodPost))
	h.Register("put", verb(http.MethodPut))
	h.Register("delete", verb(http.MethodDelete))
	h.Register("patch", verb(http.MethodPatch))
	h.Register("head", verb(http.MethodHead))

	h.Register("request", func(args []value.Value) (value.Value, *rterror.Error) {
		return object.NewHostObject("HttpRequest").
			Register("get", func(a []value.Value) (value.Value, *rterror.Error) {
				return verb(http.MethodGet)(a)
			}).
			Register("post", func(a []value.Value) (value.Value, *rterror.Error) {
				return verb(http.MethodPost)(a)
			}), nil
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

func applyHeaders(req *http.Request, hdrs *container.Map) {
	for _, e := range hdrs.Snapshot() {
		k, ok1 := e.Key().(value.Text)
		v, ok2 := e.Val().(value.Text)
		if ok1 && ok2 {
			req.Header.Set(string(k), string(v))
		}
	}
}

// doRequest executes req and packages the result into the HttpResponse
// shape used throughout this package: status_code, status_message, body, success,
// error_message, headers.
func doRequest(client *http.Client, req *http.Request) *container.Map {
	resp, err := client.Do(req)
	if err != nil {
		return errorResponse(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	hdrs := container.NewMap("Text", "Text")
	for k, vs := range resp.Header {
		if len(vs) > 0 {
			hdrs.Put(value.Text(k), value.Text(vs[0]))
		}
	}

	out := container.NewMap("Text", "Value")
	out.Put(value.Text("status_code"), value.Int(resp.StatusCode))
	out.Put(value.Text("status_message"), value.Text(resp.Status))
	out.Put(value.Text("body"), value.Text(string(body)))
	out.Put(value.Text("success"), value.Bool(resp.StatusCode >= 200 && resp.StatusCode < 300))
	out.Put(value.Text("error_message"), value.Text(""))
	out.Put(value.Text("headers"), hdrs)
	return out
}

func errorResponse(err error) *container.Map {
	out := container.NewMap("Text", "Value")
	out.Put(value.Text("status_code"), value.Int(0))
	out.Put(value.Text("status_message"), value.Text(""))
	out.Put(value.Text("body"), value.Text(""))
	out.Put(value.Text("success"), value.Bool(false))
	out.Put(value.Text("error_message"), value.Text(err.Error()))
	out.Put(value.Text("headers"), container.NewMap("Text", "Text"))
	return out
}

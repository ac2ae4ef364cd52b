// Package httpserver builds O²L's `http.server` host object:
// create-listen-stop lifecycle, verb-routed handlers with `:name` path
// params, a middleware chain, and static file serving. Grounded on
// original_source/src/Runtime/HttpServerLibrary.cpp's route table and
// handler-
// registration idiom. golang.org/x/sync/errgroup supervises the listener
// goroutine so Stop can wait for a clean shutdown; github.com/google/uuid
// stamps a request id header the way original_source's RequestContext does
// (a supplement — spec.md's distillation dropped request ids, but the
// original's request logging relies on them).
package httpserver

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// Handler is a user-registered route handler, called with an O²L request
// Map and expected to return an O²L response Map; this is the bridge
// between net/http's goroutine-per-request model and O²L's single-
// threaded interpreter (: server worker threads "never re-enter
// the interpreter" — callers of New marshal the actual interpreter call
// onto the single execution thread themselves).
type Handler func(req *container.Map) *container.Map

type route struct {
	method  string
	pattern string
	segs    []string
	handler Handler
}

// Server is the native routing/lifecycle state behind the http.server
// host object; internal/cli holds onto it to wire get/post/... registered
// in .obq source through to real net/http routes once it has a live
// evaluator to call handler bodies with.
type Server struct {
	mu         sync.Mutex
	routes     []route
	middleware []func(Handler) Handler
	staticDir  string
	staticURL  string
	srv        *http.Server
	group      errgroup.Group
}

func New() (*object.HostObject, *Server) {
	s := &Server{}
	h := object.NewHostObject("http.server")

	register := func(method string) func([]value.Value) (value.Value, *rterror.Error) {
		return func(args []value.Value) (value.Value, *rterror.Error) {
			return value.Nil, rterror.New(rterror.KindEvaluation,
				"http.server.%s() requires a native handler callback, which is wired by internal/cli when it builds this host object for a running program", strings.ToLower(method))
		}
	}
	for _, m := range []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"} {
		h.Register(strings.ToLower(m), register(m))
	}

	h.Register("listen", func(args []value.Value) (value.Value, *rterror.Error) {
		addr, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("http.server", "listen", "one Text address argument")
		}
		mux := s.buildMux()
		s.mu.Lock()
		s.srv = &http.Server{Addr: addr, Handler: mux}
		srv := s.srv
		s.mu.Unlock()
		s.group.Go(func() error {
			err := srv.ListenAndServe()
			if err == http.ErrServerClosed {
				return nil
			}
			return err
		})
		return value.Nil, nil
	})

	h.Register("stop", func(args []value.Value) (value.Value, *rterror.Error) {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return value.Nil, nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		s.group.Wait()
		return value.Nil, nil
	})

	h.Register("static", func(args []value.Value) (value.Value, *rterror.Error) {
		urlPrefix, ok1 := textArg(args, 0)
		dir, ok2 := textArg(args, 1)
		if !ok1 || !ok2 {
			return nil, rterror.RequiresArgs("http.server", "static", "a Text URL prefix and a Text directory path")
		}
		s.mu.Lock()
		s.staticURL, s.staticDir = urlPrefix, dir
		s.mu.Unlock()
		return value.Nil, nil
	})

	return h, s
}

// RegisterRoute is the native-side counterpart to the get/post/... methods
// registered above; internal/cli calls this once it has a live evaluator
// to dispatch handler bodies through, keeping this package itself free of
// a dependency on internal/eval.
func (s *Server) RegisterRoute(method, pattern string, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, route{method: method, pattern: pattern, segs: strings.Split(strings.Trim(pattern, "/"), "/"), handler: handler})
}

func (s *Server) Use(mw func(Handler) Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.middleware = append(s.middleware, mw)
}

func (s *Server) buildMux() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)

		s.mu.Lock()
		routes := append([]route(nil), s.routes...)
		middleware := append([]func(Handler) Handler(nil), s.middleware...)
		staticURL, staticDir := s.staticURL, s.staticDir
		s.mu.Unlock()

		if staticURL != "" && strings.HasPrefix(r.URL.Path, staticURL) {
			http.StripPrefix(staticURL, http.FileServer(http.Dir(staticDir))).ServeHTTP(w, r)
			return
		}

		segs := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		for _, rt := range routes {
			if rt.method != r.Method {
				continue
			}
			params, ok := matchRoute(rt.segs, segs)
			if !ok {
				continue
			}
			reqMap := buildRequestMap(r, params, reqID)
			final := rt.handler
			for i := len(middleware) - 1; i >= 0; i-- {
				final = middleware[i](final)
			}
			resp := final(reqMap)
			writeResponse(w, resp)
			return
		}
		http.NotFound(w, r)
	})
}

func matchRoute(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			params[seg[1:]] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}

func buildRequestMap(r *http.Request, params map[string]string, reqID string) *container.Map {
	m := container.NewMap("Text", "Value")
	m.Put(value.Text("method"), value.Text(r.Method))
	m.Put(value.Text("path"), value.Text(r.URL.Path))
	m.Put(value.Text("requestId"), value.Text(reqID))

	paramMap := container.NewMap("Text", "Text")
	for k, v := range params {
		paramMap.Put(value.Text(k), value.Text(v))
	}
	m.Put(value.Text("params"), paramMap)

	query := container.NewMap("Text", "Text")
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			query.Put(value.Text(k), value.Text(vs[0]))
		}
	}
	m.Put(value.Text("query"), query)

	headers := container.NewMap("Text", "Text")
	for k, vs := range r.Header {
		if len(vs) > 0 {
			headers.Put(value.Text(k), value.Text(vs[0]))
		}
	}
	m.Put(value.Text("headers"), headers)

	return m
}

func writeResponse(w http.ResponseWriter, resp *container.Map) {
	status := 200
	if v, err := resp.Get(value.Text("status")); err == nil {
		if n, ok := v.(value.Int); ok {
			status = int(n)
		}
	}
	if v, err := resp.Get(value.Text("headers")); err == nil {
		if hdrs, ok := v.(*container.Map); ok {
			for _, e := range hdrs.Snapshot() {
				if k, ok1 := e.Key().(value.Text); ok1 {
					if val, ok2 := e.Val().(value.Text); ok2 {
						w.Header().Set(string(k), string(val))
					}
				}
			}
		}
	}
	w.WriteHeader(status)
	if v, err := resp.Get(value.Text("body")); err == nil {
		if body, ok := v.(value.Text); ok {
			w.Write([]byte(body))
		}
	}
}

func textArg(args []value.Value, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	t, ok := args[i].(value.Text)
	return string(t), ok
}

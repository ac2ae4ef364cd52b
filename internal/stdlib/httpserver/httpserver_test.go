package httpserver_test

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/stdlib/httpserver"
	"github.com/zombocoder/o2l/internal/value"
)

func TestRouteParamsAndListenStop(t *testing.T) {
	h, srv := httpserver.New()

	srv.RegisterRoute("GET", "/widgets/:id", func(req *container.Map) *container.Map {
		params, _ := req.Get(value.Text("params"))
		idMap := params.(*container.Map)
		id, _ := idMap.Get(value.Text("id"))

		resp := container.NewMap("Text", "Value")
		resp.Put(value.Text("status"), value.Int(200))
		resp.Put(value.Text("body"), value.Text("widget:"+string(id.(value.Text))))
		return resp
	})

	_, err := h.Call("listen", []value.Value{value.Text("127.0.0.1:18791")})
	require.Nil(t, err)
	defer h.Call("stop", nil)

	time.Sleep(50 * time.Millisecond)

	resp, httpErr := http.Get("http://127.0.0.1:18791/widgets/42")
	require.NoError(t, httpErr)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "widget:42", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestUnregisteredRouteIsNotFound(t *testing.T) {
	h, _ := httpserver.New()
	_, err := h.Call("listen", []value.Value{value.Text("127.0.0.1:18792")})
	require.Nil(t, err)
	defer h.Call("stop", nil)
	time.Sleep(50 * time.Millisecond)

	resp, httpErr := http.Get("http://127.0.0.1:18792/nope")
	require.NoError(t, httpErr)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDirectRouteMethodsRequireNativeWiring(t *testing.T) {
	h, _ := httpserver.New()
	_, err := h.Call("get", []value.Value{value.Text("/x"), value.Nil})
	assert.NotNil(t, err)
}

func TestMiddlewareWrapsHandler(t *testing.T) {
	h, srv := httpserver.New()
	var order []string

	srv.Use(func(next httpserver.Handler) httpserver.Handler {
		return func(req *container.Map) *container.Map {
			order = append(order, "before")
			resp := next(req)
			order = append(order, "after")
			return resp
		}
	})
	srv.RegisterRoute("GET", "/ping", func(req *container.Map) *container.Map {
		order = append(order, "handler")
		resp := container.NewMap("Text", "Value")
		resp.Put(value.Text("status"), value.Int(200))
		resp.Put(value.Text("body"), value.Text("pong"))
		return resp
	})

	_, err := h.Call("listen", []value.Value{value.Text("127.0.0.1:18793")})
	require.Nil(t, err)
	defer h.Call("stop", nil)
	time.Sleep(50 * time.Millisecond)

	resp, httpErr := http.Get("http://127.0.0.1:18793/ping")
	require.NoError(t, httpErr)
	resp.Body.Close()
	assert.Equal(t, []string{"before", "handler", "after"}, order)
}

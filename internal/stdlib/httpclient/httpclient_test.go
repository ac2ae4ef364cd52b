package httpclient_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/stdlib/httpclient"
	"github.com/zombocoder/o2l/internal/value"
)

func TestGetAgainstLiveServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	h := httpclient.New()
	v, err := h.Call("get", []value.Value{value.Text(srv.URL)})
	require.Nil(t, err)
	resp := v.(*container.Map)

	status, _ := resp.Get(value.Text("status_code"))
	assert.Equal(t, value.Int(200), status)

	body, _ := resp.Get(value.Text("body"))
	assert.Equal(t, value.Text("hello"), body)

	success, _ := resp.Get(value.Text("success"))
	assert.Equal(t, value.Bool(true), success)
}

func TestPostWithBodyAndHeaders(t *testing.T) {
	var gotBody, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		gotHeader = r.Header.Get("X-Custom")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	hdrs := container.NewMap("Text", "Text")
	hdrs.Put(value.Text("X-Custom"), value.Text("abc"))

	h := httpclient.New()
	v, err := h.Call("post", []value.Value{value.Text(srv.URL), value.Text("payload"), hdrs})
	require.Nil(t, err)
	resp := v.(*container.Map)
	status, _ := resp.Get(value.Text("status_code"))
	assert.Equal(t, value.Int(201), status)
	assert.Equal(t, "payload", gotBody)
	assert.Equal(t, "abc", gotHeader)
}

func TestGetMissingURLArgIsError(t *testing.T) {
	h := httpclient.New()
	_, err := h.Call("get", nil)
	assert.NotNil(t, err)
}

func TestGetUnreachableHostReturnsErrorResponse(t *testing.T) {
	h := httpclient.New()
	v, err := h.Call("get", []value.Value{value.Text("http://127.0.0.1:1")})
	require.Nil(t, err)
	resp := v.(*container.Map)
	success, _ := resp.Get(value.Text("success"))
	assert.Equal(t, value.Bool(false), success)
	msg, _ := resp.Get(value.Text("error_message"))
	assert.NotEqual(t, value.Text(""), msg)
}

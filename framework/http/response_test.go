package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-rio/framework/config"
	gohttp "github.com/km-arc/go-rio/framework/http"
	"github.com/km-arc/go-rio/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newResponse() *gohttp.Response {
	return gohttp.NewResponse(http.StatusOK, http.Header{"Content-Type": {"text/html; charset=UTF-8"}})
}

func decodeJSON(t *testing.T, res *gohttp.Response) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(res.Body(), &m))
	return m
}

// chunkRecorder counts Write calls.
type chunkRecorder struct {
	*httptest.ResponseRecorder
	writes int
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.writes++
	return c.ResponseRecorder.Write(p)
}

type failingWriter struct{ *httptest.ResponseRecorder }

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestResponse_JSONReplacesBody(t *testing.T) {
	res := newResponse()
	_, _ = res.WriteString("stale")

	require.NoError(t, res.JSON(http.StatusAccepted, map[string]any{"key": "val"}))

	assert.Equal(t, http.StatusAccepted, res.StatusCode())
	assert.Equal(t, "application/json", res.Header().Get("Content-Type"))
	assert.Equal(t, "val", decodeJSON(t, res)["key"])
}

func TestResponse_Envelopes(t *testing.T) {
	res := newResponse()
	require.NoError(t, res.Success(map[string]any{"id": 1}))
	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.Contains(t, decodeJSON(t, res), "data")

	require.NoError(t, res.Created("x"))
	assert.Equal(t, http.StatusCreated, res.StatusCode())

	res.NoContent()
	assert.Equal(t, http.StatusNoContent, res.StatusCode())
	assert.Empty(t, res.Body())
}

func TestResponse_ErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		call   func(*gohttp.Response) error
		status int
		msg    string
	}{
		{"Error", func(r *gohttp.Response) error { return r.Error(http.StatusBadRequest, "bad input") }, 400, "bad input"},
		{"Unauthorized", func(r *gohttp.Response) error { return r.Unauthorized() }, 401, "Unauthenticated."},
		{"UnauthorizedCustom", func(r *gohttp.Response) error { return r.Unauthorized("Token expired.") }, 401, "Token expired."},
		{"Forbidden", func(r *gohttp.Response) error { return r.Forbidden() }, 403, "This action is unauthorized."},
		{"NotFound", func(r *gohttp.Response) error { return r.NotFound() }, 404, "Not found."},
		{"ServerError", func(r *gohttp.Response) error { return r.ServerError() }, 500, "Server Error."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newResponse()
			require.NoError(t, tt.call(res))
			assert.Equal(t, tt.status, res.StatusCode())
			assert.Equal(t, tt.msg, decodeJSON(t, res)["message"])
		})
	}
}

func TestResponse_ValidationError(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"limit": "required"})
	require.True(t, v.Fails())

	res := newResponse()
	require.NoError(t, res.ValidationError(v.Errors()))
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode())
	assert.Contains(t, decodeJSON(t, res), "errors")
}

// ── Redirects ────────────────────────────────────────────────────────────────

func TestResponse_Redirects(t *testing.T) {
	res := newResponse().RedirectTo("/home")
	assert.Equal(t, http.StatusFound, res.StatusCode())
	assert.Equal(t, "/home", res.Header().Get("Location"))

	raw := httptest.NewRequest(http.MethodGet, "/", nil)
	raw.Header.Set("Referer", "/previous")
	res = newResponse().RedirectBack(gohttp.NewRequest(raw), "/fallback")
	assert.Equal(t, "/previous", res.Header().Get("Location"))

	res = newResponse().RedirectBack(gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil)), "/fallback")
	assert.Equal(t, "/fallback", res.Header().Get("Location"))
}

// ── Cookies ──────────────────────────────────────────────────────────────────

func TestResponse_SetCookie(t *testing.T) {
	res := newResponse().SetCookie("session", "abc", config.Cookie{
		Lifetime: 20 * time.Minute,
		Path:     "/",
		Domain:   "example.com",
		Secure:   true,
		HTTPOnly: true,
	})

	cookie := res.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(cookie, "session=abc"))
	assert.Contains(t, cookie, "Path=/")
	assert.Contains(t, cookie, "Domain=example.com")
	assert.Contains(t, cookie, "Max-Age=1200")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")
}

func TestResponse_SetCookie_Session(t *testing.T) {
	res := newResponse().SetCookie("flash", "1", config.Cookie{Path: "/"})
	assert.NotContains(t, res.Header().Get("Set-Cookie"), "Max-Age")
}

// ── Emit ─────────────────────────────────────────────────────────────────────

func TestResponse_EmitInChunks(t *testing.T) {
	res := newResponse().SetStatus(http.StatusTeapot).SetHeader("X-App", "rio")
	_, _ = res.WriteString(strings.Repeat("a", 10))

	rec := &chunkRecorder{ResponseRecorder: httptest.NewRecorder()}
	require.NoError(t, res.Emit(rec, 4))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "rio", rec.Header().Get("X-App"))
	assert.Equal(t, "10", rec.Header().Get("Content-Length"))
	assert.Equal(t, strings.Repeat("a", 10), rec.Body.String())
	assert.Equal(t, 3, rec.writes)
}

func TestResponse_EmitEmptyStatus(t *testing.T) {
	res := newResponse().SetStatus(http.StatusNotModified)
	_, _ = res.WriteString("ignored")

	rec := httptest.NewRecorder()
	require.NoError(t, res.Emit(rec, 0))
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestResponse_EmitHTTP10ClosesConnection(t *testing.T) {
	res := newResponse().SetProtocolVersion("1.0")
	assert.Equal(t, "1.0", res.ProtocolVersion())

	rec := httptest.NewRecorder()
	require.NoError(t, res.Emit(rec, 4096))
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}

func TestResponse_EmitWriteError(t *testing.T) {
	res := newResponse()
	_, _ = res.WriteString("body")
	err := res.Emit(failingWriter{httptest.NewRecorder()}, 4096)
	assert.EqualError(t, err, "broken pipe")
}

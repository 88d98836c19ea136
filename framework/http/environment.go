package http

import (
	"context"
	"io"
	"maps"
	"net"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Environment is a read-only, CGI-style snapshot of an incoming request:
// REQUEST_METHOD, REQUEST_URI, SERVER_PROTOCOL, HTTP_* headers and so on.
// It also keeps the request body and context so a Request can be rebuilt
// from it.
type Environment struct {
	values map[string]string
	multi  map[string][]string // header keys that arrived with several values
	body   io.Reader
	ctx    context.Context
}

// NewEnvironment captures r. The body is not read.
func NewEnvironment(r *http.Request) *Environment {
	host, port := splitHostPort(r.Host)
	if port == "" {
		port = "80"
		if r.TLS != nil {
			port = "443"
		}
	}

	values := map[string]string{
		"SERVER_PROTOCOL": r.Proto,
		"REQUEST_METHOD":  r.Method,
		"SCRIPT_NAME":     "",
		"REQUEST_URI":     r.URL.RequestURI(),
		"QUERY_STRING":    r.URL.RawQuery,
		"SERVER_NAME":     host,
		"SERVER_PORT":     port,
		"REMOTE_ADDR":     r.RemoteAddr,
		"REQUEST_TIME":    strconv.FormatInt(time.Now().Unix(), 10),
	}
	if r.TLS != nil {
		values["HTTPS"] = "on"
	}
	if r.Host != "" {
		values["HTTP_HOST"] = r.Host
	}
	multi := map[string][]string{}
	for name, vals := range r.Header {
		key := headerToKey(name)
		values[key] = strings.Join(vals, headerSeparator(key))
		if len(vals) > 1 {
			multi[key] = slices.Clone(vals)
		}
	}

	var body io.Reader = http.NoBody
	if r.Body != nil {
		body = r.Body
	}
	return &Environment{values: values, multi: multi, body: body, ctx: r.Context()}
}

// MockEnvironment returns an environment for a plain GET to
// http://localhost/ with overrides applied on top.
//
//	env := gohttp.MockEnvironment(map[string]string{
//	    "REQUEST_METHOD": "POST",
//	    "REQUEST_URI":    "/users?page=2",
//	})
func MockEnvironment(overrides map[string]string) *Environment {
	values := map[string]string{
		"SERVER_PROTOCOL":      "HTTP/1.1",
		"REQUEST_METHOD":       http.MethodGet,
		"SCRIPT_NAME":          "",
		"REQUEST_URI":          "/",
		"QUERY_STRING":         "",
		"SERVER_NAME":          "localhost",
		"SERVER_PORT":          "80",
		"HTTP_HOST":            "localhost",
		"HTTP_ACCEPT":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"HTTP_ACCEPT_LANGUAGE": "en-US,en;q=0.8",
		"HTTP_ACCEPT_CHARSET":  "ISO-8859-1,utf-8;q=0.7,*;q=0.3",
		"HTTP_USER_AGENT":      "Rio",
		"REMOTE_ADDR":          "127.0.0.1",
		"REQUEST_TIME":         strconv.FormatInt(time.Now().Unix(), 10),
	}
	maps.Copy(values, overrides)
	return &Environment{values: values, body: http.NoBody, ctx: context.Background()}
}

// ProcessEnvironment returns the mock environment overlaid with the
// process environment. Header keys from the process are skipped so a
// variable such as HTTP_PROXY never turns into a request header.
func ProcessEnvironment() *Environment {
	overrides := map[string]string{}
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if _, isHeader := keyToHeader(key); isHeader {
			continue
		}
		overrides[key] = value
	}
	return MockEnvironment(overrides)
}

// WithBody returns a copy of e whose request body is body.
func (e *Environment) WithBody(body io.Reader) *Environment {
	return &Environment{values: e.values, multi: e.multi, body: body, ctx: e.ctx}
}

// Get returns the value for key, or "" when absent.
func (e *Environment) Get(key string) string { return e.values[key] }

// Lookup returns the value for key and whether it was present.
func (e *Environment) Lookup(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// All returns a copy of every entry.
func (e *Environment) All() map[string]string { return maps.Clone(e.values) }

// Body returns the captured request body.
func (e *Environment) Body() io.Reader { return e.body }

// Context returns the context of the captured request.
func (e *Environment) Context() context.Context { return e.ctx }

// Headers rebuilds the HTTP headers held in the snapshot. A header that
// arrived several times is rebuilt with each of its values.
func (e *Environment) Headers() http.Header {
	h := http.Header{}
	for key, v := range e.values {
		name, ok := keyToHeader(key)
		if !ok {
			continue
		}
		vals, ok := e.multi[key]
		if !ok {
			vals = []string{v}
		}
		for _, val := range vals {
			h.Add(name, val)
		}
	}
	return h
}

// ── helpers ──────────────────────────────────────────────────────────────────

func headerToKey(name string) string {
	key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	if key == "CONTENT_TYPE" || key == "CONTENT_LENGTH" {
		return key
	}
	return "HTTP_" + key
}

// headerSeparator is the list separator used when a header's values are
// folded into one entry. Cookie pairs are split on ";".
func headerSeparator(key string) string {
	if key == "HTTP_COOKIE" {
		return "; "
	}
	return ", "
}

func keyToHeader(key string) (string, bool) {
	switch {
	case key == "CONTENT_TYPE" || key == "CONTENT_LENGTH":
	case strings.HasPrefix(key, "HTTP_"):
		key = strings.TrimPrefix(key, "HTTP_")
	default:
		return "", false
	}
	return http.CanonicalHeaderKey(strings.ReplaceAll(strings.ToLower(key), "_", "-")), true
}

func splitHostPort(hostport string) (string, string) {
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		return hostport, ""
	}
	return host, port
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"strings"
)

const maxMemory = 32 << 20 // 32 MB

// Request wraps *http.Request with input helpers and request attributes.
type Request struct {
	raw        *http.Request
	attributes map[string]any
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r, attributes: map[string]any{}}
}

// NewRequestFromEnvironment rebuilds a request from an environment snapshot.
func NewRequestFromEnvironment(env *Environment) (*Request, error) {
	scheme := "http"
	if env.Get("HTTPS") == "on" {
		scheme = "https"
	}
	host := env.Get("HTTP_HOST")
	if host == "" {
		host = env.Get("SERVER_NAME")
		if port := env.Get("SERVER_PORT"); port != "" && port != "80" && port != "443" {
			host += ":" + port
		}
	}
	uri := env.Get("REQUEST_URI")
	if uri == "" {
		uri = "/"
	}

	method := env.Get("REQUEST_METHOD")
	if method == "" {
		method = http.MethodGet
	}

	raw, err := http.NewRequestWithContext(env.Context(), method, scheme+"://"+host+uri, env.Body())
	if err != nil {
		return nil, fmt.Errorf("request from environment: %w", err)
	}
	raw.RequestURI = uri
	raw.RemoteAddr = env.Get("REMOTE_ADDR")
	raw.Header = env.Headers()
	if proto := env.Get("SERVER_PROTOCOL"); proto != "" {
		if major, minor, ok := http.ParseHTTPVersion(proto); ok {
			raw.Proto, raw.ProtoMajor, raw.ProtoMinor = proto, major, minor
		}
	}
	return NewRequest(raw), nil
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Attributes ───────────────────────────────────────────────────────────────

// WithAttribute returns a copy of the request carrying key=value.
// The receiver is left unchanged.
func (req *Request) WithAttribute(key string, value any) *Request {
	attrs := maps.Clone(req.attributes)
	if attrs == nil {
		attrs = map[string]any{}
	}
	attrs[key] = value
	return &Request{raw: req.raw, attributes: attrs}
}

// Attribute returns an attribute, or nil.
func (req *Request) Attribute(key string) any { return req.attributes[key] }

// Attributes returns a copy of all attributes.
func (req *Request) Attributes() map[string]any { return maps.Clone(req.attributes) }

// RouteParam returns a route argument set by the invocation strategy.
func (req *Request) RouteParam(key string) string {
	v, _ := req.attributes[key].(string)
	return v
}

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v.
// Supports JSON and application/x-www-form-urlencoded / multipart.
func (req *Request) Bind(v any) error {
	ct := req.ContentType()

	switch {
	case strings.Contains(ct, "application/json"):
		return req.bindJSON(v)
	case strings.Contains(ct, "multipart/form-data"):
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return err
		}
		return bindForm(req.raw.MultipartForm.Value, v)
	default:
		if err := req.raw.ParseForm(); err != nil {
			return err
		}
		return bindForm(map[string][]string(req.raw.PostForm), v)
	}
}

func (req *Request) bindJSON(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, v)
}

// bindForm maps form values onto a struct through its json tags.
func bindForm(values map[string][]string, v any) error {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Input returns a single input value (query string OR post body).
func (req *Request) Input(key string, fallback ...string) string {
	_ = req.raw.ParseForm()
	v := req.raw.FormValue(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// All returns all input as a flat map (query + post).
func (req *Request) All() map[string]string {
	_ = req.raw.ParseForm()
	out := make(map[string]string)
	for k, v := range req.raw.Form {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// Has returns true if the key is present and non-empty.
func (req *Request) Has(key string) bool {
	return req.Input(key) != ""
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// BearerToken extracts the token from Authorization: Bearer <token>.
func (req *Request) BearerToken() string {
	auth := req.raw.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// IP returns the client address.
func (req *Request) IP() string {
	return req.raw.RemoteAddr
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ProtocolVersion returns "1.1", "1.0" or "2".
func (req *Request) ProtocolVersion() string {
	if req.raw.ProtoMajor >= 2 {
		return "2"
	}
	return fmt.Sprintf("%d.%d", req.raw.ProtoMajor, req.raw.ProtoMinor)
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}

// ── File uploads ─────────────────────────────────────────────────────────────

// File returns an uploaded file by field name.
func (req *Request) File(key string) (*multipart.FileHeader, error) {
	if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
		return nil, err
	}
	_, fh, err := req.raw.FormFile(key)
	return fh, err
}

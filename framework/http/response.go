package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/km-arc/go-rio/framework/config"
	"github.com/km-arc/go-rio/framework/http/validation"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response is a buffered outgoing response. Handlers fill it in and the
// front controller writes it out with Emit once the request is done.
type Response struct {
	status   int
	header   http.Header
	body     bytes.Buffer
	protocol string
}

// NewResponse creates a response with the given status and headers.
// A nil header is allowed.
func NewResponse(status int, header http.Header) *Response {
	if header == nil {
		header = http.Header{}
	}
	return &Response{status: status, header: header, protocol: "1.1"}
}

// StatusCode returns the response status.
func (res *Response) StatusCode() int { return res.status }

// SetStatus sets the response status.
func (res *Response) SetStatus(status int) *Response {
	res.status = status
	return res
}

// Header returns the response headers for in-place changes.
func (res *Response) Header() http.Header { return res.header }

// SetHeader replaces a header value.
func (res *Response) SetHeader(key, value string) *Response {
	res.header.Set(key, value)
	return res
}

// ProtocolVersion returns the HTTP version the response is meant for.
func (res *Response) ProtocolVersion() string { return res.protocol }

// SetProtocolVersion sets the HTTP version, e.g. "1.1".
func (res *Response) SetProtocolVersion(v string) *Response {
	res.protocol = v
	return res
}

// Write appends to the body. Response satisfies io.Writer.
func (res *Response) Write(p []byte) (int, error) { return res.body.Write(p) }

// WriteString appends s to the body.
func (res *Response) WriteString(s string) (int, error) { return res.body.WriteString(s) }

// Body returns the buffered body.
func (res *Response) Body() []byte { return res.body.Bytes() }

// ResetBody discards the buffered body.
func (res *Response) ResetBody() *Response {
	res.body.Reset()
	return res
}

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON replaces the body with data encoded as JSON.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) error {
	res.body.Reset()
	res.header.Set("Content-Type", "application/json")
	res.status = status
	return json.NewEncoder(&res.body).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) error {
	return res.JSON(http.StatusOK, envelope{"data": v})
}

// Created sends 201 JSON: {"data": v}
func (res *Response) Created(v any) error {
	return res.JSON(http.StatusCreated, envelope{"data": v})
}

// NoContent sends 204 with no body.
func (res *Response) NoContent() {
	res.body.Reset()
	res.status = http.StatusNoContent
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusNotFound, "Resource not found")
func (res *Response) Error(status int, message string) error {
	return res.JSON(status, envelope{"message": message})
}

// Unauthorized sends 401.
func (res *Response) Unauthorized(message ...string) error {
	return res.Error(http.StatusUnauthorized, first(message, "Unauthenticated."))
}

// Forbidden sends 403.
func (res *Response) Forbidden(message ...string) error {
	return res.Error(http.StatusForbidden, first(message, "This action is unauthorized."))
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) error {
	return res.Error(http.StatusNotFound, first(message, "Not found."))
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) error {
	return res.Error(http.StatusInternalServerError, first(message, "Server Error."))
}

// ValidationError sends 422 with the validator's error bag.
//
//	res.ValidationError(validator.Errors())
func (res *Response) ValidationError(errors *validation.Errors) error {
	return res.JSON(http.StatusUnprocessableEntity, errors)
}

// ── Redirects ────────────────────────────────────────────────────────────────

// Redirect points the client at url with the given status.
//
//	res.Redirect(http.StatusFound, "/dashboard")
func (res *Response) Redirect(status int, url string) *Response {
	res.header.Set("Location", url)
	res.status = status
	return res
}

// RedirectTo performs a 302 redirect.
func (res *Response) RedirectTo(url string) *Response {
	return res.Redirect(http.StatusFound, url)
}

// RedirectBack redirects to the Referer header (or fallback URL).
func (res *Response) RedirectBack(req *Request, fallback string) *Response {
	ref := req.Header("Referer")
	if ref == "" {
		ref = fallback
	}
	return res.Redirect(http.StatusFound, ref)
}

// ── Cookies ──────────────────────────────────────────────────────────────────

// SetCookie adds a Set-Cookie header using the configured cookie defaults.
// A zero lifetime produces a session cookie.
func (res *Response) SetCookie(name, value string, defaults config.Cookie) *Response {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     defaults.Path,
		Domain:   defaults.Domain,
		Secure:   defaults.Secure,
		HttpOnly: defaults.HTTPOnly,
	}
	if defaults.Lifetime > 0 {
		cookie.Expires = time.Now().Add(defaults.Lifetime).UTC()
		cookie.MaxAge = int(defaults.Lifetime / time.Second)
	}
	res.header.Add("Set-Cookie", cookie.String())
	return res
}

// ── Output ───────────────────────────────────────────────────────────────────

// Emit writes the response to w, sending the body in chunks of chunkSize
// bytes. Responses that cannot carry a body (1xx, 204, 304) are sent
// without one.
func (res *Response) Emit(w http.ResponseWriter, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = 4096
	}
	for k, vals := range res.header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	if res.protocol == "1.0" {
		w.Header().Set("Connection", "close")
	}

	empty := res.isEmpty()
	if empty {
		w.Header().Del("Content-Type")
		w.Header().Del("Content-Length")
	} else if w.Header().Get("Content-Length") == "" {
		w.Header().Set("Content-Length", fmt.Sprint(res.body.Len()))
	}
	w.WriteHeader(res.status)
	if empty {
		return nil
	}

	body := res.body.Bytes()
	for len(body) > 0 {
		n := min(chunkSize, len(body))
		if _, err := w.Write(body[:n]); err != nil {
			return err
		}
		body = body[n:]
	}
	return nil
}

func (res *Response) isEmpty() bool {
	return res.status < 200 || res.status == http.StatusNoContent || res.status == http.StatusNotModified
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}

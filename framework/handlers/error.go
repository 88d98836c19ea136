package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	gohttp "github.com/km-arc/go-rio/framework/http"
)

// ErrorHandler renders the response for an error returned by an action
// or middleware. The container serves one under "errorHandler".
type ErrorHandler interface {
	HandleError(req *gohttp.Request, res *gohttp.Response, err error) *gohttp.Response
}

// NotFoundHandler renders the response when no route matches.
type NotFoundHandler interface {
	HandleNotFound(req *gohttp.Request, res *gohttp.Response) *gohttp.Response
}

// NotAllowedHandler renders the response when the path matches but the
// method does not. allowed lists the methods that would match.
type NotAllowedHandler interface {
	HandleNotAllowed(req *gohttp.Request, res *gohttp.Response, allowed []string) *gohttp.Response
}

// ── Error ────────────────────────────────────────────────────────────────────

// Error is the default ErrorHandler. It answers 500 as HTML or JSON
// depending on the Accept header and logs the error.
type Error struct {
	DisplayDetails bool
	Logger         *zap.Logger
}

type errorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
}

func (h *Error) HandleError(req *gohttp.Request, res *gohttp.Response, err error) *gohttp.Response {
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Error("application error",
		zap.String("method", req.Method()),
		zap.String("path", req.Path()),
		zap.Error(err),
	)

	var details []errorDetail
	if h.DisplayDetails {
		trace := fmt.Sprintf("%+v", err)
		if trace == err.Error() {
			trace = ""
		}
		details = append(details, errorDetail{Type: fmt.Sprintf("%T", err), Message: err.Error(), Trace: trace})
	}

	res.ResetBody().SetStatus(http.StatusInternalServerError)
	if wantsJSON(req) {
		body := map[string]any{"message": "Application Error"}
		if details != nil {
			body["error"] = details
		}
		return writeJSON(res, body)
	}
	return writeHTML(res, errorPage, map[string]any{
		"Title":   "Application Error",
		"Summary": "A website error has occurred. Sorry for the temporary inconvenience.",
		"Details": details,
	})
}

// ── NotFound ─────────────────────────────────────────────────────────────────

// NotFound is the default NotFoundHandler.
type NotFound struct{}

func (NotFound) HandleNotFound(req *gohttp.Request, res *gohttp.Response) *gohttp.Response {
	res.ResetBody().SetStatus(http.StatusNotFound)
	if wantsJSON(req) {
		return writeJSON(res, map[string]any{"message": "Not found"})
	}
	return writeHTML(res, errorPage, map[string]any{
		"Title":   "Page Not Found",
		"Summary": "The page you are looking for could not be found. Check the address bar to ensure your URL is spelled correctly.",
	})
}

// ── NotAllowed ───────────────────────────────────────────────────────────────

// NotAllowed is the default NotAllowedHandler. OPTIONS requests get a 200
// listing the allowed methods; everything else gets a 405. Both carry an
// Allow header.
type NotAllowed struct{}

func (NotAllowed) HandleNotAllowed(req *gohttp.Request, res *gohttp.Response, allowed []string) *gohttp.Response {
	methods := strings.Join(allowed, ", ")
	res.ResetBody().SetHeader("Allow", methods)

	if req.Method() == http.MethodOptions {
		res.SetStatus(http.StatusOK).SetHeader("Content-Type", "text/plain; charset=UTF-8")
		_, _ = res.WriteString("Allowed methods: " + methods)
		return res
	}

	res.SetStatus(http.StatusMethodNotAllowed)
	message := "Method not allowed. Must be one of: " + methods
	if wantsJSON(req) {
		return writeJSON(res, map[string]any{"message": message})
	}
	return writeHTML(res, errorPage, map[string]any{"Title": "Method not allowed", "Summary": message})
}

// ── helpers ──────────────────────────────────────────────────────────────────

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>body{margin:0;padding:30px;font:12px/1.5 Helvetica,Arial,Verdana,sans-serif}h1{margin:0;font-size:48px;font-weight:normal;line-height:48px}strong{display:inline-block;width:65px}</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Summary}}</p>
{{- range .Details}}
<h2>Details</h2>
<div><strong>Type:</strong> {{.Type}}</div>
<div><strong>Message:</strong> {{.Message}}</div>
{{- if .Trace}}
<h2>Trace</h2>
<pre>{{.Trace}}</pre>
{{- end}}
{{- end}}
</body>
</html>
`))

// wantsJSON reports whether JSON is the first supported type in Accept.
func wantsJSON(req *gohttp.Request) bool {
	for _, part := range strings.Split(req.Header("Accept"), ",") {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		switch strings.TrimSpace(mediaType) {
		case "application/json":
			return true
		case "text/html":
			return false
		}
	}
	return false
}

func writeJSON(res *gohttp.Response, body any) *gohttp.Response {
	b, _ := json.MarshalIndent(body, "", "  ")
	res.SetHeader("Content-Type", "application/json")
	_, _ = res.Write(b)
	return res
}

func writeHTML(res *gohttp.Response, tmpl *template.Template, data any) *gohttp.Response {
	res.SetHeader("Content-Type", "text/html; charset=UTF-8")
	_ = tmpl.Execute(res, data)
	return res
}

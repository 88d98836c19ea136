// Package http holds the request/response types the front controller wires
// through the service container.
//
// # Environment
//
// Environment is a read-only CGI-style snapshot of the incoming request.
//
//	env := gohttp.NewEnvironment(r)
//	env.Get("REQUEST_METHOD") // "GET"
//	env.Get("HTTP_ACCEPT")    // Accept header
//
//	// In tests
//	env := gohttp.MockEnvironment(map[string]string{"REQUEST_URI": "/random/10"})
//
// # Request
//
// Request wraps *http.Request and carries immutable attributes.
//
//	req, err := gohttp.NewRequestFromEnvironment(env)
//
//	name  := req.Input("name", "default")
//	page  := req.Query("page", "1")
//	limit := req.RouteParam("limit")
//	token := req.BearerToken()
//
//	req = req.WithAttribute("user", u) // returns a copy
//
// # Response
//
// Response is buffered. Handlers set status, headers and body, and the
// front controller writes it out once with Emit.
//
//	res := gohttp.NewResponse(http.StatusOK, nil)
//	res.WriteString("Goodbye!")
//	res.JSON(http.StatusCreated, map[string]any{"id": 1})
//	res.SetCookie("session", id, cookieDefaults)
//	res.Emit(w, 4096)
//
// # Views
//
//	engine := gohttp.NewViewEngine(resources.Views, ".html")
//	engine.Render(res, "micro/random", map[string]any{"number": 7})
package http

// Package handlers holds the default route invocation strategies, the
// error, not-found and not-allowed handlers, and the callable resolver the
// front controller pulls from the container.
package handlers

import (
	gohttp "github.com/km-arc/go-rio/framework/http"
)

// Action handles a matched route. args holds the route placeholders.
//
//	func(req *gohttp.Request, res *gohttp.Response, args map[string]string) (*gohttp.Response, error) {
//	    _, err := res.WriteString("Hello " + args["name"])
//	    return res, err
//	}
type Action func(req *gohttp.Request, res *gohttp.Response, args map[string]string) (*gohttp.Response, error)

// InvocationStrategy decides how a resolved Action receives the route
// arguments. The container serves one under "foundHandler".
type InvocationStrategy interface {
	Invoke(action Action, req *gohttp.Request, res *gohttp.Response, args map[string]string) (*gohttp.Response, error)
}

// RequestResponse passes the arguments in args and also stores each one
// as a request attribute, so req.RouteParam works.
type RequestResponse struct{}

func (RequestResponse) Invoke(action Action, req *gohttp.Request, res *gohttp.Response, args map[string]string) (*gohttp.Response, error) {
	for k, v := range args {
		req = req.WithAttribute(k, v)
	}
	return action(req, res, args)
}

// RequestResponseArgs passes the arguments in args only.
type RequestResponseArgs struct{}

func (RequestResponseArgs) Invoke(action Action, req *gohttp.Request, res *gohttp.Response, args map[string]string) (*gohttp.Response, error) {
	return action(req, res, args)
}

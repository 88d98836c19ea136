package http

// Handler produces the response for a request.
type Handler func(req *Request, res *Response) (*Response, error)

// Middleware wraps a Handler. It may change the request or response on
// the way in, call next, and change the result on the way out.
//
//	func Auth(req *gohttp.Request, res *gohttp.Response, next gohttp.Handler) (*gohttp.Response, error) {
//	    if req.BearerToken() == "" {
//	        return res, res.Unauthorized()
//	    }
//	    return next(req, res)
//	}
type Middleware func(req *Request, res *Response, next Handler) (*Response, error)

// Chain wraps h in middleware. The last middleware in the list is the
// outermost, so it runs first.
func Chain(h Handler, middleware ...Middleware) Handler {
	for _, mw := range middleware {
		h = wrap(mw, h)
	}
	return h
}

func wrap(mw Middleware, next Handler) Handler {
	return func(req *Request, res *Response) (*Response, error) {
		return mw(req, res, next)
	}
}

package routing

import (
	"slices"

	gohttp "github.com/km-arc/go-rio/framework/http"
)

// Route is one entry of the route table.
type Route struct {
	table      *table
	group      *group
	methods    []string
	pattern    string
	name       string
	callable   any
	middleware []gohttp.Middleware
}

// Methods returns the HTTP methods the route answers to.
func (rt *Route) Methods() []string { return slices.Clone(rt.methods) }

// Pattern returns the full pattern, group prefixes included.
func (rt *Route) Pattern() string { return rt.pattern }

// Name returns the route name, or "".
func (rt *Route) Name() string { return rt.name }

// Callable returns what was registered to handle the route.
func (rt *Route) Callable() any { return rt.callable }

// SetName names the route for PathFor. A later route with the same name
// replaces the earlier one.
func (rt *Route) SetName(name string) *Route {
	if rt.table.named[rt.name] == rt {
		delete(rt.table.named, rt.name)
	}
	rt.name = name
	rt.table.named[name] = rt
	return rt
}

// Add appends route middleware.
func (rt *Route) Add(mw ...gohttp.Middleware) *Route {
	rt.middleware = append(rt.middleware, mw...)
	return rt
}

// Middleware returns the middleware for the route in Chain order: the
// route's own first, then each enclosing scope out to the root. The root
// scope ends up outermost.
func (rt *Route) Middleware() []gohttp.Middleware {
	out := slices.Clone(rt.middleware)
	for g := rt.group; g != nil; g = g.parent {
		out = append(out, g.middleware...)
	}
	return out
}

// Package routing is the route table of the front controller.
package routing

import (
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	gohttp "github.com/km-arc/go-rio/framework/http"
)

// Router is the route table. Patterns use chi syntax ("/users/{id}",
// "/files/*", "/n/{n:[0-9]+}") and matching is delegated to a chi.Mux.
// Routes are only matched, never served, by the mux: the front controller
// calls Dispatch and invokes the route itself.
type Router struct {
	*table
	prefix string
	group  *group
}

type table struct {
	mux     *chi.Mux
	routes  []*Route
	byKey   map[string]*Route // "GET /users/{id}"
	named   map[string]*Route
	methods []string
}

// group is one Group/Prefix scope. Scopes are nested through parent.
type group struct {
	parent     *group
	middleware []gohttp.Middleware
}

// New creates an empty Router.
func New() *Router {
	return &Router{
		table: &table{
			mux:   chi.NewMux(),
			byKey: map[string]*Route{},
			named: map[string]*Route{},
		},
		group: &group{},
	}
}

// ── Registration ─────────────────────────────────────────────────────────────

// Map registers callable for pattern under every method in methods.
// callable is whatever the front controller's resolver understands:
// a handler function or a "service:Method" identifier.
func (r *Router) Map(methods []string, pattern string, callable any) *Route {
	route := &Route{
		table:    r.table,
		group:    r.group,
		methods:  normalize(methods),
		pattern:  r.prefix + pattern,
		callable: callable,
	}
	if route.pattern == "" {
		route.pattern = "/"
	}
	for _, m := range route.methods {
		if !slices.Contains(r.methods, m) {
			if !isStandard(m) {
				chi.RegisterMethod(m)
			}
			r.methods = append(r.methods, m)
		}
		r.mux.Method(m, route.pattern, matchOnly)
		r.byKey[m+" "+route.pattern] = route
	}
	r.routes = append(r.routes, route)
	return route
}

func (r *Router) Get(pattern string, callable any) *Route {
	return r.Map([]string{http.MethodGet}, pattern, callable)
}

func (r *Router) Post(pattern string, callable any) *Route {
	return r.Map([]string{http.MethodPost}, pattern, callable)
}

func (r *Router) Put(pattern string, callable any) *Route {
	return r.Map([]string{http.MethodPut}, pattern, callable)
}

func (r *Router) Patch(pattern string, callable any) *Route {
	return r.Map([]string{http.MethodPatch}, pattern, callable)
}

func (r *Router) Delete(pattern string, callable any) *Route {
	return r.Map([]string{http.MethodDelete}, pattern, callable)
}

func (r *Router) Options(pattern string, callable any) *Route {
	return r.Map([]string{http.MethodOptions}, pattern, callable)
}

// Any registers a route for all common HTTP methods.
func (r *Router) Any(pattern string, callable any) *Route {
	return r.Map([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}, pattern, callable)
}

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group opens a middleware scope without changing the URL prefix.
func (r *Router) Group(fn func(r *Router)) {
	fn(&Router{table: r.table, prefix: r.prefix, group: &group{parent: r.group}})
}

// Prefix opens a scope whose routes all start with pattern.
//
//	router.Prefix("/api/v1", func(api *routing.Router) {
//	    api.Get("/users", "users:Index")
//	})
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	fn(&Router{table: r.table, prefix: r.prefix + pattern, group: &group{parent: r.group}})
}

// Middleware adds middleware to the current scope. It applies to every
// route of the scope, including routes registered before the call.
func (r *Router) Middleware(mw ...gohttp.Middleware) {
	r.group.middleware = append(r.group.middleware, mw...)
}

// ── Lookup ───────────────────────────────────────────────────────────────────

// Routes returns every route in registration order.
func (r *Router) Routes() []*Route { return slices.Clone(r.routes) }

// NamedRoute returns the route registered under name.
func (r *Router) NamedRoute(name string) (*Route, bool) {
	route, ok := r.named[name]
	return route, ok
}

var placeholder = regexp.MustCompile(`\{([^}:]+)(?::[^}]*)?\}`)

// PathFor builds the path of a named route.
//
//	router.PathFor("random", map[string]string{"limit": "10"}) // "/random/10"
func (r *Router) PathFor(name string, params map[string]string) (string, error) {
	route, ok := r.named[name]
	if !ok {
		return "", errors.Errorf("named route %q does not exist", name)
	}
	var missing []string
	path := placeholder.ReplaceAllStringFunc(route.pattern, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		v, ok := params[key]
		if !ok {
			missing = append(missing, key)
		}
		return v
	})
	if len(missing) > 0 {
		return "", errors.Errorf("missing data for route %q: %s", name, strings.Join(missing, ", "))
	}
	return path, nil
}

// ── Dispatch ─────────────────────────────────────────────────────────────────

// Status is the outcome of Dispatch.
type Status int

const (
	NotFound Status = iota
	Found
	MethodNotAllowed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case MethodNotAllowed:
		return "method not allowed"
	default:
		return "not found"
	}
}

// Match is the result of dispatching a method and path.
type Match struct {
	Status  Status
	Route   *Route            // set when Found
	Params  map[string]string // set when Found
	Allowed []string          // set when MethodNotAllowed
}

// Dispatch matches method and path against the table. A HEAD request
// with no HEAD route of its own falls back to the GET route.
func (r *Router) Dispatch(method, path string) Match {
	method = strings.ToUpper(method)

	if m, ok := r.lookup(method, path); ok {
		return m
	}
	if method == http.MethodHead {
		if m, ok := r.lookup(http.MethodGet, path); ok {
			return m
		}
	}

	var allowed []string
	for _, m := range r.methods {
		if m != method && r.mux.Match(chi.NewRouteContext(), m, path) {
			allowed = append(allowed, m)
		}
	}
	if len(allowed) > 0 {
		return Match{Status: MethodNotAllowed, Allowed: allowed}
	}
	return Match{Status: NotFound}
}

func (r *Router) lookup(method, path string) (Match, bool) {
	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, method, path) || len(rctx.RoutePatterns) == 0 {
		return Match{}, false
	}
	route, ok := r.byKey[method+" "+rctx.RoutePatterns[len(rctx.RoutePatterns)-1]]
	if !ok {
		return Match{}, false
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return Match{Status: Found, Route: route, Params: params}, true
}

// ── helpers ──────────────────────────────────────────────────────────────────

// matchOnly is mounted on the mux for every route; the mux is never served.
var matchOnly = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
})

func normalize(methods []string) []string {
	return lo.Uniq(lo.Compact(lo.Map(methods, func(m string, _ int) string {
		return strings.ToUpper(strings.TrimSpace(m))
	})))
}

func isStandard(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

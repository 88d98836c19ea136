// Package app is the Rio front controller: the default services of a request
// container and the Application that builds one container per request.
package app

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/km-arc/go-rio/framework/config"
	"github.com/km-arc/go-rio/framework/container"
	gohttp "github.com/km-arc/go-rio/framework/http"
	"github.com/km-arc/go-rio/framework/providers"
	"github.com/km-arc/go-rio/framework/routing"
)

// Request attributes set by the front controller.
const (
	RouteAttribute     = "route"     // *routing.Route, set when a route matched
	RouteInfoAttribute = "routeInfo" // routing.Match
)

// Application is the front controller. It owns the route table, the app
// middleware and the service providers, and builds a fresh container for
// every request it serves.
type Application struct {
	cfg        *config.Config
	settings   config.Settings
	router     *routing.Router
	middleware []gohttp.Middleware
	providers  []container.ServiceProvider
	logger     *zap.Logger
}

// Option configures an Application.
type Option func(*Application)

// WithConfig sets the process configuration. Without it New calls config.Load.
func WithConfig(cfg *config.Config) Option {
	return func(a *Application) { a.cfg = cfg }
}

// WithSettings sets the user settings merged over the defaults.
func WithSettings(s config.Settings) Option {
	return func(a *Application) { a.settings = s }
}

// WithProviders adds service providers applied to every request container.
func WithProviders(p ...container.ServiceProvider) Option {
	return func(a *Application) { a.providers = append(a.providers, p...) }
}

// WithLogger sets the logger. Without it New builds one with
// providers.NewLogger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Application) { a.logger = l }
}

// New creates an Application.
//
//	application := app.New(app.WithSettings(config.Settings{"displayErrorDetails": true}))
//	application.Get("/", func(req *gohttp.Request, res *gohttp.Response, _ map[string]string) (*gohttp.Response, error) {
//	    _, err := res.WriteString("Goodbye!")
//	    return res, err
//	})
//	application.Run(ctx)
func New(opts ...Option) *Application {
	a := &Application{router: routing.New()}
	for _, opt := range opts {
		opt(a)
	}
	if a.cfg == nil {
		a.cfg = config.Load()
	}
	if a.settings == nil {
		a.settings = config.Settings{}
	}
	if a.logger == nil {
		logger, err := providers.NewLogger(a.cfg)
		if err != nil {
			logger = zap.NewNop()
		}
		a.logger = logger
	}
	return a
}

func (a *Application) Config() *config.Config { return a.cfg }
func (a *Application) Settings() config.Settings { return a.settings }
func (a *Application) Logger() *zap.Logger { return a.logger }
func (a *Application) Router() *routing.Router { return a.router }
func (a *Application) IsDebug() bool { return a.cfg.App.Debug }
func (a *Application) IsProduction() bool { return a.cfg.App.Env == "production" }

// ── Routes ───────────────────────────────────────────────────────────────────

// Map registers callable for pattern under methods. callable is a
// handlers.Action or a "service" / "service:Method" identifier.
func (a *Application) Map(methods []string, pattern string, callable any) *routing.Route {
	return a.router.Map(methods, pattern, callable)
}

func (a *Application) Get(pattern string, callable any) *routing.Route {
	return a.router.Get(pattern, callable)
}

func (a *Application) Post(pattern string, callable any) *routing.Route {
	return a.router.Post(pattern, callable)
}

func (a *Application) Put(pattern string, callable any) *routing.Route {
	return a.router.Put(pattern, callable)
}

func (a *Application) Patch(pattern string, callable any) *routing.Route {
	return a.router.Patch(pattern, callable)
}

func (a *Application) Delete(pattern string, callable any) *routing.Route {
	return a.router.Delete(pattern, callable)
}

func (a *Application) Options(pattern string, callable any) *routing.Route {
	return a.router.Options(pattern, callable)
}

func (a *Application) Any(pattern string, callable any) *routing.Route {
	return a.router.Any(pattern, callable)
}

// Prefix groups routes under a URL prefix.
func (a *Application) Prefix(pattern string, fn func(r *routing.Router)) {
	a.router.Prefix(pattern, fn)
}

// Group opens a middleware scope.
func (a *Application) Group(fn func(r *routing.Router)) {
	a.router.Group(fn)
}

// Use adds app middleware. It runs for every request, matched or not.
// The last middleware added runs first.
func (a *Application) Use(mw ...gohttp.Middleware) {
	a.middleware = append(a.middleware, mw...)
}

// ── Request lifecycle ────────────────────────────────────────────────────────

// Container builds the container for one request: the default services,
// the live environment, the shared router, config and logger, then the
// registered providers.
func (a *Application) Container(r *http.Request) (*container.Container, error) {
	c, err := NewContainer(a.settings)
	if err != nil {
		return nil, err
	}
	c.AfterResolving(func(id string, _ any) {
		a.logger.Debug("service resolved", zap.String("container", c.ID()), zap.String("service", id))
	})

	err = multierr.Combine(
		c.Instance(EnvironmentID, gohttp.NewEnvironment(r)),
		c.Instance(RouterID, a.router),
		c.Instance(providers.ConfigID, a.cfg),
		c.Instance(providers.LoggerID, a.logger),
	)
	if err != nil {
		return nil, err
	}
	for _, p := range a.providers {
		if err := c.RegisterProvider(p, nil); err != nil {
			return nil, errors.Wrapf(err, "register provider %T", p)
		}
	}
	return c, nil
}

// ServeHTTP handles one request with a fresh container and writes the
// response in responseChunkSize chunks.
func (a *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := a.Container(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.logger.Debug("request container",
		zap.String("container", c.ID()),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := a.Process(c)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	opts, err := options(c)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := res.Emit(w, opts.ResponseChunkSize); err != nil {
		a.logger.Warn("emit response", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

// Process runs the request held by c through the app middleware and the
// router and returns the response to send. Errors and panics from
// middleware or actions are rendered by the "errorHandler" service; an
// error is only returned when a default service itself cannot be built.
func (a *Application) Process(c *container.Container) (*gohttp.Response, error) {
	opts, err := options(c)
	if err != nil {
		return nil, err
	}
	req, err := Request(c)
	if err != nil {
		return nil, err
	}
	res, err := Response(c)
	if err != nil {
		return nil, err
	}
	router, err := Router(c)
	if err != nil {
		return nil, err
	}

	if opts.DetermineRouteBeforeAppMiddleware {
		req = withMatch(req, router.Dispatch(req.Method(), req.Path()))
	}

	out, err := safeCall(gohttp.Chain(a.dispatch(c, router), a.middleware...), req, res)
	if err != nil {
		errorHandler, herr := ErrorHandler(c)
		if herr != nil {
			return nil, multierr.Append(err, herr)
		}
		return errorHandler.HandleError(req, res, err), nil
	}
	if out == nil {
		out = res
	}
	return out, nil
}

// dispatch is the innermost app handler: it routes the request and
// invokes the matched action through its route middleware.
func (a *Application) dispatch(c *container.Container, router *routing.Router) gohttp.Handler {
	return func(req *gohttp.Request, res *gohttp.Response) (*gohttp.Response, error) {
		m, ok := req.Attribute(RouteInfoAttribute).(routing.Match)
		if !ok {
			m = router.Dispatch(req.Method(), req.Path())
			req = withMatch(req, m)
		}

		switch m.Status {
		case routing.NotFound:
			h, err := NotFoundHandler(c)
			if err != nil {
				return nil, err
			}
			return h.HandleNotFound(req, res), nil
		case routing.MethodNotAllowed:
			h, err := NotAllowedHandler(c)
			if err != nil {
				return nil, err
			}
			return h.HandleNotAllowed(req, res, m.Allowed), nil
		}

		resolver, err := CallableResolver(c)
		if err != nil {
			return nil, err
		}
		action, err := resolver.Resolve(m.Route.Callable())
		if err != nil {
			return nil, err
		}
		strategy, err := FoundHandler(c)
		if err != nil {
			return nil, err
		}
		invoke := func(req *gohttp.Request, res *gohttp.Response) (*gohttp.Response, error) {
			return strategy.Invoke(action, req, res, m.Params)
		}
		return gohttp.Chain(invoke, m.Route.Middleware()...)(req, res)
	}
}

func withMatch(req *gohttp.Request, m routing.Match) *gohttp.Request {
	req = req.WithAttribute(RouteInfoAttribute, m)
	if m.Status == routing.Found {
		req = req.WithAttribute(RouteAttribute, m.Route)
	}
	return req
}

func safeCall(h gohttp.Handler, req *gohttp.Request, res *gohttp.Response) (out *gohttp.Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			if perr, ok := p.(error); ok {
				err = errors.Wrap(perr, "panic")
				return
			}
			err = errors.Errorf("panic: %v", p)
		}
	}()
	return h(req, res)
}

// fail answers with a bare 500 when no response could be produced.
func (a *Application) fail(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

package app

import (
	"net/http"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/km-arc/go-rio/framework/config"
	"github.com/km-arc/go-rio/framework/container"
	"github.com/km-arc/go-rio/framework/handlers"
	gohttp "github.com/km-arc/go-rio/framework/http"
	"github.com/km-arc/go-rio/framework/providers"
	"github.com/km-arc/go-rio/framework/routing"
)

// Identifiers of the default services.
const (
	SettingsID          = "settings"
	EnvironmentID       = "environment"
	RequestID           = "request"
	ResponseID          = "response"
	RouterID            = "router"
	FoundHandlerID      = "foundHandler"
	ErrorHandlerID      = "errorHandler"
	NotFoundHandlerID   = "notFoundHandler"
	NotAllowedHandlerID = "notAllowedHandler"
	CallableResolverID  = "callableResolver"
)

// NewContainer returns a container seeded with the default services.
// userSettings is merged over config.DefaultSettings when "settings" is
// first resolved; user keys win.
func NewContainer(userSettings config.Settings) (*container.Container, error) {
	c := container.New()
	if err := c.RegisterProvider(DefaultServices{Settings: userSettings}, nil); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultServices registers every default service. Each one can be
// replaced before it is first resolved.
type DefaultServices struct {
	Settings config.Settings
}

func (p DefaultServices) Register(c *container.Container) error {
	user := p.Settings
	return multierr.Combine(
		container.Provide(c, SettingsID, func(*container.Container) (config.Settings, error) {
			return config.Merge(config.DefaultSettings(), user), nil
		}),

		// Replaced with a snapshot of the live request when serving HTTP.
		container.Provide(c, EnvironmentID, func(*container.Container) (*gohttp.Environment, error) {
			return gohttp.ProcessEnvironment(), nil
		}),

		container.Provide(c, RequestID, func(c *container.Container) (*gohttp.Request, error) {
			env, err := Environment(c)
			if err != nil {
				return nil, err
			}
			return gohttp.NewRequestFromEnvironment(env)
		}),

		container.Provide(c, ResponseID, func(c *container.Container) (*gohttp.Response, error) {
			opts, err := options(c)
			if err != nil {
				return nil, err
			}
			res := gohttp.NewResponse(http.StatusOK, http.Header{"Content-Type": {"text/html"}})
			return res.SetProtocolVersion(opts.HTTPVersion), nil
		}),

		container.Provide(c, RouterID, func(*container.Container) (*routing.Router, error) {
			return routing.New(), nil
		}),

		container.Provide(c, FoundHandlerID, func(*container.Container) (handlers.InvocationStrategy, error) {
			return handlers.RequestResponse{}, nil
		}),

		container.Provide(c, ErrorHandlerID, func(c *container.Container) (handlers.ErrorHandler, error) {
			opts, err := options(c)
			if err != nil {
				return nil, err
			}
			logger := zap.NewNop()
			if c.Has(providers.LoggerID) {
				if logger, err = Logger(c); err != nil {
					return nil, err
				}
			}
			return &handlers.Error{DisplayDetails: opts.DisplayErrorDetails, Logger: logger}, nil
		}),

		container.Provide(c, NotFoundHandlerID, func(*container.Container) (handlers.NotFoundHandler, error) {
			return handlers.NotFound{}, nil
		}),

		container.Provide(c, NotAllowedHandlerID, func(*container.Container) (handlers.NotAllowedHandler, error) {
			return handlers.NotAllowed{}, nil
		}),

		container.Provide(c, CallableResolverID, func(c *container.Container) (*handlers.CallableResolver, error) {
			return handlers.NewCallableResolver(c), nil
		}),
	)
}

// ── Typed accessors ──────────────────────────────────────────────────────────

func Settings(c *container.Container) (config.Settings, error) {
	return container.Resolve[config.Settings](c, SettingsID)
}

func Environment(c *container.Container) (*gohttp.Environment, error) {
	return container.Resolve[*gohttp.Environment](c, EnvironmentID)
}

func Request(c *container.Container) (*gohttp.Request, error) {
	return container.Resolve[*gohttp.Request](c, RequestID)
}

func Response(c *container.Container) (*gohttp.Response, error) {
	return container.Resolve[*gohttp.Response](c, ResponseID)
}

func Router(c *container.Container) (*routing.Router, error) {
	return container.Resolve[*routing.Router](c, RouterID)
}

func FoundHandler(c *container.Container) (handlers.InvocationStrategy, error) {
	return container.Resolve[handlers.InvocationStrategy](c, FoundHandlerID)
}

func ErrorHandler(c *container.Container) (handlers.ErrorHandler, error) {
	return container.Resolve[handlers.ErrorHandler](c, ErrorHandlerID)
}

func NotFoundHandler(c *container.Container) (handlers.NotFoundHandler, error) {
	return container.Resolve[handlers.NotFoundHandler](c, NotFoundHandlerID)
}

func NotAllowedHandler(c *container.Container) (handlers.NotAllowedHandler, error) {
	return container.Resolve[handlers.NotAllowedHandler](c, NotAllowedHandlerID)
}

func CallableResolver(c *container.Container) (*handlers.CallableResolver, error) {
	return container.Resolve[*handlers.CallableResolver](c, CallableResolverID)
}

// Logger returns the "logger" service registered by providers.LogServiceProvider.
func Logger(c *container.Container) (*zap.Logger, error) {
	return container.Resolve[*zap.Logger](c, providers.LoggerID)
}

func options(c *container.Container) (config.Options, error) {
	s, err := Settings(c)
	if err != nil {
		return config.Options{}, err
	}
	return s.Options()
}

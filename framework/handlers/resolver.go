package handlers

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/km-arc/go-rio/framework/container"
	gohttp "github.com/km-arc/go-rio/framework/http"
)

// Handler is a service that can serve a route by itself, used when a route
// names a service without a method.
type Handler interface {
	Handle(req *gohttp.Request, res *gohttp.Response, args map[string]string) (*gohttp.Response, error)
}

// CallableResolver turns what a route was registered with into an Action.
// Accepted forms:
//
//	handlers.Action / plain func with the Action signature
//	handlers.Handler
//	"service"          the service is an Action, an Action func or a Handler
//	"service:Method"   Method is looked up on the service
type CallableResolver struct {
	c *container.Container
}

// NewCallableResolver creates a resolver reading services from c.
func NewCallableResolver(c *container.Container) *CallableResolver {
	return &CallableResolver{c: c}
}

// Resolve returns the Action for callable.
func (r *CallableResolver) Resolve(callable any) (Action, error) {
	if id, ok := callable.(string); ok {
		return r.resolveString(id)
	}
	if action, ok := asAction(callable); ok {
		return action, nil
	}
	return nil, errors.Errorf("%T is not resolvable", callable)
}

func (r *CallableResolver) resolveString(id string) (Action, error) {
	service, method, hasMethod := strings.Cut(id, ":")
	instance, err := r.c.Get(service)
	if err != nil {
		return nil, errors.Wrapf(err, "callable %s does not exist", id)
	}
	if !hasMethod {
		if action, ok := asAction(instance); ok {
			return action, nil
		}
		return nil, errors.Errorf("%s is not resolvable", id)
	}

	m := reflect.ValueOf(instance).MethodByName(method)
	if !m.IsValid() {
		return nil, errors.Errorf("%s does not have a method %s", service, method)
	}
	if action, ok := asAction(m.Interface()); ok {
		return action, nil
	}
	return nil, errors.Errorf("%s is not an action: %s", id, m.Type())
}

func asAction(v any) (Action, bool) {
	switch fn := v.(type) {
	case Action:
		return fn, true
	case func(*gohttp.Request, *gohttp.Response, map[string]string) (*gohttp.Response, error):
		return fn, true
	case Handler:
		return fn.Handle, true
	}
	return nil, false
}

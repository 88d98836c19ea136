package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations.
//
//	type MailProvider struct{}
//
//	func (MailProvider) Register(c *container.Container) error {
//	    return c.Register("mailer", func(c *container.Container) (any, error) {
//	        return mail.New(), nil
//	    })
//	}
type ServiceProvider interface {
	Register(c *Container) error
}

// DeferredProvider is a ServiceProvider whose Register only runs when one
// of the identifiers it Provides is first resolved.
type DeferredProvider interface {
	ServiceProvider
	Provides() []string
}

// ProviderFunc adapts a plain function to ServiceProvider.
type ProviderFunc func(c *Container) error

func (f ProviderFunc) Register(c *Container) error { return f(c) }

// ── Registration ──────────────────────────────────────────────────────────────

// RegisterProvider applies provider to the container and then stores each
// entry of values as a parameter, so values can override provider defaults.
func (c *Container) RegisterProvider(provider ServiceProvider, values map[string]any) error {
	if deferred, ok := provider.(DeferredProvider); ok {
		if err := c.registerDeferred(deferred); err != nil {
			return err
		}
	} else if err := provider.Register(c); err != nil {
		return err
	}

	for id, value := range values {
		if err := c.Instance(id, value); err != nil {
			return err
		}
	}
	return nil
}

// registerDeferred binds a placeholder for each provided identifier. The
// first placeholder to run registers the provider for real and builds its
// identifier with the freshly registered factory or instance.
func (c *Container) registerDeferred(provider DeferredProvider) error {
	loaded := false
	for _, id := range provider.Provides() {
		target := id
		var placeholder *definition
		err := c.Register(target, func(c *Container) (any, error) {
			if !loaded {
				loaded = true
				if err := provider.Register(c); err != nil {
					return nil, err
				}
			}
			if instance, ok := c.instances[target]; ok {
				return instance, nil
			}
			def, ok := c.definitions[target]
			if !ok || def == placeholder {
				return nil, fmt.Errorf("container: deferred provider did not register [%s]", target)
			}
			return def.factory(c)
		})
		if err != nil {
			return err
		}
		placeholder = c.definitions[target]
	}
	return nil
}

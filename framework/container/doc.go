// Package container provides the service container used by the Rio front
// controller.
//
// # Overview
//
// A Container maps string identifiers to factories. A factory receives the
// container so it can resolve its own dependencies, and a shared factory is
// run at most once: the value it returns is cached and handed back on every
// later Get. Identifiers are opaque; the container imposes no namespacing.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register factories, parameters and providers
//  3. Resolve services with Get or the generic Resolve
//  4. Drop the container at the end of the request
//
// # Registering
//
//	// Shared: built once, reused
//	c.Register("router", func(c *container.Container) (any, error) {
//	    return routing.New(), nil
//	})
//
//	// Transient: new value every Get
//	c.Bind("clock", func(c *container.Container) (any, error) { return time.Now(), nil })
//
//	// Plain value
//	c.Instance("app.name", "rio")
//
// Redefining a shared service after it has been resolved fails with a
// *FrozenServiceError.
//
// # Resolving
//
//	raw, err := c.Get("router")
//	router, err := container.Resolve[*routing.Router](c, "router")
//
// Get fails with *NotFoundError for unknown identifiers and with
// *CircularDependencyError when a factory ends up asking for an identifier
// that is still being built. Errors returned by factories are passed
// through unchanged.
//
// # Service Providers
//
//	type ViewProvider struct{}
//
//	func (ViewProvider) Provides() []string { return []string{"view"} }
//	func (ViewProvider) Register(c *container.Container) error {
//	    return c.Register("view", func(c *container.Container) (any, error) {
//	        return gohttp.NewViewEngine(resources.Views, ".html"), nil
//	    })
//	}
//
//	c.RegisterProvider(ViewProvider{}, nil)
//
// A provider implementing DeferredProvider only runs Register once one of
// its identifiers is first resolved.
package container

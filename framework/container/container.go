package container

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ── Definition types ──────────────────────────────────────────────────────────

// Factory builds a service value. It receives the container so it can pull
// its own dependencies with Get.
type Factory func(c *Container) (any, error)

// Extender decorates the value built by an existing factory.
type Extender func(instance any, c *Container) (any, error)

// definition holds a registered factory and whether its result is shared.
type definition struct {
	factory Factory
	shared  bool
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is an identifier-keyed registry of lazily built services.
//
// Shared services are built on the first Get and the same value is returned
// for the lifetime of the container. A Container is meant to live for one
// request and is not safe for concurrent use: two goroutines resolving the
// same unresolved identifier may both run its factory.
type Container struct {
	id string

	// identifier → factory
	definitions map[string]*definition

	// identifier → resolved shared value or plain parameter
	instances map[string]any

	// identifiers whose shared service has been built
	frozen map[string]bool

	// identifiers currently being resolved, outermost first
	buildStack []string

	afterResolving []func(id string, instance any)
}

// New creates an empty container.
func New() *Container {
	return &Container{
		id:          uuid.NewString(),
		definitions: make(map[string]*definition),
		instances:   make(map[string]any),
		frozen:      make(map[string]bool),
	}
}

// ID returns the unique identifier of this container instance.
func (c *Container) ID() string { return c.id }

// ── Registration ──────────────────────────────────────────────────────────────

// Register stores a shared factory for id. Registering again before the
// first Get replaces the previous factory.
//
//	c.Register("mailer", func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[config.Settings](c, "settings")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return mail.New(cfg), nil
//	})
func (c *Container) Register(id string, factory Factory) error {
	return c.define(id, factory, true)
}

// Bind stores a factory whose result is never cached: every Get builds a
// new value.
func (c *Container) Bind(id string, factory Factory) error {
	return c.define(id, factory, false)
}

// Instance stores a ready-made value under id.
func (c *Container) Instance(id string, value any) error {
	if err := c.checkWritable(id); err != nil {
		return err
	}
	delete(c.definitions, id)
	c.instances[id] = value
	return nil
}

func (c *Container) define(id string, factory Factory, shared bool) error {
	if err := c.checkWritable(id); err != nil {
		return err
	}
	if factory == nil {
		return fmt.Errorf("container: nil factory for [%s]", id)
	}
	delete(c.instances, id)
	c.definitions[id] = &definition{factory: factory, shared: shared}
	return nil
}

func (c *Container) checkWritable(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if c.frozen[id] {
		return &FrozenServiceError{ID: id}
	}
	return nil
}

// Extend decorates the factory registered for id. The decoration runs when
// the service is built, so id must not have been resolved yet.
//
//	c.Extend("logger", func(instance any, c *container.Container) (any, error) {
//	    return instance.(*zap.Logger).Named("http"), nil
//	})
func (c *Container) Extend(id string, ext Extender) error {
	if c.frozen[id] {
		return &FrozenServiceError{ID: id}
	}
	def, ok := c.definitions[id]
	if !ok {
		if _, isParam := c.instances[id]; isParam {
			return fmt.Errorf("container: [%s] is a parameter, not a service definition", id)
		}
		return &NotFoundError{ID: id}
	}

	inner := def.factory
	c.definitions[id] = &definition{
		shared: def.shared,
		factory: func(c *Container) (any, error) {
			instance, err := inner(c)
			if err != nil {
				return nil, err
			}
			return ext(instance, c)
		},
	}
	return nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get returns the value registered under id, building it on first use.
//
// Errors returned by a factory are passed through unchanged and nothing is
// cached for that identifier.
func (c *Container) Get(id string) (any, error) {
	if instance, ok := c.instances[id]; ok {
		return instance, nil
	}

	def, ok := c.definitions[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	if slices.Contains(c.buildStack, id) {
		chain := append(slices.Clone(c.buildStack), id)
		return nil, &CircularDependencyError{Chain: chain}
	}

	instance, err := c.build(id, def.factory)
	if err != nil {
		return nil, err
	}

	// Deferred providers swap the definition while it is being built.
	if current, ok := c.definitions[id]; ok && current.shared {
		c.instances[id] = instance
		c.frozen[id] = true
	}

	c.fireAfterResolving(id, instance)
	return instance, nil
}

func (c *Container) build(id string, f Factory) (any, error) {
	c.buildStack = append(c.buildStack, id)
	defer func() { c.buildStack = c.buildStack[:len(c.buildStack)-1] }()
	return f(c)
}

// MustGet is like Get but panics on error.
func (c *Container) MustGet(id string) any {
	instance, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return instance
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Has reports whether id has a factory or a value. It never builds anything.
func (c *Container) Has(id string) bool {
	if _, ok := c.definitions[id]; ok {
		return true
	}
	_, ok := c.instances[id]
	return ok
}

// Resolved reports whether id currently holds a built or stored value.
func (c *Container) Resolved(id string) bool {
	_, ok := c.instances[id]
	return ok
}

// Raw returns the factory registered for id, or the stored value if id is
// a parameter. It does not build anything.
func (c *Container) Raw(id string) (any, error) {
	if def, ok := c.definitions[id]; ok {
		return def.factory, nil
	}
	if instance, ok := c.instances[id]; ok {
		return instance, nil
	}
	return nil, &NotFoundError{ID: id}
}

// Forget removes everything registered under id, including a built value.
func (c *Container) Forget(id string) {
	delete(c.definitions, id)
	delete(c.instances, id)
	delete(c.frozen, id)
}

// Keys returns all registered identifiers in sorted order.
func (c *Container) Keys() []string {
	keys := lo.Union(lo.Keys(c.definitions), lo.Keys(c.instances))
	slices.Sort(keys)
	return keys
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired each time a factory produces a
// value. Cached lookups do not fire it.
func (c *Container) AfterResolving(cb func(id string, instance any)) {
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(id string, instance any) {
	for _, cb := range c.afterResolving {
		cb(id, instance)
	}
}

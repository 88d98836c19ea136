package container

import "fmt"

// Provide registers a shared factory with a concrete result type.
//
//	container.Provide(c, "clock", func(c *container.Container) (*Clock, error) {
//	    return NewClock(), nil
//	})
func Provide[T any](c *Container, id string, factory func(c *Container) (T, error)) error {
	return c.Register(id, func(c *Container) (any, error) {
		return factory(c)
	})
}

// Resolve calls Get and type-asserts the result.
//
//	// Instead of: v, _ := c.Get("router"); router := v.(*routing.Router)
//	router, err := container.Resolve[*routing.Router](c, "router")
func Resolve[T any](c *Container, id string) (T, error) {
	var zero T
	instance, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &TypeMismatchError{
			ID:   id,
			Want: fmt.Sprintf("%T", &zero)[1:],
			Got:  fmt.Sprintf("%T", instance),
		}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, id string) T {
	typed, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return typed
}

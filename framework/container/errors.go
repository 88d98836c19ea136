package container

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is matching against the typed errors below.
var (
	ErrNotFound           = errors.New("container: identifier not found")
	ErrCircularDependency = errors.New("container: circular dependency")
	ErrFrozen             = errors.New("container: frozen service")
	ErrTypeMismatch       = errors.New("container: type mismatch")
	ErrEmptyID            = errors.New("container: empty identifier")
)

// NotFoundError is returned by Get when nothing is registered under ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Identifier %q is not defined.", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// CircularDependencyError is returned when a factory, directly or through
// other factories, asks for the identifier it is building.
type CircularDependencyError struct {
	// Chain lists the identifiers being resolved, ending with the repeat.
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return "container: circular dependency detected: " + strings.Join(e.Chain, " -> ")
}

func (e *CircularDependencyError) Is(target error) bool { return target == ErrCircularDependency }

// FrozenServiceError is returned when a shared service is redefined after
// it has been resolved.
type FrozenServiceError struct {
	ID string
}

func (e *FrozenServiceError) Error() string {
	return fmt.Sprintf("Cannot override frozen service %q.", e.ID)
}

func (e *FrozenServiceError) Is(target error) bool { return target == ErrFrozen }

// TypeMismatchError is returned by Resolve when the stored value does not
// have the requested type.
type TypeMismatchError struct {
	ID   string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("container: [%s] resolved to %s, want %s", e.ID, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

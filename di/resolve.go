package di

import (
	"fmt"

	"github.com/kbukum/servicekit/errors"
)

// Resolve resolves an implementation of T with type safety.
//
// Example:
//
//	cache, err := di.Resolve[CacheProtocol](c)
func Resolve[T any](c *Container) (T, error) {
	var zero T
	value, err := c.Make(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, errors.TypeMismatch(TypeOf[T]().String(), TypeIDOf(value).String())
	}
	return typed, nil
}

// ResolveFor resolves an implementation of T on behalf of a client type.
// Non-singleton services are memoized per distinct client.
func ResolveFor[T any, Client any](c *Container) (T, error) {
	var zero T
	value, err := c.MakeFor(TypeOf[T](), TypeOf[Client]())
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, errors.TypeMismatch(TypeOf[T]().String(), TypeIDOf(value).String())
	}
	return typed, nil
}

// MustResolve resolves an implementation of T, panicking on failure.
// Use in wiring code where a missing service is a programming error.
func MustResolve[T any](c *Container) T {
	typed, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", TypeOf[T]().String(), err))
	}
	return typed
}

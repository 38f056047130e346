package di

import "context"

// Provider is an external integration module that contributes a batch of
// related factories and participates in the container boot lifecycle.
//
// Register is invoked exactly once per distinct provider runtime type,
// no matter how many instances of that type are handed to the registry.
// WillBoot hooks for every provider complete before any DidBoot runs;
// the barrier is enforced by the boot lifecycle, not by the registry.
type Provider interface {
	// Register binds the provider's factories and supplements into the
	// registry. Do not resolve services here; the container does not
	// exist yet.
	Register(s *Registry) error

	// WillBoot runs once the Container is fully assembled, before any
	// provider's DidBoot. Safe to resolve services.
	WillBoot(ctx context.Context, c *Container) error

	// DidBoot runs after every provider's WillBoot has completed.
	DidBoot(ctx context.Context, c *Container) error
}

// BaseProvider is an embeddable struct with no-op boot hooks. Embed it
// and override only what the provider needs.
type BaseProvider struct{}

func (BaseProvider) Register(*Registry) error                   { return nil }
func (BaseProvider) WillBoot(context.Context, *Container) error { return nil }
func (BaseProvider) DidBoot(context.Context, *Container) error  { return nil }

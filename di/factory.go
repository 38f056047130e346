package di

// Constructor builds a service instance. It receives the active Container
// and may recursively resolve the factory's own dependencies through it.
type Constructor func(c *Container) (any, error)

// Supplement decorates a freshly constructed instance. It takes the value,
// returns the (possibly replaced) value; the engine rebinds the result, so
// value types keep copy semantics and reference types mutate in place.
type Supplement func(c *Container, instance any) (any, error)

// Factory pairs a concrete type with the set of interfaces it claims to
// support, an optional disambiguation tag, a singleton flag, and a
// construction closure. Factories are never mutated after registration.
type Factory struct {
	// Concrete identifies the implementation type this factory produces.
	Concrete TypeID
	// Supports lists the abstract interfaces the concrete type satisfies.
	// The concrete type itself is always resolvable without being listed.
	Supports []TypeID
	// Tag qualifies the registration when one concrete type is registered
	// more than once for different purposes.
	Tag string
	// Singleton caches the first constructed value for the container's
	// lifetime and shares it with every subsequent caller.
	Singleton bool
	// Build constructs the instance.
	Build Constructor
}

// registrationKey is the registry slot identity: one registration per
// concrete type and tag.
type registrationKey struct {
	concrete TypeID
	tag      string
}

func (f Factory) key() registrationKey {
	return registrationKey{concrete: f.Concrete, tag: f.Tag}
}

// serves reports whether this factory can satisfy a request for iface.
func (f Factory) serves(iface TypeID) bool {
	if f.Concrete == iface {
		return true
	}
	for _, s := range f.Supports {
		if s == iface {
			return true
		}
	}
	return false
}

// FactoryOption customizes a factory built through Provide.
type FactoryOption func(*Factory)

// WithTag sets the factory's disambiguation tag.
func WithTag(tag string) FactoryOption {
	return func(f *Factory) { f.Tag = tag }
}

// AsSingleton marks the factory's product as shared for the container's lifetime.
func AsSingleton() FactoryOption {
	return func(f *Factory) { f.Singleton = true }
}

// AsTransient overrides a registry whose default lifetime is singleton.
func AsTransient() FactoryOption {
	return func(f *Factory) { f.Singleton = false }
}

// Serves declares additional interfaces the factory's product satisfies.
func Serves(ifaces ...TypeID) FactoryOption {
	return func(f *Factory) { f.Supports = append(f.Supports, ifaces...) }
}

// Provide registers a typed construction closure for concrete type C,
// using the registry's default lifetime unless an option says otherwise.
func Provide[C any](s *Registry, build func(c *Container) (C, error), opts ...FactoryOption) {
	f := Factory{
		Concrete:  TypeOf[C](),
		Singleton: s.defaultSingleton,
		Build: func(c *Container) (any, error) {
			return build(c)
		},
	}
	for _, opt := range opts {
		opt(&f)
	}
	s.Register(f)
}

// ProvideInstance registers a pre-built value as a singleton for its own type.
func ProvideInstance[C any](s *Registry, value C, opts ...FactoryOption) {
	f := Factory{
		Concrete:  TypeOf[C](),
		Singleton: true,
		Build: func(*Container) (any, error) {
			return value, nil
		},
	}
	for _, opt := range opts {
		opt(&f)
	}
	s.Register(f)
}

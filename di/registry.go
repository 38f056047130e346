package di

import (
	"github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/logger"
)

// Registry is the mutable collection of service factories, providers, and
// supplements. It is built incrementally during the registration phase;
// a Container constructed from it holds an immutable snapshot, so later
// mutation of the original never affects an existing container.
type Registry struct {
	log              *logger.Logger
	defaultSingleton bool

	factories []Factory
	slots     map[registrationKey]int

	providers     []Provider
	providerTypes map[TypeID]struct{}

	supplements map[registrationKey][]Supplement
}

// NewRegistry creates an empty registry with transient default lifetime.
func NewRegistry() *Registry {
	return &Registry{
		log:           logger.Get("services"),
		slots:         make(map[registrationKey]int),
		providerTypes: make(map[TypeID]struct{}),
		supplements:   make(map[registrationKey][]Supplement),
	}
}

// SetSingletonDefault changes the lifetime applied by Provide when no
// explicit option is given. Hosts typically enable this in release mode.
func (s *Registry) SetSingletonDefault(singleton bool) {
	s.defaultSingleton = singleton
}

// SingletonDefault returns the current default lifetime.
func (s *Registry) SingletonDefault() bool { return s.defaultSingleton }

// Register inserts a factory, or replaces an existing registration with
// the same concrete type and tag. Last registration wins and keeps the
// original slot, so FactoriesSupporting stays in first-registration order.
// Replacing a registration with different singleton-ness is a data-loss
// hazard and logged as a warning, not an error.
func (s *Registry) Register(f Factory) {
	key := f.key()
	if idx, ok := s.slots[key]; ok {
		existing := s.factories[idx]
		if existing.Singleton != f.Singleton {
			s.log.Warn("registration replaced with different lifetime", map[string]interface{}{
				logger.FieldConcrete:  f.Concrete.String(),
				logger.FieldTag:       f.Tag,
				logger.FieldSingleton: f.Singleton,
			})
		}
		s.factories[idx] = f
		return
	}
	s.factories = append(s.factories, f)
	s.slots[key] = len(s.factories) - 1
}

// RegisterProvider invokes the provider's Register hook and records it.
// A second provider of the same runtime type is a no-op, so its factories
// are contributed exactly once regardless of how many instances arrive.
func (s *Registry) RegisterProvider(p Provider) error {
	id := TypeIDOf(p)
	if _, ok := s.providerTypes[id]; ok {
		s.log.Debug("provider already registered", map[string]interface{}{
			logger.FieldProvider: id.String(),
		})
		return nil
	}
	if err := p.Register(s); err != nil {
		return errors.ProviderFailed(id.String(), "register", err)
	}
	s.providerTypes[id] = struct{}{}
	s.providers = append(s.providers, p)
	s.log.Debug("provider registered", map[string]interface{}{
		logger.FieldProvider: id.String(),
	})
	return nil
}

// Supplement appends a post-construction closure for the registration
// identified by concrete type and tag. Supplements accumulate and run in
// registration order each time the concrete type is freshly constructed.
func (s *Registry) Supplement(concrete TypeID, tag string, fn Supplement) {
	key := registrationKey{concrete: concrete, tag: tag}
	s.supplements[key] = append(s.supplements[key], fn)
}

// FactoriesSupporting returns every factory whose concrete type equals
// iface or whose supported-interfaces set contains it, in registration
// order. The stable order keeps disambiguation diagnostics deterministic.
func (s *Registry) FactoriesSupporting(iface TypeID) []Factory {
	var out []Factory
	for _, f := range s.factories {
		if f.serves(iface) {
			out = append(out, f)
		}
	}
	return out
}

// Factories returns a copy of all registrations in registration order.
func (s *Registry) Factories() []Factory {
	out := make([]Factory, len(s.factories))
	copy(out, s.factories)
	return out
}

// Providers returns a copy of the registered providers in registration order.
func (s *Registry) Providers() []Provider {
	out := make([]Provider, len(s.providers))
	copy(out, s.providers)
	return out
}

func (s *Registry) supplementsFor(concrete TypeID, tag string) []Supplement {
	return s.supplements[registrationKey{concrete: concrete, tag: tag}]
}

// snapshot returns an independent copy for a Container to own. Factories
// themselves are immutable after registration, so sharing them is safe;
// the containers around them are copied.
func (s *Registry) snapshot() *Registry {
	cp := &Registry{
		log:              s.log,
		defaultSingleton: s.defaultSingleton,
		factories:        make([]Factory, len(s.factories)),
		slots:            make(map[registrationKey]int, len(s.slots)),
		providers:        make([]Provider, len(s.providers)),
		providerTypes:    make(map[TypeID]struct{}, len(s.providerTypes)),
		supplements:      make(map[registrationKey][]Supplement, len(s.supplements)),
	}
	copy(cp.factories, s.factories)
	copy(cp.providers, s.providers)
	for k, v := range s.slots {
		cp.slots[k] = v
	}
	for k := range s.providerTypes {
		cp.providerTypes[k] = struct{}{}
	}
	for k, v := range s.supplements {
		fns := make([]Supplement, len(v))
		copy(fns, v)
		cp.supplements[k] = fns
	}
	return cp
}

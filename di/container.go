package di

import (
	"context"
	stderrors "errors"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/logger"
)

// Environment is the narrow key/value accessor the container consumes for
// process environment lookups. Factories may consult it; the engine
// itself only hands it through.
type Environment interface {
	Get(key string) (string, bool)
}

// osEnvironment reads the process environment directly.
type osEnvironment struct{}

func (osEnvironment) Get(key string) (string, bool) { return os.LookupEnv(key) }

// Container owns an Environment, an immutable Registry snapshot, a
// disambiguation policy, and a ServiceCache. Its single public operation
// is Make, which drives the resolution algorithm end to end.
//
// Resolution is synchronous and assumed single-threaded per container;
// factories recurse through the same container on the same goroutine.
type Container struct {
	id       string
	env      Environment
	registry *Registry
	policy   *Disambiguator
	cache    *Cache
	log      *logger.Logger
	tracer   trace.Tracer

	// in-progress interfaces for the current resolution chain
	resolving map[TypeID]struct{}
	stack     []TypeID
}

// ContainerOption customizes a container at construction.
type ContainerOption func(*Container)

// WithLogger sets the container's logger.
func WithLogger(l *logger.Logger) ContainerOption {
	return func(c *Container) { c.log = l }
}

// WithPolicy sets the disambiguation policy consulted on every resolution.
func WithPolicy(d *Disambiguator) ContainerOption {
	return func(c *Container) { c.policy = d }
}

// WithEnvironment sets the environment accessor.
func WithEnvironment(env Environment) ContainerOption {
	return func(c *Container) { c.env = env }
}

// WithTracer enables a resolution span per top-level Make call.
func WithTracer(tracer trace.Tracer) ContainerOption {
	return func(c *Container) { c.tracer = tracer }
}

// New constructs a container over an immutable snapshot of the registry.
// Registrations made to the original registry afterwards do not affect
// this container.
func New(s *Registry, opts ...ContainerOption) *Container {
	c := &Container{
		id:        uuid.NewString(),
		env:       osEnvironment{},
		registry:  s.snapshot(),
		policy:    NewDisambiguator(),
		cache:     NewCache(),
		log:       logger.Get("container"),
		resolving: make(map[TypeID]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithFields(map[string]interface{}{logger.FieldContainerID: c.id})
	return c
}

// ID returns the container's unique instance id, used in diagnostics.
func (c *Container) ID() string { return c.id }

// Environment returns the container's environment accessor.
func (c *Container) Environment() Environment { return c.env }

// Cache returns the container's service cache.
func (c *Container) Cache() *Cache { return c.cache }

// Services returns the container's frozen registry snapshot.
func (c *Container) Services() *Registry { return c.registry }

// Policy returns the container's disambiguation policy.
func (c *Container) Policy() *Disambiguator { return c.policy }

// Make resolves exactly one implementation of iface, constructing and
// caching it on first use.
func (c *Container) Make(iface TypeID) (any, error) {
	return c.traced(iface, TypeID{})
}

// MakeFor resolves iface on behalf of a requesting client type. Singleton
// services ignore the client; non-singleton services are memoized per
// distinct (interface, client) pair.
func (c *Container) MakeFor(iface, client TypeID) (any, error) {
	return c.traced(iface, client)
}

func (c *Container) traced(iface, client TypeID) (any, error) {
	if c.tracer == nil {
		return c.make(iface, client)
	}
	_, span := c.tracer.Start(context.Background(), "container.make",
		trace.WithAttributes(
			attribute.String("service.interface", iface.String()),
			attribute.String("container.id", c.id),
		))
	defer span.End()

	start := time.Now()
	value, err := c.make(iface, client)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(errors.CodeOf(err)))
		return nil, err
	}
	span.SetAttributes(
		attribute.String("service.concrete", TypeIDOf(value).String()),
		attribute.Int64("resolve.duration_ms", time.Since(start).Milliseconds()),
	)
	return value, nil
}

// make runs the fixed resolution steps: cache probe, candidate discovery,
// disambiguation, approval, construction, decoration, cache commit.
func (c *Container) make(iface, client TypeID) (any, error) {
	// Singleton tier wins regardless of client.
	if r, ok := c.cache.getSingleton(iface); ok {
		return r.value, r.err
	}
	if r, ok := c.cache.get(iface, client); ok {
		return r.value, r.err
	}

	if _, inflight := c.resolving[iface]; inflight {
		chain := make([]string, 0, len(c.stack)+1)
		for _, id := range c.stack {
			chain = append(chain, id.String())
		}
		chain = append(chain, iface.String())
		// Not cached: the outer frame for this interface is still in
		// flight and will record its own outcome.
		return nil, errors.CyclicDependency(chain)
	}
	c.resolving[iface] = struct{}{}
	c.stack = append(c.stack, iface)
	defer func() {
		delete(c.resolving, iface)
		c.stack = c.stack[:len(c.stack)-1]
	}()

	candidates := c.registry.FactoriesSupporting(iface)
	chosen, err := c.policy.choose(candidates, iface)
	if err != nil {
		// No factory was chosen, so no lifetime is known: the failure
		// lands in the instance tier for this (interface, client) pair.
		c.cache.set(iface, client, resolved{err: err})
		return nil, err
	}

	if err := c.policy.approve(chosen, iface); err != nil {
		c.commit(chosen, iface, client, resolved{err: err})
		return nil, err
	}

	value, err := chosen.Build(c)
	if err != nil {
		// Errors surfaced by recursive resolution are already coded;
		// cache and propagate them verbatim.
		var appErr *errors.AppError
		if !stderrors.As(err, &appErr) {
			err = errors.ConstructionFailed(chosen.Concrete.String(), err)
		}
		c.commit(chosen, iface, client, resolved{err: err})
		return nil, err
	}

	for i, fn := range c.registry.supplementsFor(chosen.Concrete, chosen.Tag) {
		value, err = fn(c, value)
		if err != nil {
			err = errors.SupplementFailed(chosen.Concrete.String(), i, err)
			c.commit(chosen, iface, client, resolved{err: err})
			return nil, err
		}
	}

	c.commit(chosen, iface, client, resolved{value: value})
	c.log.Debug("service resolved", map[string]interface{}{
		logger.FieldInterface: iface.String(),
		logger.FieldConcrete:  chosen.Concrete.String(),
		logger.FieldSingleton: chosen.Singleton,
	})
	return value, nil
}

// Close tears down cached singletons that implement io.Closer and
// empties the cache. Teardown order among singletons is unspecified;
// providers needing ordered shutdown use their own Shutdown hook.
func (c *Container) Close() error {
	var firstErr error
	for _, v := range c.cache.singletonValues() {
		closer, ok := v.(interface{ Close() error })
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			c.log.Error("singleton close failed", logger.ErrorFields("close", err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	c.cache.Clear()
	return firstErr
}

// commit stores an outcome in the tier matching the chosen factory's
// singleton flag.
func (c *Container) commit(chosen Factory, iface, client TypeID, r resolved) {
	if chosen.Singleton {
		c.cache.setSingleton(iface, r)
		return
	}
	c.cache.set(iface, client, r)
}

package provider

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/servicekit/di"
	"github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/logger"
)

// Shutdownable is optionally implemented by providers that hold resources
// requiring explicit cleanup. The Manager calls Shutdown in reverse
// registration order during wind-down.
type Shutdownable interface {
	Shutdown(ctx context.Context, c *di.Container) error
}

// Manager runs the two-phase provider boot. Hooks within a phase run
// concurrently; the phases themselves are strict barriers — all WillBoot
// hooks join before the first DidBoot starts, and all DidBoot hooks join
// before Boot returns.
type Manager struct {
	log       *logger.Logger
	providers []di.Provider
	booted    bool
}

// NewManager creates a manager for the given providers, in order.
// Typically the slice comes straight from Registry.Providers().
func NewManager(providers []di.Provider) *Manager {
	return &Manager{
		log:       logger.Get("provider"),
		providers: providers,
	}
}

// Boot runs every provider's WillBoot, then every provider's DidBoot.
// The first hook error aborts the phase and is returned; Boot never runs
// twice.
func (m *Manager) Boot(ctx context.Context, c *di.Container) error {
	if m.booted {
		return nil
	}
	if err := m.runPhase(ctx, c, "willBoot", di.Provider.WillBoot); err != nil {
		return err
	}
	if err := m.runPhase(ctx, c, "didBoot", di.Provider.DidBoot); err != nil {
		return err
	}
	m.booted = true
	m.log.Info("all providers booted", map[string]interface{}{
		"count": len(m.providers),
	})
	return nil
}

// Booted returns true once Boot has completed successfully.
func (m *Manager) Booted() bool { return m.booted }

// runPhase executes one hook across all providers concurrently and joins.
func (m *Manager) runPhase(ctx context.Context, c *di.Container, phase string, hook func(di.Provider, context.Context, *di.Container) error) error {
	m.log.Debug("running boot phase", map[string]interface{}{
		logger.FieldPhase: phase,
	})

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range m.providers {
		p := p
		g.Go(func() error {
			if err := hook(p, gctx, c); err != nil {
				return errors.ProviderFailed(di.TypeIDOf(p).String(), phase, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Shutdown winds down providers implementing Shutdownable, in reverse
// registration order. All providers are attempted; the first error is
// returned after the full pass.
func (m *Manager) Shutdown(ctx context.Context, c *di.Container) error {
	var firstErr error
	for i := len(m.providers) - 1; i >= 0; i-- {
		s, ok := m.providers[i].(Shutdownable)
		if !ok {
			continue
		}
		name := di.TypeIDOf(m.providers[i]).String()
		if err := s.Shutdown(ctx, c); err != nil {
			m.log.Error("provider shutdown failed", logger.ErrorFields("shutdown", err))
			if firstErr == nil {
				firstErr = errors.ProviderFailed(name, "shutdown", err)
			}
			continue
		}
		m.log.Debug("provider shut down", map[string]interface{}{
			logger.FieldProvider: name,
		})
	}
	m.booted = false
	return firstErr
}

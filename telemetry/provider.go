package telemetry

import (
	"context"

	"github.com/kbukum/servicekit/di"
)

// Provider contributes the tracing handle as a singleton service and
// brings the exporter up during boot.
type Provider struct {
	cfg Config
}

// NewProvider creates a tracing provider for the given config.
func NewProvider(cfg Config) *Provider {
	return &Provider{cfg: cfg}
}

// Register binds the *Tracing singleton. Construction is lazy; WillBoot
// forces it so a broken exporter fails the boot, not the first span.
func (p *Provider) Register(s *di.Registry) error {
	di.Provide[*Tracing](s, func(*di.Container) (*Tracing, error) {
		return Init(context.Background(), p.cfg)
	}, di.AsSingleton())
	return nil
}

func (p *Provider) WillBoot(ctx context.Context, c *di.Container) error {
	_, err := di.Resolve[*Tracing](c)
	return err
}

func (p *Provider) DidBoot(ctx context.Context, c *di.Container) error { return nil }

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context, c *di.Container) error {
	t, err := di.Resolve[*Tracing](c)
	if err != nil {
		return nil
	}
	return t.Shutdown(ctx)
}

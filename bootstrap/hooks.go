package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback that runs during application startup or
// shutdown.
type Hook func(ctx context.Context) error

// OnBoot registers a hook that runs once the container exists, before
// the provider boot phases.
func (a *App[C]) OnBoot(hooks ...Hook) {
	a.onBoot = append(a.onBoot, hooks...)
}

// OnReady registers a hook that runs after every provider has booted.
func (a *App[C]) OnReady(hooks ...Hook) {
	a.onReady = append(a.onReady, hooks...)
}

// OnShutdown registers a hook that runs during graceful shutdown before
// providers wind down.
func (a *App[C]) OnShutdown(hooks ...Hook) {
	a.onShutdown = append(a.onShutdown, hooks...)
}

// runHooks executes hooks sequentially, returning the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}

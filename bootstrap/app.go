package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/servicekit/config"
	"github.com/kbukum/servicekit/di"
	"github.com/kbukum/servicekit/logger"
	"github.com/kbukum/servicekit/provider"
	"github.com/kbukum/servicekit/util"
	"github.com/kbukum/servicekit/version"
)

// App assembles a container-backed application with uniform lifecycle
// management. The type parameter C is the config type; any struct
// embedding config.AppConfig satisfies the constraint.
//
//	app, err := bootstrap.NewApp(&myConfig)
//	app.RegisterProvider(mail.NewProvider(myConfig.Mail))
//	app.Run(context.Background())
type App[C Config] struct {
	Name      string
	Version   string
	Cfg       C
	Registry  *di.Registry
	Container *di.Container
	Providers *provider.Manager
	Logger    *logger.Logger
	Summary   *Summary

	env             *config.Environment
	tracer          trace.Tracer
	gracefulTimeout time.Duration

	onConfigure []func(ctx context.Context, app *App[C]) error
	onBoot      []Hook
	onReady     []Hook
	onShutdown  []Hook
}

// NewApp creates an application from a typed config. It applies
// defaults, validates the config, initializes the logger, and seeds the
// registry's lifetime default from the deployment environment.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetAppConfig()
	o := resolveOptions(opts)

	env := o.environment
	if env == nil {
		var err error
		env, err = config.NewEnvironment(o.envFiles...)
		if err != nil {
			return nil, fmt.Errorf("loading env files: %w", err)
		}
	}

	app := &App[C]{
		Name:            base.Name,
		Version:         util.Coalesce(base.Version, version.Short()),
		Cfg:             cfg,
		Registry:        di.NewRegistry(),
		env:             env,
		tracer:          o.tracer,
		gracefulTimeout: 15 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	// Release deployments default to singleton lifetime; development
	// rebuilds per resolution unless a factory opts in explicitly.
	release := env.IsRelease() || base.Environment == "production" || base.Environment == "staging"
	app.Registry.SetSingletonDefault(release)
	if base.Resolver.Singletons != nil {
		app.Registry.SetSingletonDefault(util.Deref(base.Resolver.Singletons))
	}

	app.Summary = NewSummary(app.Name, app.Version)
	return app, nil
}

// RegisterProvider adds a provider to the registry. Registration errors
// surface immediately; boot hooks run later, during startup.
func (a *App[C]) RegisterProvider(p di.Provider) error {
	return a.Registry.RegisterProvider(p)
}

// OnConfigure registers a callback that runs against the fully typed app
// after providers have registered but before the container is built. Use
// it for app-level factories that need no provider of their own.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// Run executes the full lifecycle for long-running applications:
// configure, build container, boot providers, block on signal, shut
// down gracefully.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask executes a finite task with the same bootstrap lifecycle.
// Unlike Run it does not block on signals; it runs the task and shuts
// down when the task finishes or a signal cancels its context. Use it
// for CLI commands and batch jobs.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// startup runs the assembly sequence shared by Run and RunTask.
func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	// Configure: app-level registrations against the typed config.
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configure failed: %w", err)
		}
	}

	// Policy: translate the config's resolver section into preferences
	// and requirements against the registered names.
	policy := di.NewDisambiguator()
	base := a.Cfg.GetAppConfig()
	if err := base.Resolver.Apply(di.NewNameTable(a.Registry), policy); err != nil {
		return fmt.Errorf("resolver policy: %w", err)
	}

	// The container freezes the registry here; later registrations
	// belong to a future container.
	copts := []di.ContainerOption{
		di.WithLogger(a.Logger),
		di.WithPolicy(policy),
		di.WithEnvironment(a.env),
	}
	if a.tracer != nil {
		copts = append(copts, di.WithTracer(a.tracer))
	}
	a.Container = di.New(a.Registry, copts...)

	if err := runHooks(ctx, a.onBoot); err != nil {
		return fmt.Errorf("onBoot hook failed: %w", err)
	}

	a.Providers = provider.NewManager(a.Registry.Providers())
	if err := a.Providers.Boot(ctx, a.Container); err != nil {
		return fmt.Errorf("provider boot failed: %w", err)
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.Display(a.Registry, a.Container, a.Logger)
	return nil
}

// WaitForSignal blocks until an interrupt/term signal or context
// cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})
		return sig
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own
// lifecycle instead of Run.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop winds the application down within the graceful timeout: shutdown
// hooks, provider shutdown in reverse order, then singleton teardown.
func (a *App[C]) stop() error {
	a.Logger.Info("shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(ctx, a.onShutdown); err != nil {
		a.Logger.Error("shutdown hook error", logger.ErrorFields("shutdown", err))
		shutdownErr = err
	}

	if a.Providers != nil && a.Container != nil {
		if err := a.Providers.Shutdown(ctx, a.Container); err != nil {
			a.Logger.Error("provider shutdown error", logger.ErrorFields("shutdown", err))
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}

	if a.Container != nil {
		if err := a.Container.Close(); err != nil {
			a.Logger.Error("container close error", logger.ErrorFields("close", err))
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}

	a.Logger.Info("application shutdown complete")
	return shutdownErr
}

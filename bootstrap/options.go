package bootstrap

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/servicekit/config"
	"github.com/kbukum/servicekit/logger"
)

// Option configures the App during creation. Options are non-generic so
// they can be shared across config types.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	environment     *config.Environment
	envFiles        []string
	tracer          trace.Tracer
	gracefulTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. If not set, the global logger is
// initialized from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithEnvironment sets a pre-built environment accessor.
func WithEnvironment(env *config.Environment) Option {
	return func(o *appOptions) { o.environment = env }
}

// WithEnvFiles names .env files layered into the environment accessor.
func WithEnvFiles(paths ...string) Option {
	return func(o *appOptions) { o.envFiles = append(o.envFiles, paths...) }
}

// WithTracer instruments every top-level resolution with a span.
func WithTracer(t trace.Tracer) Option {
	return func(o *appOptions) { o.tracer = t }
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = &d }
}

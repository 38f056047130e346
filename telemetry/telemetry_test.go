package telemetry

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/servicekit/di"
	"github.com/kbukum/servicekit/provider"
)

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected full sampling by default, got %f", cfg.SampleRate)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development default, got %q", cfg.Environment)
	}
}

func TestInitDisabledYieldsNoop(t *testing.T) {
	tr, err := Init(context.Background(), Config{Enabled: false, ServiceName: "test"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if tr.Provider != nil {
		t.Error("disabled tracing must not start a provider")
	}
	if tr.Tracer == nil {
		t.Fatal("expected a no-op tracer")
	}
	// Spans from the no-op tracer are safe to use.
	_, span := tr.Tracer.Start(context.Background(), "noop")
	span.End()
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown on noop handle: %v", err)
	}
}

func TestSamplerSelection(t *testing.T) {
	tests := []struct {
		rate float64
		want sdktrace.Sampler
	}{
		{1.0, sdktrace.AlwaysSample()},
		{1.5, sdktrace.AlwaysSample()},
		{0, sdktrace.NeverSample()},
		{-1, sdktrace.NeverSample()},
		{0.25, sdktrace.TraceIDRatioBased(0.25)},
	}
	for _, tc := range tests {
		got := sampler(tc.rate)
		if got.Description() != tc.want.Description() {
			t.Errorf("sampler(%f) = %s, want %s", tc.rate, got.Description(), tc.want.Description())
		}
	}
}

func TestProviderRegistersTracingSingleton(t *testing.T) {
	s := di.NewRegistry()
	p := NewProvider(Config{Enabled: false, ServiceName: "test"})
	if err := s.RegisterProvider(p); err != nil {
		t.Fatalf("RegisterProvider: %v", err)
	}

	c := di.New(s)
	m := provider.NewManager(s.Providers())
	if err := m.Boot(context.Background(), c); err != nil {
		t.Fatalf("Boot: %v", err)
	}

	tr, err := di.Resolve[*Tracing](c)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	again, err := di.Resolve[*Tracing](c)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if tr != again {
		t.Error("expected shared tracing singleton")
	}

	if err := m.Shutdown(context.Background(), c); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

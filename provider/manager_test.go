package provider

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/servicekit/di"
	"github.com/kbukum/servicekit/errors"
)

// eventLog records boot phase events across concurrent hooks.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (e *eventLog) add(ev string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *eventLog) snapshot() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.events...)
}

type slowProvider struct {
	di.BaseProvider
	log *eventLog
}

func (p *slowProvider) WillBoot(ctx context.Context, c *di.Container) error {
	time.Sleep(20 * time.Millisecond)
	p.log.add("slow:willBoot")
	return nil
}

func (p *slowProvider) DidBoot(ctx context.Context, c *di.Container) error {
	p.log.add("slow:didBoot")
	return nil
}

type fastProvider struct {
	di.BaseProvider
	log *eventLog
}

func (p *fastProvider) WillBoot(ctx context.Context, c *di.Container) error {
	p.log.add("fast:willBoot")
	return nil
}

func (p *fastProvider) DidBoot(ctx context.Context, c *di.Container) error {
	p.log.add("fast:didBoot")
	return nil
}

type failingProvider struct {
	di.BaseProvider
	phase string
}

func (p *failingProvider) WillBoot(ctx context.Context, c *di.Container) error {
	if p.phase == "willBoot" {
		return stderrors.New("warmup exploded")
	}
	return nil
}

func (p *failingProvider) DidBoot(ctx context.Context, c *di.Container) error {
	if p.phase == "didBoot" {
		return stderrors.New("finalize exploded")
	}
	return nil
}

type closableProvider struct {
	di.BaseProvider
	name string
	log  *eventLog
	fail bool
}

func (p *closableProvider) Shutdown(ctx context.Context, c *di.Container) error {
	p.log.add(p.name + ":shutdown")
	if p.fail {
		return stderrors.New("close failed")
	}
	return nil
}

func newContainer(t *testing.T) *di.Container {
	t.Helper()
	return di.New(di.NewRegistry())
}

func TestBootPhaseBarrier(t *testing.T) {
	log := &eventLog{}
	m := NewManager([]di.Provider{
		&slowProvider{log: log},
		&fastProvider{log: log},
	})

	if err := m.Boot(context.Background(), newContainer(t)); err != nil {
		t.Fatalf("Boot: %v", err)
	}

	events := log.snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %v", events)
	}
	// Every willBoot must precede every didBoot, even though the slow
	// provider's willBoot finishes well after the fast one's.
	lastWill, firstDid := -1, len(events)
	for i, ev := range events {
		switch {
		case ev == "slow:willBoot" || ev == "fast:willBoot":
			if i > lastWill {
				lastWill = i
			}
		default:
			if i < firstDid {
				firstDid = i
			}
		}
	}
	if lastWill > firstDid {
		t.Fatalf("didBoot started before willBoot barrier: %v", events)
	}
}

func TestBootWillBootFailure(t *testing.T) {
	log := &eventLog{}
	m := NewManager([]di.Provider{
		&failingProvider{phase: "willBoot"},
		&fastProvider{log: log},
	})

	err := m.Boot(context.Background(), newContainer(t))
	if err == nil {
		t.Fatal("expected boot failure")
	}
	if !errors.HasCode(err, errors.ErrCodeProviderFailed) {
		t.Fatalf("expected PROVIDER_FAILED, got %v", err)
	}
	if m.Booted() {
		t.Error("manager must not report booted after a failed phase")
	}
	// didBoot never ran for the healthy provider.
	for _, ev := range log.snapshot() {
		if ev == "fast:didBoot" {
			t.Fatalf("didBoot ran despite willBoot failure: %v", log.snapshot())
		}
	}
}

func TestBootDidBootFailure(t *testing.T) {
	m := NewManager([]di.Provider{&failingProvider{phase: "didBoot"}})

	err := m.Boot(context.Background(), newContainer(t))
	if !errors.HasCode(err, errors.ErrCodeProviderFailed) {
		t.Fatalf("expected PROVIDER_FAILED, got %v", err)
	}
}

func TestBootIdempotent(t *testing.T) {
	log := &eventLog{}
	m := NewManager([]di.Provider{&fastProvider{log: log}})
	c := newContainer(t)

	if err := m.Boot(context.Background(), c); err != nil {
		t.Fatalf("first Boot: %v", err)
	}
	if !m.Booted() {
		t.Fatal("expected booted state")
	}
	if err := m.Boot(context.Background(), c); err != nil {
		t.Fatalf("second Boot: %v", err)
	}
	if got := len(log.snapshot()); got != 2 {
		t.Fatalf("hooks ran again on second Boot: %d events", got)
	}
}

func TestShutdownReverseOrder(t *testing.T) {
	log := &eventLog{}
	m := NewManager([]di.Provider{
		&closableProvider{name: "first", log: log},
		&fastProvider{log: log},
		&closableProvider{name: "second", log: log},
	})
	c := newContainer(t)

	if err := m.Boot(context.Background(), c); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if err := m.Shutdown(context.Background(), c); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	events := log.snapshot()
	var shutdowns []string
	for _, ev := range events {
		if ev == "first:shutdown" || ev == "second:shutdown" {
			shutdowns = append(shutdowns, ev)
		}
	}
	want := []string{"second:shutdown", "first:shutdown"}
	if len(shutdowns) != 2 || shutdowns[0] != want[0] || shutdowns[1] != want[1] {
		t.Fatalf("expected reverse shutdown order %v, got %v", want, shutdowns)
	}
	if m.Booted() {
		t.Error("expected booted state cleared after shutdown")
	}
}

func TestShutdownContinuesPastFailure(t *testing.T) {
	log := &eventLog{}
	m := NewManager([]di.Provider{
		&closableProvider{name: "inner", log: log},
		&closableProvider{name: "outer", log: log, fail: true},
	})
	c := newContainer(t)

	err := m.Shutdown(context.Background(), c)
	if !errors.HasCode(err, errors.ErrCodeProviderFailed) {
		t.Fatalf("expected PROVIDER_FAILED, got %v", err)
	}
	events := log.snapshot()
	if len(events) != 2 {
		t.Fatalf("expected both providers attempted, got %v", events)
	}
}

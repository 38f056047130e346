package di

import (
	"context"
	"testing"
)

type mailProvider struct {
	BaseProvider
	registered *int
}

func (p *mailProvider) Register(s *Registry) error {
	*p.registered++
	registerSMTP(s)
	return nil
}

type failingProvider struct {
	BaseProvider
}

func (p *failingProvider) Register(s *Registry) error {
	return context.Canceled
}

func TestRegisterReplacesByConcreteAndTag(t *testing.T) {
	s := NewRegistry()
	Provide(s, func(*Container) (*SMTPMailer, error) {
		return &SMTPMailer{Host: "first"}, nil
	})
	Provide(s, func(*Container) (*SMTPMailer, error) {
		return &SMTPMailer{Host: "second"}, nil
	})

	if got := len(s.Factories()); got != 1 {
		t.Fatalf("expected replacement, got %d factories", got)
	}

	c := New(s)
	m := MustResolve[*SMTPMailer](c)
	if m.Host != "second" {
		t.Errorf("expected last registration to win, got %q", m.Host)
	}
}

func TestRegisterDistinctTagsCoexist(t *testing.T) {
	s := NewRegistry()
	registerSMTP(s)
	registerSMTP(s, WithTag("bulk"))

	if got := len(s.Factories()); got != 2 {
		t.Errorf("expected 2 registrations, got %d", got)
	}
}

func TestFactoriesSupportingOrder(t *testing.T) {
	s := NewRegistry()
	registerSMTP(s)
	registerSendgrid(s)

	supporting := s.FactoriesSupporting(TypeOf[Mailer]())
	if len(supporting) != 2 {
		t.Fatalf("expected 2 factories, got %d", len(supporting))
	}
	if supporting[0].Concrete != TypeOf[*SMTPMailer]() {
		t.Error("expected registration order preserved")
	}
}

func TestFactoriesSupportingReplacedSlotKeepsOrder(t *testing.T) {
	s := NewRegistry()
	registerSMTP(s)
	registerSendgrid(s)
	registerSMTP(s) // replace in place

	supporting := s.FactoriesSupporting(TypeOf[Mailer]())
	if supporting[0].Concrete != TypeOf[*SMTPMailer]() {
		t.Error("expected replaced registration to keep its original slot")
	}
}

func TestProviderRegisteredOncePerType(t *testing.T) {
	s := NewRegistry()
	calls := 0

	if err := s.RegisterProvider(&mailProvider{registered: &calls}); err != nil {
		t.Fatalf("RegisterProvider failed: %v", err)
	}
	// A different instance of the same type is a no-op.
	if err := s.RegisterProvider(&mailProvider{registered: &calls}); err != nil {
		t.Fatalf("RegisterProvider failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected Register side effects once, got %d", calls)
	}
	if got := len(s.Providers()); got != 1 {
		t.Errorf("expected 1 provider, got %d", got)
	}
	if got := len(s.Factories()); got != 1 {
		t.Errorf("expected provider factories contributed once, got %d", got)
	}
}

func TestProviderRegisterErrorNotRecorded(t *testing.T) {
	s := NewRegistry()
	if err := s.RegisterProvider(&failingProvider{}); err == nil {
		t.Fatal("expected error")
	}
	if len(s.Providers()) != 0 {
		t.Error("failed provider must not be recorded")
	}
}

func TestSupplementAccumulates(t *testing.T) {
	s := NewRegistry()
	key := TypeOf[Banner]()
	s.Supplement(key, "", func(_ *Container, v any) (any, error) { return v, nil })
	s.Supplement(key, "", func(_ *Container, v any) (any, error) { return v, nil })

	if got := len(s.supplementsFor(key, "")); got != 2 {
		t.Errorf("expected 2 supplements, got %d", got)
	}
}

func TestSupplementKeyedByTag(t *testing.T) {
	s := NewRegistry()
	key := TypeOf[Banner]()
	s.Supplement(key, "bulk", func(_ *Container, v any) (any, error) { return v, nil })

	if got := len(s.supplementsFor(key, "")); got != 0 {
		t.Errorf("expected untagged lookup to miss, got %d", got)
	}
	if got := len(s.supplementsFor(key, "bulk")); got != 1 {
		t.Errorf("expected tagged lookup to hit, got %d", got)
	}
}

func TestSingletonDefaultAppliedByProvide(t *testing.T) {
	s := NewRegistry()
	s.SetSingletonDefault(true)
	registerSMTP(s)

	if !s.Factories()[0].Singleton {
		t.Error("expected registry default lifetime applied")
	}

	registerSendgrid(s, AsTransient())
	if s.Factories()[1].Singleton {
		t.Error("expected explicit option to override the default")
	}
}

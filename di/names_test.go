package di

import (
	"testing"

	"github.com/kbukum/servicekit/errors"
)

type RedisCacheProtocol interface{ Flush() }
type ConsoleRenderer struct{}
type HTTPClient struct{}
type redisCache struct{}

func (redisCache) Flush() {}

func TestNameDerivation(t *testing.T) {
	cases := []struct {
		id   TypeID
		want string
	}{
		{TypeOf[RedisCacheProtocol](), "redis-cache"},
		{TypeOf[ConsoleRenderer](), "console"},
		{TypeOf[HTTPClient](), "http-client"},
		{TypeOf[*ConsoleRenderer](), "console"}, // pointer and value share a name
		{TypeOf[SMTPMailer](), "smtp-mailer"},
	}
	for _, tc := range cases {
		if got := Name(tc.id); got != tc.want {
			t.Errorf("Name(%s) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestNameCached(t *testing.T) {
	id := TypeOf[ConsoleRenderer]()
	first := Name(id)
	second := Name(id)
	if first != second {
		t.Errorf("cache returned different names: %q vs %q", first, second)
	}
}

func TestNameTableLookup(t *testing.T) {
	s := NewRegistry()
	Provide(s, func(*Container) (ConsoleRenderer, error) {
		return ConsoleRenderer{}, nil
	})

	table := NewNameTable(s)

	id, err := table.Lookup("console")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if id != TypeOf[ConsoleRenderer]() {
		t.Errorf("unexpected id %s", id)
	}

	if _, err := table.Lookup("no-such-service"); !errors.HasCode(err, errors.ErrCodeUnknownService) {
		t.Errorf("expected UNKNOWN_SERVICE, got %v", err)
	}
}

func TestNameTableCollision(t *testing.T) {
	s := NewRegistry()
	// redisCache and RedisCacheProtocol both derive "redis-cache".
	Provide(s, func(*Container) (redisCache, error) {
		return redisCache{}, nil
	}, Serves(TypeOf[RedisCacheProtocol]()))

	table := NewNameTable(s)
	_, err := table.Lookup("redis-cache")
	if !errors.HasCode(err, errors.ErrCodeDuplicateRegistration) {
		t.Fatalf("expected DUPLICATE_REGISTRATION for colliding names, got %v", err)
	}
}

package logger

import (
	"testing"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format 'console', got %q", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps enabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{Level: "verbose", Format: "json", Output: "stdout"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}

	cfg.Level = "debug"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFieldsBuilder(t *testing.T) {
	m := Fields("interface", "cache", "concrete", "memory-cache")
	if m["interface"] != "cache" || m["concrete"] != "memory-cache" {
		t.Errorf("unexpected fields map: %v", m)
	}

	// Odd trailing value is dropped.
	m = Fields("a", 1, "dangling")
	if len(m) != 1 {
		t.Errorf("expected 1 entry, got %d", len(m))
	}
}

func TestGetFallsBackToComponentLogger(t *testing.T) {
	l := Get("nonexistent-component")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestRegisterAndGet(t *testing.T) {
	nop := NewNop()
	Register("resolver", nop)
	if got := Get("resolver"); got != nop {
		t.Error("expected registered logger back")
	}
}

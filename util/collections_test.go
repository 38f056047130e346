package util

import (
	"sort"
	"testing"
)

func TestPtrDeref(t *testing.T) {
	p := Ptr(42)
	if *p != 42 {
		t.Errorf("expected 42, got %d", *p)
	}
	if Deref(p) != 42 {
		t.Errorf("expected 42, got %d", Deref(p))
	}
	var nilPtr *string
	if Deref(nilPtr) != "" {
		t.Errorf("expected zero value for nil pointer")
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "fallback", "later"); got != "fallback" {
		t.Errorf("expected 'fallback', got %q", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("expected zero, got %d", got)
	}
	if got := Coalesce("only"); got != "only" {
		t.Errorf("expected 'only', got %q", got)
	}
}

func TestKeys(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	keys := Keys(m)
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(n int) int { return n * n })
	if len(got) != 3 || got[2] != 9 {
		t.Errorf("unexpected result %v", got)
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{"x", "y"}, "y") {
		t.Error("expected to find y")
	}
	if Contains([]string{"x"}, "z") {
		t.Error("did not expect z")
	}
}

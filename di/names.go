package di

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/kbukum/servicekit/errors"
)

// nameSuffixes are stripped from type names before kebab-case conversion.
var nameSuffixes = []string{"Protocol", "Factory", "Renderer"}

// nameCache memoizes derived names per TypeID; derivation runs on every
// config-driven lookup otherwise.
var nameCache sync.Map

// Name derives the kebab-case short name used to refer to a type in
// configuration files: the unqualified type name, minus known suffixes,
// split on uppercase-letter boundaries.
//
//	RedisCacheProtocol -> "redis-cache"
//	ConsoleRenderer    -> "console"
func Name(id TypeID) string {
	if cached, ok := nameCache.Load(id); ok {
		return cached.(string)
	}
	name := deriveName(id)
	nameCache.Store(id, name)
	return name
}

func deriveName(id TypeID) string {
	rt := id.rt
	if rt == nil {
		return ""
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	base := rt.Name()
	if base == "" {
		// Unnamed type: fall back to the qualified string form.
		base = rt.String()
		if idx := strings.LastIndex(base, "."); idx >= 0 {
			base = base[idx+1:]
		}
	}
	for stripped := true; stripped; {
		stripped = false
		for _, suffix := range nameSuffixes {
			if len(base) > len(suffix) && strings.HasSuffix(base, suffix) {
				base = strings.TrimSuffix(base, suffix)
				stripped = true
			}
		}
	}
	return kebab(base)
}

// kebab splits a CamelCase identifier on uppercase boundaries and joins
// the words with dashes. Runs of uppercase letters stay together until
// the last letter of the run ("HTTPClient" -> "http-client").
func kebab(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// NameTable maps derived short names back to the TypeIDs registered in a
// Registry, for config-driven disambiguation. Two registered types that
// derive the same name are reported as a duplicate at lookup time.
type NameTable struct {
	names map[string][]TypeID
}

// NewNameTable indexes every concrete and supported type in the registry.
func NewNameTable(s *Registry) *NameTable {
	t := &NameTable{names: make(map[string][]TypeID)}
	for _, f := range s.Factories() {
		t.add(f.Concrete)
		for _, iface := range f.Supports {
			t.add(iface)
		}
	}
	return t
}

func (t *NameTable) add(id TypeID) {
	name := Name(id)
	for _, existing := range t.names[name] {
		if existing == id {
			return
		}
	}
	t.names[name] = append(t.names[name], id)
}

// Lookup resolves a configured name to a TypeID.
func (t *NameTable) Lookup(name string) (TypeID, error) {
	ids := t.names[name]
	switch len(ids) {
	case 0:
		return TypeID{}, errors.UnknownService(name)
	case 1:
		return ids[0], nil
	default:
		return TypeID{}, errors.DuplicateRegistration(name)
	}
}

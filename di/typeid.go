package di

import "reflect"

// TypeID is an identity token for an abstract or concrete type. It is
// comparable and hashable by type identity, not by structural shape, and
// is the primary key for every registry and cache lookup.
type TypeID struct {
	rt reflect.Type
}

// TypeOf returns the TypeID for T. T may be an interface or a concrete type.
func TypeOf[T any]() TypeID {
	return TypeID{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// TypeIDOf returns the TypeID of v's dynamic type.
func TypeIDOf(v any) TypeID {
	return TypeID{rt: reflect.TypeOf(v)}
}

// IsZero reports whether the TypeID identifies no type.
func (id TypeID) IsZero() bool { return id.rt == nil }

// String returns the type's name for diagnostics. Identity comparisons
// never go through this string.
func (id TypeID) String() string {
	if id.rt == nil {
		return "<none>"
	}
	return id.rt.String()
}

// Package di implements the service registry and resolution engine.
//
// Services are registered as factories keyed by abstract type identity
// (TypeID). A Container resolves exactly one concrete implementation per
// requested interface, applying preference/requirement disambiguation,
// singleton caching, and post-construction supplements in registration
// order. Providers contribute batches of related factories and take part
// in the container boot lifecycle.
package di

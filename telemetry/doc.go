// Package telemetry wires OpenTelemetry tracing into the container.
//
// The Provider registers a *Tracing singleton built from Config; when
// tracing is disabled the handle carries a no-op tracer so resolution
// sites stay unconditional.
package telemetry

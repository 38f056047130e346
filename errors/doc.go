// Package errors provides unified error handling for the service registry.
// It implements structured error types with machine-readable codes and
// retryable detection; every resolution failure maps to exactly one code.
package errors

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// AppError is the unified error type for registry and resolution failures.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// HasCode reports whether err (or anything it wraps) is an AppError with
// the given code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// CodeOf returns the error code of err, or "" if err is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// --- Resolution Error Constructors ---

// NoServiceAvailable creates an error for an interface with no usable factory.
func NoServiceAvailable(iface string) *AppError {
	return &AppError{
		Code:    ErrCodeNoServiceAvailable,
		Message: fmt.Sprintf("no service registered for %s. Register a factory whose concrete type is, or that declares support for, %s.", iface, iface),
		Details: map[string]any{"interface": iface},
	}
}

// AmbiguousService creates an error for an interface with multiple candidate
// factories and no configured preference. candidates holds the concrete type
// name of every matching factory.
func AmbiguousService(iface string, candidates []string) *AppError {
	fixes := make([]string, 0, len(candidates))
	for _, c := range candidates {
		fixes = append(fixes, fmt.Sprintf("Prefer(%s, for: %s)", c, iface))
	}
	return &AppError{
		Code: ErrCodeAmbiguousService,
		Message: fmt.Sprintf("multiple services registered for %s: %s. Configure one of: %s.",
			iface, strings.Join(candidates, ", "), strings.Join(fixes, "; ")),
		Details: map[string]any{"interface": iface, "candidates": candidates},
	}
}

// DuplicateRegistration creates an error for colliding registrations under
// the same name or tag.
func DuplicateRegistration(name string) *AppError {
	return &AppError{
		Code:    ErrCodeDuplicateRegistration,
		Message: fmt.Sprintf("multiple services registered under %q; registrations must be unique per concrete type and tag", name),
		Details: map[string]any{"name": name},
	}
}

// RequirementViolated creates an error for a resolution vetoed by a hard requirement.
func RequirementViolated(iface, chosen, required string) *AppError {
	return &AppError{
		Code: ErrCodeRequirementViolated,
		Message: fmt.Sprintf("%s resolved to %s but %s is required for %s",
			iface, chosen, required, iface),
		Details: map[string]any{"interface": iface, "chosen": chosen, "required": required},
	}
}

// CyclicDependency creates an error for a factory that transitively depends
// on itself. chain holds the interfaces in resolution order, ending with the
// repeated one.
func CyclicDependency(chain []string) *AppError {
	return &AppError{
		Code:    ErrCodeCyclicDependency,
		Message: fmt.Sprintf("cyclic dependency detected: %s", strings.Join(chain, " -> ")),
		Details: map[string]any{"chain": chain},
	}
}

// ConstructionFailed wraps a factory error for the given concrete type.
func ConstructionFailed(concrete string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeConstructionFailed,
		Message: fmt.Sprintf("constructing %s failed", concrete),
		Details: map[string]any{"concrete": concrete},
		Cause:   cause,
	}
}

// SupplementFailed wraps a supplement error for the given concrete type.
func SupplementFailed(concrete string, index int, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeSupplementFailed,
		Message: fmt.Sprintf("supplement %d for %s failed", index, concrete),
		Details: map[string]any{"concrete": concrete, "index": index},
		Cause:   cause,
	}
}

// ProviderFailed wraps a provider registration or boot failure.
func ProviderFailed(provider, phase string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeProviderFailed,
		Message: fmt.Sprintf("provider %s failed during %s", provider, phase),
		Details: map[string]any{"provider": provider, "phase": phase},
		Cause:   cause,
	}
}

// TypeMismatch creates an error for a resolved value of an unexpected type.
func TypeMismatch(expected, got string) *AppError {
	return &AppError{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf("resolved value is %s, expected %s", got, expected),
		Details: map[string]any{"expected": expected, "got": got},
	}
}

// InvalidConfig creates an error for invalid policy or environment configuration.
func InvalidConfig(message string) *AppError {
	return New(ErrCodeInvalidConfig, message)
}

// Validation creates an error for a struct or field that failed validation.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// UnknownService creates an error for a configured name matching no registered type.
func UnknownService(name string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownService,
		Message: fmt.Sprintf("configuration references unknown service %q", name),
		Details: map[string]any{"name": name},
	}
}

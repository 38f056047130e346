package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors. None of these are retryable: each one indicates a
// registration or policy bug that a retry cannot fix.
const (
	// ErrCodeNoServiceAvailable indicates that no factory is registered
	// for the requested interface, or a configured preference matched
	// none of the candidates.
	ErrCodeNoServiceAvailable ErrorCode = "NO_SERVICE_AVAILABLE"
	// ErrCodeAmbiguousService indicates that two or more factories match
	// the requested interface and no preference is configured.
	ErrCodeAmbiguousService ErrorCode = "AMBIGUOUS_SERVICE"
	// ErrCodeDuplicateRegistration indicates that disambiguation found
	// multiple factories under the same concrete type and tag, or that
	// two registered types derive the same configuration name.
	ErrCodeDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"
	// ErrCodeRequirementViolated indicates that a hard requirement vetoed
	// an otherwise valid resolution.
	ErrCodeRequirementViolated ErrorCode = "REQUIREMENT_VIOLATED"
	// ErrCodeCyclicDependency indicates that a factory transitively
	// depends on itself during construction.
	ErrCodeCyclicDependency ErrorCode = "CYCLIC_DEPENDENCY"
)

// Construction/lifecycle errors
const (
	// ErrCodeConstructionFailed indicates a factory closure returned an error.
	ErrCodeConstructionFailed ErrorCode = "CONSTRUCTION_FAILED"
	// ErrCodeSupplementFailed indicates a post-construction supplement returned an error.
	ErrCodeSupplementFailed ErrorCode = "SUPPLEMENT_FAILED"
	// ErrCodeProviderFailed indicates a provider's registration or boot hook failed.
	ErrCodeProviderFailed ErrorCode = "PROVIDER_FAILED"
	// ErrCodeTypeMismatch indicates a resolved value did not have the requested type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates the policy or environment configuration is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeUnknownService indicates a configuration name that maps to no registered type.
	ErrCodeUnknownService ErrorCode = "UNKNOWN_SERVICE"
	// ErrCodeValidation indicates a struct or field failed validation.
	ErrCodeValidation ErrorCode = "VALIDATION_FAILED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeNoServiceAvailable:    false,
	ErrCodeAmbiguousService:      false,
	ErrCodeDuplicateRegistration: false,
	ErrCodeRequirementViolated:   false,
	ErrCodeCyclicDependency:      false,
	ErrCodeConstructionFailed:    false,
	ErrCodeSupplementFailed:      false,
	ErrCodeProviderFailed:        false,
	ErrCodeTypeMismatch:          false,
	ErrCodeInvalidConfig:         false,
	ErrCodeUnknownService:        false,
	ErrCodeValidation:            false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

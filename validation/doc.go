// Package validation validates configuration and policy input.
//
// Struct tag validation (via the validator library) covers declarative
// config structs; the programmatic Validator collects field errors for
// checks that tags cannot express.
//
//	type Binding struct {
//	    Interface string `validate:"required"`
//	    Service   string `validate:"required"`
//	}
//	err := validation.Validate(&binding)
package validation

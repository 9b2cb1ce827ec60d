package address

import (
	"context"
)

// Validator defines the interface for address completeness checks.
// Implementations decide which fields an address needs before a downstream
// consumer (a formatter, a shipping label) can use it.
type Validator interface {
	// Validate checks the address and reports every problem found.
	// A nil error with IsValid false means the address itself is incomplete.
	Validate(ctx context.Context, addr Address) (*ValidationResult, error)
}

// ValidationResult contains the outcome of address validation.
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a specific validation error.
type ValidationError struct {
	Field   Field  `json:"-"`
	Name    string `json:"field"`
	Message string `json:"message"`
}

// BasicValidator requires a fixed set of fields to be non-empty.
// It does not look at field content or at country-specific rules.
type BasicValidator struct {
	required []Field
}

// NewBasicValidator creates a validator that requires the given fields.
// It panics with a *PreconditionError if a field is not declared.
func NewBasicValidator(required ...Field) *BasicValidator {
	for _, f := range required {
		lookup("address.NewBasicValidator", f)
	}
	return &BasicValidator{required: required}
}

// Validate reports a ValidationError for every required field that is empty.
func (v *BasicValidator) Validate(ctx context.Context, addr Address) (*ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ValidationResult{IsValid: true}
	for _, f := range v.required {
		if addr.IsFieldEmpty(f) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   f,
				Name:    f.String(),
				Message: f.String() + " is required",
			})
		}
	}
	result.IsValid = len(result.Errors) == 0
	return result, nil
}

package address

import "fmt"

// ============================================================================
// ADDRESS ERROR CODES
// ============================================================================
// These constants mirror the handler's error codes to avoid circular imports.

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
)

// ============================================================================
// ADDRESS ERROR TYPE
// ============================================================================

// AddressError represents an address-specific error with a code and message.
type AddressError struct {
	Code    string
	Message string
}

func (e *AddressError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *AddressError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *AddressError) ErrorMessage() string {
	return e.Message
}

func newAddressError(code, message string) *AddressError {
	return &AddressError{Code: code, Message: message}
}

// ============================================================================
// ADDRESS DOMAIN ERRORS
// ============================================================================

var (
	// ErrWrongStorageKind is wrapped when an accessor is called for a field
	// stored in the other shape (e.g. Value on StreetAddress).
	ErrWrongStorageKind = newAddressError(codeInternal, "Field has a different storage kind")

	// ErrUnknownField is returned for a field name or ordinal outside the enumeration.
	ErrUnknownField = newAddressError(codeInvalid, "Unknown address field")
)

// PreconditionError is the panic value raised when an accessor is misused.
// It signals a bug in the caller and is not meant to be recovered and retried.
type PreconditionError struct {
	// Op is the accessor that was called (e.g. "address.Value").
	Op    string
	Field Field
	Err   error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Field, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

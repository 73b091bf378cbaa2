package console

import "errors"

// ErrMalformedInput reports settings text that is not a JSON object.
var ErrMalformedInput = errors.New("malformed settings document")

// ValidationError is returned when an action's input is incomplete. No request
// is sent when it occurs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Operator-facing validation messages.
const (
	msgAllFieldsRequired = "All fields are required."
	msgIndexRequired     = "Index is required."
)

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// RefetchError is returned by DeleteRecord when the delete succeeded but the
// records could not be fetched again afterwards.
type RefetchError struct {
	Err error
}

func (e *RefetchError) Error() string {
	return "refetch after delete: " + e.Err.Error()
}

func (e *RefetchError) Unwrap() error {
	return e.Err
}

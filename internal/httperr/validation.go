package httperr

import "errors"

// FieldError is a validation failure keyed by the offending field
// (e.g. time_slot on an appointment conflict).
type FieldError struct {
	Field string
	Code  string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Code
}

func ErrField(field, code string) error {
	return FieldError{Field: field, Code: code}
}

func AsField(err error) (FieldError, bool) {
	var fe FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return FieldError{}, false
}

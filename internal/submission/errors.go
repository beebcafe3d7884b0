package submission

import "errors"

var (
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateRestroom = errors.New("restroom already exists")
	ErrGeocodeFailure    = errors.New("unable to find the location for this address")
	ErrPersistence       = errors.New("failed to save restroom")
)

// FieldError carries the names of the fields that failed validation.
type FieldError struct {
	Err    error
	Fields []string
}

func (e *FieldError) Error() string {
	return e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

package slip

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an id with no record in the store.
var ErrNotFound = errors.New("salary slip not found")

// ValidationError reports a required field that is missing or empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

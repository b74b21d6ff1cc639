package form

import (
	"errors"
	"fmt"
)

// Rejection codes reported by Bind.
const (
	ParamRequired = "PARAM_REQUIRED"
	ParamType     = "PARAM_TYPE"
	ParamPattern  = "PARAM_PATTERN"
	ParamSize     = "PARAM_SIZE"
)

// Sentinel errors for the form package.
var (
	// ErrConfiguration is returned when a field declaration cannot be used.
	// It is never reported to the visitor as a rejection.
	ErrConfiguration = errors.New("form: invalid field declaration")

	// ErrRejected matches every *Rejection via errors.Is.
	ErrRejected = errors.New("form: rejected")

	// ErrInvalidID is returned when a value is not a well-formed form id.
	ErrInvalidID = errors.New("form: invalid form id")
)

// Rejection describes the first field that failed binding.
type Rejection struct {
	Code  string
	Field string
}

// Error implements the error interface.
func (r *Rejection) Error() string {
	return fmt.Sprintf("form: %s on field %q", r.Code, r.Field)
}

// Is reports whether target is ErrRejected.
func (r *Rejection) Is(target error) bool {
	return target == ErrRejected
}

// AsRejection extracts the Rejection from err if present.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

func configError(field, format string, args ...any) error {
	return fmt.Errorf("%w: field %q: %s", ErrConfiguration, field, fmt.Sprintf(format, args...))
}

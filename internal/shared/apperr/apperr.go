package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Validation marks a rejected input; Field names the offending form field.
type Validation struct {
	Field string
	Msg   string
}

func (e *Validation) Error() string { return e.Msg }

// Forbidden carries the user-facing flash message and the view the
// client should be redirected to.
type Forbidden struct {
	Msg      string
	Redirect string
}

func (e *Forbidden) Error() string { return e.Msg }

func IsValidation(err error) (*Validation, bool) {
	var v *Validation
	ok := errors.As(err, &v)
	return v, ok
}

func IsForbidden(err error) (*Forbidden, bool) {
	var f *Forbidden
	ok := errors.As(err, &f)
	return f, ok
}

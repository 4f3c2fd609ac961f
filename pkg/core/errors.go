package core

import (
	"errors"
	"fmt"
)

// Schema errors. All of them are fatal and surface at parse time.
var (
	ErrUnknownMaster        = errors.New("unknown master")
	ErrNoMaster             = errors.New("no master matched")
	ErrAmbiguousMaster      = errors.New("more than one master matched")
	ErrUnknownField         = errors.New("unknown field")
	ErrMissingField         = errors.New("mandatory field missing")
	ErrInvalidValue         = errors.New("invalid field value")
	ErrMalformedFields      = errors.New("fields must be a mapping")
	ErrUnknownSlideProperty = errors.New("unknown slide property")
	ErrDuplicateRef         = errors.New("duplicate slide reference")
	ErrMalformedMeta        = errors.New("malformed presentation metadata")
)

// ErrRefExpansion is returned when a reference shorthand is used but the
// presentation reference cannot be determined from the raw document.
var ErrRefExpansion = errors.New("cannot expand reference shorthand")

// Resolution errors.
var (
	ErrUnresolvedMedia = errors.New("required media could not be resolved")
	ErrInvalidState    = errors.New("invalid presentation state")
)

// FieldError reports a normalization failure for one field of one master.
type FieldError struct {
	Master string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("master %q: %v", e.Master, e.Err)
	}
	return fmt.Sprintf("master %q, field %q: %v", e.Master, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// SlideError attaches the sequence number and reference of the slide being
// built to an underlying failure.
type SlideError struct {
	No  int
	Ref string
	Err error
}

func (e *SlideError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("slide %d (%s): %v", e.No, e.Ref, e.Err)
	}
	return fmt.Sprintf("slide %d: %v", e.No, e.Err)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}

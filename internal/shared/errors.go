package shared

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a record failed field validation. It is
	// deliberately generic: callers learn that validation failed, not which
	// rule tripped.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a write was rejected by a database constraint,
	// such as a duplicate unique value or a referencing row on delete.
	ErrConflict = errors.New("conflict")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

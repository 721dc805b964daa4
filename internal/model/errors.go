package model

import "errors"

var (
	// ErrNotFound: the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotAllowed: ownership/authorization violation or an invalid state
	// transition (e.g. sending a non-draft).
	ErrNotAllowed = errors.New("not allowed")
	// ErrBadValues: malformed input, such as empty required text or an
	// unknown status value.
	ErrBadValues = errors.New("bad values")
	// ErrConflict: a uniqueness rule would be violated (username taken,
	// profile already exists).
	ErrConflict = errors.New("conflict")

	ErrNotImplemented = errors.New("not implemented")
)

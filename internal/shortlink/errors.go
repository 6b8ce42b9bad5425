package shortlink

import "errors"

var (
	// ErrNotFound is returned when no record matches a code, URL, or id.
	ErrNotFound = errors.New("short link not found")

	// ErrCodeTaken is returned by Store.Create when the candidate code
	// already belongs to another record.
	ErrCodeTaken = errors.New("code already taken")

	// ErrCodeSpaceExhausted is returned when the engine gives up after
	// repeatedly colliding with existing codes.
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique code")

	// ErrUnavailable wraps network and non-success failures talking to the
	// backing store.
	ErrUnavailable = errors.New("store unavailable")
)

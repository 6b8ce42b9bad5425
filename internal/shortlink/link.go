package shortlink

import "time"

// Code is a short alphanumeric token used as the path segment of a
// shortened URL.
type Code string

// ShortLink is a stored mapping from a short code to its original URL.
// ID is assigned by the backing store on creation and never changes.
type ShortLink struct {
	ID        string
	URL       string
	Code      Code
	Views     int64
	CreatedAt time.Time
}

// Result is the outcome of a shorten operation.
type Result struct {
	Link *ShortLink
	// ShortURL is the public short URL (domain + code).
	ShortURL string
	// IsNew reports whether a new record was created. A repeated request
	// for an already-shortened URL returns the existing record instead.
	IsNew bool
}

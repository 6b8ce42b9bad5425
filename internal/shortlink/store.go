package shortlink

import "context"

// Store is the persistence contract for short links. All records live in
// the backing store; the service keeps no in-process state between
// requests.
//
// Create must behave as a conditional insert: it returns ErrCodeTaken when
// a record with the same code already exists and must not persist anything
// in that case. Store implementations backed by services without a
// uniqueness primitive (the remote document store) approximate this with a
// check-then-create sequence and inherit its race window.
type Store interface {
	Create(ctx context.Context, link *ShortLink) error
	FindByCode(ctx context.Context, code Code) (*ShortLink, error)
	FindByURL(ctx context.Context, url string) (*ShortLink, error)
	GetByID(ctx context.Context, id string) (*ShortLink, error)
	List(ctx context.Context) ([]*ShortLink, error)

	// Page returns one page of records ordered newest first, plus the
	// total record count for pagination metadata.
	Page(ctx context.Context, page, limit int) ([]*ShortLink, int64, error)

	// IncrementViews adds one to the view counter of the record with the
	// given id.
	IncrementViews(ctx context.Context, id string) error

	Update(ctx context.Context, link *ShortLink) error
	Delete(ctx context.Context, id string) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

package shortlink

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Resolver maps inbound short codes to their stored URL and counts views.
type Resolver struct {
	store  Store
	logger *zap.Logger
}

// NewResolver creates a resolver backed by store.
func NewResolver(store Store, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  store,
		logger: logger,
	}
}

// Resolve returns the record behind code after bumping its view counter.
// The increment is best effort: redirecting the visitor is the primary
// contract, so a failed counter update is logged and resolution still
// succeeds. A miss returns ErrNotFound and alters nothing.
func (r *Resolver) Resolve(ctx context.Context, code Code) (*ShortLink, error) {
	link, err := r.store.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("look up code: %w", err)
	}

	if err := r.store.IncrementViews(ctx, link.ID); err != nil {
		r.logger.Warn("failed to increment views",
			zap.String("code", string(code)),
			zap.String("id", link.ID),
			zap.Error(err),
		)
	} else {
		link.Views++
	}

	return link, nil
}

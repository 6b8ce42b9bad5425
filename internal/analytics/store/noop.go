package store

import (
	"context"

	"go.uber.org/zap"

	"cutme/internal/analytics"
)

// Noop logs events instead of persisting them. Used when no analytics
// backend is configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a logging-only analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	n.logger.Info("link created",
		zap.String("code", event.Code),
		zap.String("url", event.URL),
		zap.Bool("custom", event.Custom),
	)

	return nil
}

func (n *Noop) SaveLinkVisited(_ context.Context, event *analytics.LinkVisitedEvent) error {
	n.logger.Info("link visited",
		zap.String("code", event.Code),
		zap.String("referrer", event.Referrer),
		zap.Time("visitedAt", event.VisitedAt),
	)

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Noop)(nil)

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"cutme/internal/analytics"
	"cutme/internal/messaging"
	"cutme/internal/middleware"
	"cutme/internal/qr"
	"cutme/internal/shortlink"
)

// LinkHandler handles shortening, resolution, and record operations.
type LinkHandler struct {
	engine         *shortlink.Engine
	resolver       *shortlink.Resolver
	store          shortlink.Store
	publishCreated messaging.Publish[analytics.LinkCreatedEvent]
	publishVisited messaging.Publish[analytics.LinkVisitedEvent]
	logger         *zap.Logger
}

// NewLinkHandler creates the handler with its collaborators injected.
func NewLinkHandler(
	engine *shortlink.Engine,
	resolver *shortlink.Resolver,
	store shortlink.Store,
	publishCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishVisited messaging.Publish[analytics.LinkVisitedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		engine:         engine,
		resolver:       resolver,
		store:          store,
		publishCreated: publishCreated,
		publishVisited: publishVisited,
		logger:         logger,
	}
}

// Shorten creates a short URL for the request body's URL, or returns the
// existing one when the URL was shortened before.
func (h *LinkHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	result, err := h.engine.Shorten(ctx, req.Body.URL)
	if err != nil {
		return nil, h.storeError(err)
	}

	return h.shortenResponse(ctx, result, false), nil
}

// ShortenCustom creates a short URL with the caller-chosen code.
func (h *LinkHandler) ShortenCustom(ctx context.Context, req *ShortenCustomRequest) (*ShortenResponse, error) {
	result, err := h.engine.ShortenCustom(ctx, req.Body.URL, shortlink.Code(req.Body.Code))
	if err != nil {
		if errors.Is(err, shortlink.ErrCodeTaken) {
			return nil, huma.Error400BadRequest("short code already in use")
		}

		return nil, h.storeError(err)
	}

	return h.shortenResponse(ctx, result, true), nil
}

// Redirect resolves a short code and 302-redirects to the stored URL.
func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	link, err := h.resolver.Resolve(ctx, shortlink.Code(req.Code))
	if err != nil {
		return nil, h.storeError(err)
	}

	meta := middleware.MetaFromContext(ctx)

	if err := h.publishVisited(&analytics.LinkVisitedEvent{
		Code:      string(link.Code),
		URL:       link.URL,
		VisitedAt: time.Now(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	}); err != nil {
		h.logger.Error("failed to publish visit event",
			zap.String("code", string(link.Code)),
			zap.Error(err),
		)
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: link.URL,
	}, nil
}

// GetByID returns the record with the given store id.
func (h *LinkHandler) GetByID(ctx context.Context, req *GetByIDRequest) (*RecordResponse, error) {
	link, err := h.store.GetByID(ctx, req.ID)
	if err != nil {
		return nil, h.storeError(err)
	}

	return &RecordResponse{Body: toRecord(link)}, nil
}

func (h *LinkHandler) shortenResponse(ctx context.Context, result *shortlink.Result, custom bool) *ShortenResponse {
	if result.IsNew {
		meta := middleware.MetaFromContext(ctx)

		if err := h.publishCreated(&analytics.LinkCreatedEvent{
			ID:        result.Link.ID,
			Code:      string(result.Link.Code),
			URL:       result.Link.URL,
			Custom:    custom,
			CreatedAt: result.Link.CreatedAt,
			ClientIP:  meta.ClientIP,
			UserAgent: meta.UserAgent,
		}); err != nil {
			h.logger.Error("failed to publish create event",
				zap.String("code", string(result.Link.Code)),
				zap.Error(err),
			)
		}
	}

	resp := &ShortenResponse{Status: http.StatusCreated}
	if !result.IsNew {
		resp.Status = http.StatusOK
	}

	resp.Body.NewURL = result.ShortURL
	resp.Body.Code = string(result.Link.Code)

	dataURL, err := qr.DataURL(result.ShortURL)
	if err != nil {
		// The short URL is still usable without its QR image.
		h.logger.Warn("failed to encode qr code",
			zap.String("code", string(result.Link.Code)),
			zap.Error(err),
		)
	} else {
		resp.Body.QRCode = dataURL
	}

	return resp
}

// storeError maps domain errors to HTTP responses.
func (h *LinkHandler) storeError(err error) error {
	if errors.Is(err, shortlink.ErrNotFound) {
		return huma.Error404NotFound("short url not found")
	}

	h.logger.Error("store operation failed", zap.Error(err))

	return huma.Error500InternalServerError(err.Error())
}

package handlers

import (
	"context"
	"net/http"

	"cutme/internal/shortlink"
)

// Update overwrites a record's mutable fields. Administrative passthrough
// to the store; the core flow never calls it.
func (h *LinkHandler) Update(ctx context.Context, req *UpdateRequest) (*RecordResponse, error) {
	link := &shortlink.ShortLink{
		ID:    req.ID,
		URL:   shortlink.NormalizeURL(req.Body.URL),
		Code:  shortlink.Code(req.Body.Code),
		Views: req.Body.Views,
	}

	if err := h.store.Update(ctx, link); err != nil {
		return nil, h.storeError(err)
	}

	return &RecordResponse{Body: toRecord(link)}, nil
}

// Delete removes a record. Administrative only.
func (h *LinkHandler) Delete(ctx context.Context, req *DeleteRequest) (*DeleteResponse, error) {
	if err := h.store.Delete(ctx, req.ID); err != nil {
		return nil, h.storeError(err)
	}

	return &DeleteResponse{Status: http.StatusNoContent}, nil
}

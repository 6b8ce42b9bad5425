package handlers

import (
	"context"
)

// List returns every stored record. Kept for compatibility with the
// original dump endpoint; prefer the paginated listing.
func (h *LinkHandler) List(ctx context.Context, _ *struct{}) (*ListResponse, error) {
	links, err := h.store.List(ctx)
	if err != nil {
		return nil, h.storeError(err)
	}

	records := make([]LinkRecord, 0, len(links))
	for _, link := range links {
		records = append(records, toRecord(link))
	}

	return &ListResponse{Body: records}, nil
}

// Page returns one page of records, newest first, with pagination
// metadata.
func (h *LinkHandler) Page(ctx context.Context, req *PageRequest) (*PageResponse, error) {
	links, total, err := h.store.Page(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, h.storeError(err)
	}

	records := make([]LinkRecord, 0, len(links))
	for _, link := range links {
		records = append(records, toRecord(link))
	}

	totalPages := total / int64(req.Limit)
	if total%int64(req.Limit) != 0 {
		totalPages++
	}

	resp := &PageResponse{}
	resp.Body.Data = records
	resp.Body.Pagination = Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}

	return resp, nil
}

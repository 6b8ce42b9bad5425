package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cutme/internal/shortlink"
)

// RestDB is a shortlink.Store backed by a restdb.io-style remote document
// collection reached over HTTP. Records are queried with the `q` filter
// parameter and partially updated with `$inc` operators; authentication is
// a static api key header.
//
// The remote collection enforces no uniqueness constraint, so Create is a
// check-then-create sequence. Two concurrent creates that pick the same
// code can both succeed; closing that window needs a backend with a
// conditional insert (see Postgres).
type RestDB struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRestDB creates a client for the collection endpoint at baseURL.
func NewRestDB(baseURL, apiKey string) *RestDB {
	return &RestDB{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// record is the wire representation of a ShortLink in the collection. The
// field names match the documents the service has always stored.
type record struct {
	ID    string `json:"_id,omitempty"`
	URL   string `json:"url"`
	Code  string `json:"urlcut"`
	Views int64  `json:"views"`
}

func (r record) toLink() *shortlink.ShortLink {
	return &shortlink.ShortLink{
		ID:    r.ID,
		URL:   r.URL,
		Code:  shortlink.Code(r.Code),
		Views: r.Views,
	}
}

func (s *RestDB) Create(ctx context.Context, link *shortlink.ShortLink) error {
	// The collection has no unique index, so uniqueness is checked here
	// before creating. See the type comment for the race this leaves open.
	_, err := s.FindByCode(ctx, link.Code)
	if err == nil {
		return shortlink.ErrCodeTaken
	}

	if !errors.Is(err, shortlink.ErrNotFound) {
		return err
	}

	body := record{
		URL:   link.URL,
		Code:  string(link.Code),
		Views: link.Views,
	}

	var created record
	if err := s.do(ctx, http.MethodPost, "", nil, body, &created); err != nil {
		return err
	}

	link.ID = created.ID
	link.CreatedAt = time.Now()

	return nil
}

func (s *RestDB) FindByCode(ctx context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
	return s.findOne(ctx, "urlcut", string(code))
}

func (s *RestDB) FindByURL(ctx context.Context, rawURL string) (*shortlink.ShortLink, error) {
	return s.findOne(ctx, "url", rawURL)
}

func (s *RestDB) GetByID(ctx context.Context, id string) (*shortlink.ShortLink, error) {
	var rec record
	if err := s.do(ctx, http.MethodGet, "/"+id, nil, nil, &rec); err != nil {
		return nil, err
	}

	return rec.toLink(), nil
}

func (s *RestDB) List(ctx context.Context) ([]*shortlink.ShortLink, error) {
	var recs []record
	if err := s.do(ctx, http.MethodGet, "", nil, nil, &recs); err != nil {
		return nil, err
	}

	links := make([]*shortlink.ShortLink, 0, len(recs))
	for _, rec := range recs {
		links = append(links, rec.toLink())
	}

	return links, nil
}

func (s *RestDB) Page(ctx context.Context, page, limit int) ([]*shortlink.ShortLink, int64, error) {
	skip := (page - 1) * limit

	query := url.Values{}
	query.Set("max", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))
	query.Set("h", `{"$orderby":{"_id":-1}}`)

	var recs []record
	if err := s.do(ctx, http.MethodGet, "", query, nil, &recs); err != nil {
		return nil, 0, err
	}

	total, err := s.count(ctx)
	if err != nil {
		return nil, 0, err
	}

	links := make([]*shortlink.ShortLink, 0, len(recs))
	for _, rec := range recs {
		links = append(links, rec.toLink())
	}

	return links, total, nil
}

func (s *RestDB) IncrementViews(ctx context.Context, id string) error {
	body := map[string]map[string]int{"$inc": {"views": 1}}

	return s.do(ctx, http.MethodPut, "/"+id, nil, body, nil)
}

func (s *RestDB) Update(ctx context.Context, link *shortlink.ShortLink) error {
	body := record{
		URL:   link.URL,
		Code:  string(link.Code),
		Views: link.Views,
	}

	return s.do(ctx, http.MethodPut, "/"+link.ID, nil, body, nil)
}

func (s *RestDB) Delete(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/"+id, nil, nil, nil)
}

func (s *RestDB) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("max", "1")

	var recs []record

	return s.do(ctx, http.MethodGet, "", query, nil, &recs)
}

func (s *RestDB) findOne(ctx context.Context, field, value string) (*shortlink.ShortLink, error) {
	filter, err := json.Marshal(map[string]string{field: value})
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("q", string(filter))

	var recs []record
	if err := s.do(ctx, http.MethodGet, "", query, nil, &recs); err != nil {
		return nil, err
	}

	if len(recs) == 0 {
		return nil, shortlink.ErrNotFound
	}

	return recs[0].toLink(), nil
}

// totalsResponse is the shape returned when the totals parameter is set.
type totalsResponse struct {
	Totals struct {
		Total int64 `json:"total"`
	} `json:"totals"`
}

func (s *RestDB) count(ctx context.Context) (int64, error) {
	query := url.Values{}
	query.Set("totals", "true")
	query.Set("max", "1")

	var resp totalsResponse
	if err := s.do(ctx, http.MethodGet, "", query, nil, &resp); err != nil {
		return 0, err
	}

	return resp.Totals.Total, nil
}

func (s *RestDB) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-apikey", s.apiKey)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return shortlink.ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s returned %d", shortlink.ErrUnavailable, method, path, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", shortlink.ErrUnavailable, err)
	}

	return nil
}

// Compile-time check.
var _ shortlink.Store = (*RestDB)(nil)

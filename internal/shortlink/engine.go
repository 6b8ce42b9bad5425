package shortlink

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// maxAllocateAttempts bounds the regenerate-on-collision loop. With a
// 62^10 code space the loop effectively never runs more than once.
const maxAllocateAttempts = 5

// Engine allocates unique short codes and keeps shortening idempotent per
// URL: the same long URL always resolves to one record.
type Engine struct {
	store    Store
	generate Generator
	domain   string
}

// NewEngine creates a shortening engine. domain is the public-facing
// prefix short URLs are composed with.
func NewEngine(store Store, generate Generator, domain string) *Engine {
	return &Engine{
		store:    store,
		generate: generate,
		domain:   strings.TrimSuffix(domain, "/"),
	}
}

// Shorten returns a short URL for rawURL, creating a record with a freshly
// generated code only when the normalized URL has not been shortened
// before.
func (e *Engine) Shorten(ctx context.Context, rawURL string) (*Result, error) {
	normalized := NormalizeURL(rawURL)

	if existing, err := e.findExisting(ctx, normalized); existing != nil || err != nil {
		return existing, err
	}

	for range maxAllocateAttempts {
		link := &ShortLink{
			URL:  normalized,
			Code: e.generate(),
		}

		err := e.store.Create(ctx, link)
		if errors.Is(err, ErrCodeTaken) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("create short link: %w", err)
		}

		return e.result(link, true), nil
	}

	return nil, ErrCodeSpaceExhausted
}

// ShortenCustom is Shorten with a caller-chosen code. It fails with
// ErrCodeTaken when the code already belongs to another record and leaves
// no state behind in that case. When the URL itself was shortened before,
// the existing record wins and the custom code is ignored.
func (e *Engine) ShortenCustom(ctx context.Context, rawURL string, code Code) (*Result, error) {
	normalized := NormalizeURL(rawURL)

	if existing, err := e.findExisting(ctx, normalized); existing != nil || err != nil {
		return existing, err
	}

	link := &ShortLink{
		URL:  normalized,
		Code: code,
	}

	if err := e.store.Create(ctx, link); err != nil {
		if errors.Is(err, ErrCodeTaken) {
			return nil, err
		}

		return nil, fmt.Errorf("create short link: %w", err)
	}

	return e.result(link, true), nil
}

// ShortURL composes the public short URL for a code.
func (e *Engine) ShortURL(code Code) string {
	return fmt.Sprintf("%s/%s", e.domain, code)
}

func (e *Engine) findExisting(ctx context.Context, normalized string) (*Result, error) {
	existing, err := e.store.FindByURL(ctx, normalized)
	if err == nil {
		return e.result(existing, false), nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("look up url: %w", err)
	}

	return nil, nil //nolint:nilnil // absence is not an error here
}

func (e *Engine) result(link *ShortLink, isNew bool) *Result {
	return &Result{
		Link:     link,
		ShortURL: e.ShortURL(link.Code),
		IsNew:    isNew,
	}
}

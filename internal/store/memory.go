package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"cutme/internal/shortlink"
)

// Memory is an in-memory implementation of shortlink.Store used in tests
// and local development.
type Memory struct {
	mu    sync.RWMutex
	links []*shortlink.ShortLink // insertion order, oldest first
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Create(_ context.Context, link *shortlink.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.links {
		if existing.Code == link.Code {
			return shortlink.ErrCodeTaken
		}
	}

	link.ID = uuid.NewString()
	link.CreatedAt = time.Now()

	stored := *link
	m.links = append(m.links, &stored)

	return nil
}

func (m *Memory) FindByCode(_ context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, link := range m.links {
		if link.Code == code {
			found := *link

			return &found, nil
		}
	}

	return nil, shortlink.ErrNotFound
}

func (m *Memory) FindByURL(_ context.Context, url string) (*shortlink.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, link := range m.links {
		if link.URL == url {
			found := *link

			return &found, nil
		}
	}

	return nil, shortlink.ErrNotFound
}

func (m *Memory) GetByID(_ context.Context, id string) (*shortlink.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if link := m.byID(id); link != nil {
		found := *link

		return &found, nil
	}

	return nil, shortlink.ErrNotFound
}

func (m *Memory) List(_ context.Context) ([]*shortlink.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*shortlink.ShortLink, 0, len(m.links))

	for _, link := range m.links {
		found := *link
		out = append(out, &found)
	}

	return out, nil
}

func (m *Memory) Page(_ context.Context, page, limit int) ([]*shortlink.ShortLink, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := int64(len(m.links))
	skip := (page - 1) * limit

	out := make([]*shortlink.ShortLink, 0, limit)

	// Newest first: walk the insertion slice backwards.
	for i := len(m.links) - 1 - skip; i >= 0 && len(out) < limit; i-- {
		found := *m.links[i]
		out = append(out, &found)
	}

	return out, total, nil
}

func (m *Memory) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link := m.byID(id)
	if link == nil {
		return shortlink.ErrNotFound
	}

	link.Views++

	return nil
}

func (m *Memory) Update(_ context.Context, updated *shortlink.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link := m.byID(updated.ID)
	if link == nil {
		return shortlink.ErrNotFound
	}

	link.URL = updated.URL
	link.Code = updated.Code
	link.Views = updated.Views

	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, link := range m.links {
		if link.ID == id {
			m.links = append(m.links[:i], m.links[i+1:]...)

			return nil
		}
	}

	return shortlink.ErrNotFound
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}

// byID must be called with the lock held.
func (m *Memory) byID(id string) *shortlink.ShortLink {
	for _, link := range m.links {
		if link.ID == id {
			return link
		}
	}

	return nil
}

// Compile-time check.
var _ shortlink.Store = (*Memory)(nil)

package handlers_test

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutme/internal/shortlink"
)

// unavailableStore fails every operation with ErrUnavailable.
type unavailableStore struct{}

func (s *unavailableStore) Create(_ context.Context, _ *shortlink.ShortLink) error {
	return shortlink.ErrUnavailable
}

func (s *unavailableStore) FindByCode(_ context.Context, _ shortlink.Code) (*shortlink.ShortLink, error) {
	return nil, shortlink.ErrUnavailable
}

func (s *unavailableStore) FindByURL(_ context.Context, _ string) (*shortlink.ShortLink, error) {
	return nil, shortlink.ErrUnavailable
}

func (s *unavailableStore) GetByID(_ context.Context, _ string) (*shortlink.ShortLink, error) {
	return nil, shortlink.ErrUnavailable
}

func (s *unavailableStore) List(_ context.Context) ([]*shortlink.ShortLink, error) {
	return nil, shortlink.ErrUnavailable
}

func (s *unavailableStore) Page(_ context.Context, _, _ int) ([]*shortlink.ShortLink, int64, error) {
	return nil, 0, shortlink.ErrUnavailable
}

func (s *unavailableStore) IncrementViews(_ context.Context, _ string) error {
	return shortlink.ErrUnavailable
}

func (s *unavailableStore) Update(_ context.Context, _ *shortlink.ShortLink) error {
	return shortlink.ErrUnavailable
}

func (s *unavailableStore) Delete(_ context.Context, _ string) error {
	return shortlink.ErrUnavailable
}

func (s *unavailableStore) Ping(_ context.Context) error {
	return shortlink.ErrUnavailable
}

var _ shortlink.Store = (*unavailableStore)(nil)

// assertStatus checks the HTTP status carried by a huma error.
func assertStatus(t *testing.T, err error, expected int) {
	t.Helper()

	var statusErr huma.StatusError

	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, expected, statusErr.GetStatus())
}

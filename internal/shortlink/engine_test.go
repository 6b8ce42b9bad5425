package shortlink_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutme/internal/shortlink"
	"cutme/internal/store"
)

// sequenceGenerator returns codes from a fixed list, repeating the last
// one once the list runs out.
func sequenceGenerator(codes ...shortlink.Code) shortlink.Generator {
	i := 0

	return func() shortlink.Code {
		code := codes[min(i, len(codes)-1)]
		i++

		return code
	}
}

// collidingStore always reports the code as taken on Create.
type collidingStore struct {
	shortlink.Store
	creates int
}

func (s *collidingStore) Create(_ context.Context, _ *shortlink.ShortLink) error {
	s.creates++

	return shortlink.ErrCodeTaken
}

func (s *collidingStore) FindByURL(_ context.Context, _ string) (*shortlink.ShortLink, error) {
	return nil, shortlink.ErrNotFound
}

func TestEngine_Shorten(t *testing.T) {
	t.Run("creates a new link", func(t *testing.T) {
		memStore := store.NewMemory()
		engine := shortlink.NewEngine(memStore, sequenceGenerator("abc123XYZ0"), "http://localhost:8888")

		result, err := engine.Shorten(context.Background(), "https://example.com/page")

		require.NoError(t, err)
		assert.True(t, result.IsNew)
		assert.Equal(t, shortlink.Code("abc123XYZ0"), result.Link.Code)
		assert.Equal(t, "https://example.com/page", result.Link.URL)
		assert.Equal(t, "http://localhost:8888/abc123XYZ0", result.ShortURL)
		assert.NotEmpty(t, result.Link.ID)
	})

	t.Run("is idempotent per URL", func(t *testing.T) {
		memStore := store.NewMemory()
		engine := shortlink.NewEngine(memStore, sequenceGenerator("firstcode1", "secondcode"), "http://localhost:8888")

		first, err := engine.Shorten(context.Background(), "https://example.com")
		require.NoError(t, err)

		second, err := engine.Shorten(context.Background(), "https://example.com")
		require.NoError(t, err)

		assert.True(t, first.IsNew)
		assert.False(t, second.IsNew)
		assert.Equal(t, first.Link.Code, second.Link.Code)
		assert.Equal(t, first.Link.ID, second.Link.ID)

		links, err := memStore.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, links, 1, "repeated shorten must not create a second record")
	})

	t.Run("normalizes before matching", func(t *testing.T) {
		memStore := store.NewMemory()
		engine := shortlink.NewEngine(memStore, sequenceGenerator("firstcode1", "secondcode"), "http://localhost:8888")

		first, err := engine.Shorten(context.Background(), "https://example.com")
		require.NoError(t, err)

		// Bare host normalizes to the same URL
		second, err := engine.Shorten(context.Background(), "example.com")
		require.NoError(t, err)

		assert.False(t, second.IsNew)
		assert.Equal(t, first.Link.Code, second.Link.Code)
	})

	t.Run("retries on code collision", func(t *testing.T) {
		memStore := store.NewMemory()

		taken := &shortlink.ShortLink{URL: "https://other.example", Code: "takencode1"}
		require.NoError(t, memStore.Create(context.Background(), taken))

		engine := shortlink.NewEngine(memStore, sequenceGenerator("takencode1", "freshcode1"), "http://localhost:8888")

		result, err := engine.Shorten(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, shortlink.Code("freshcode1"), result.Link.Code)
	})

	t.Run("gives up after bounded attempts", func(t *testing.T) {
		colliding := &collidingStore{}
		engine := shortlink.NewEngine(colliding, sequenceGenerator("samecode12"), "http://localhost:8888")

		_, err := engine.Shorten(context.Background(), "https://example.com")

		require.ErrorIs(t, err, shortlink.ErrCodeSpaceExhausted)
		assert.Equal(t, 5, colliding.creates)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		engine := shortlink.NewEngine(&unavailableStore{}, sequenceGenerator("anycode123"), "http://localhost:8888")

		_, err := engine.Shorten(context.Background(), "https://example.com")

		assert.ErrorIs(t, err, shortlink.ErrUnavailable)
	})
}

// unavailableStore fails every lookup with ErrUnavailable.
type unavailableStore struct {
	shortlink.Store
}

func (s *unavailableStore) FindByURL(_ context.Context, _ string) (*shortlink.ShortLink, error) {
	return nil, shortlink.ErrUnavailable
}

func TestEngine_ShortenCustom(t *testing.T) {
	t.Run("creates a link with the chosen code", func(t *testing.T) {
		memStore := store.NewMemory()
		engine := shortlink.NewEngine(memStore, sequenceGenerator("unused0000"), "http://localhost:8888")

		result, err := engine.ShortenCustom(context.Background(), "https://example.com", "mycode")

		require.NoError(t, err)
		assert.True(t, result.IsNew)
		assert.Equal(t, shortlink.Code("mycode"), result.Link.Code)
		assert.Equal(t, "http://localhost:8888/mycode", result.ShortURL)
	})

	t.Run("rejects a taken code without side effects", func(t *testing.T) {
		memStore := store.NewMemory()
		engine := shortlink.NewEngine(memStore, sequenceGenerator("unused0000"), "http://localhost:8888")

		_, err := engine.ShortenCustom(context.Background(), "https://first.example", "mycode")
		require.NoError(t, err)

		_, err = engine.ShortenCustom(context.Background(), "https://second.example", "mycode")

		require.ErrorIs(t, err, shortlink.ErrCodeTaken)

		links, err := memStore.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, links, 1, "failed custom shorten must leave no record")
	})

	t.Run("existing URL wins over the custom code", func(t *testing.T) {
		memStore := store.NewMemory()
		engine := shortlink.NewEngine(memStore, sequenceGenerator("generated0"), "http://localhost:8888")

		first, err := engine.Shorten(context.Background(), "https://example.com")
		require.NoError(t, err)

		result, err := engine.ShortenCustom(context.Background(), "https://example.com", "different")

		require.NoError(t, err)
		assert.False(t, result.IsNew)
		assert.Equal(t, first.Link.Code, result.Link.Code)

		_, err = memStore.FindByCode(context.Background(), "different")
		assert.ErrorIs(t, err, shortlink.ErrNotFound)
	})
}

func TestEngine_ShortURL(t *testing.T) {
	t.Run("trims trailing domain slash", func(t *testing.T) {
		engine := shortlink.NewEngine(store.NewMemory(), sequenceGenerator("abc"), "http://localhost:8888/")

		assert.Equal(t, "http://localhost:8888/abc", engine.ShortURL("abc"))
	})
}

package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutme/internal/shortlink"
	"cutme/internal/store"
)

// collectionServer emulates a restdb.io-style document collection for a
// single set of records.
type collectionServer struct {
	records []map[string]any
	// creates counts POST requests received.
	creates int
	// lastPartial holds the body of the last PUT request.
	lastPartial map[string]any
}

func (c *collectionServer) handler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-apikey"))

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			c.handleList(t, w, r)
		case r.Method == http.MethodPost && r.URL.Path == "/":
			c.handleCreate(t, w, r)
		case r.Method == http.MethodPut:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			c.lastPartial = body
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))
		case r.Method == http.MethodGet:
			c.handleGetOne(w, r)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (c *collectionServer) handleList(t *testing.T, w http.ResponseWriter, r *http.Request) {
	t.Helper()

	if r.URL.Query().Get("totals") == "true" {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"totals": map[string]any{"total": len(c.records)},
		})

		return
	}

	matched := c.records

	if q := r.URL.Query().Get("q"); q != "" {
		var filter map[string]string
		require.NoError(t, json.Unmarshal([]byte(q), &filter))

		matched = nil
		for _, rec := range c.records {
			hit := true
			for field, want := range filter {
				if rec[field] != want {
					hit = false
				}
			}
			if hit {
				matched = append(matched, rec)
			}
		}
	}

	if matched == nil {
		matched = []map[string]any{}
	}

	_ = json.NewEncoder(w).Encode(matched)
}

func (c *collectionServer) handleCreate(t *testing.T, w http.ResponseWriter, r *http.Request) {
	t.Helper()

	c.creates++

	var rec map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))

	rec["_id"] = "generated-id"
	c.records = append(c.records, rec)

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(rec)
}

func (c *collectionServer) handleGetOne(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[1:]
	for _, rec := range c.records {
		if rec["_id"] == id {
			_ = json.NewEncoder(w).Encode(rec)

			return
		}
	}

	w.WriteHeader(http.StatusNotFound)
}

func newRestDB(t *testing.T, c *collectionServer) *store.RestDB {
	t.Helper()

	server := httptest.NewServer(c.handler(t))
	t.Cleanup(server.Close)

	return store.NewRestDB(server.URL, "test-key")
}

func TestRestDB_Create(t *testing.T) {
	t.Run("creates and adopts the assigned id", func(t *testing.T) {
		coll := &collectionServer{}
		s := newRestDB(t, coll)

		link := &shortlink.ShortLink{URL: "https://example.com", Code: "abc123"}
		err := s.Create(context.Background(), link)

		require.NoError(t, err)
		assert.Equal(t, "generated-id", link.ID)
		assert.Equal(t, 1, coll.creates)
	})

	t.Run("rejects a taken code without creating", func(t *testing.T) {
		coll := &collectionServer{records: []map[string]any{
			{"_id": "1", "url": "https://a.example", "urlcut": "abc123", "views": float64(0)},
		}}
		s := newRestDB(t, coll)

		err := s.Create(context.Background(), &shortlink.ShortLink{URL: "https://b.example", Code: "abc123"})

		require.ErrorIs(t, err, shortlink.ErrCodeTaken)
		assert.Zero(t, coll.creates)
	})
}

func TestRestDB_Find(t *testing.T) {
	coll := &collectionServer{records: []map[string]any{
		{"_id": "1", "url": "https://a.example", "urlcut": "abc123", "views": float64(7)},
		{"_id": "2", "url": "https://b.example", "urlcut": "def456", "views": float64(0)},
	}}
	s := newRestDB(t, coll)

	t.Run("by code", func(t *testing.T) {
		link, err := s.FindByCode(context.Background(), "def456")

		require.NoError(t, err)
		assert.Equal(t, "2", link.ID)
		assert.Equal(t, "https://b.example", link.URL)
	})

	t.Run("by url", func(t *testing.T) {
		link, err := s.FindByURL(context.Background(), "https://a.example")

		require.NoError(t, err)
		assert.Equal(t, shortlink.Code("abc123"), link.Code)
		assert.Equal(t, int64(7), link.Views)
	})

	t.Run("by id", func(t *testing.T) {
		link, err := s.GetByID(context.Background(), "1")

		require.NoError(t, err)
		assert.Equal(t, shortlink.Code("abc123"), link.Code)
	})

	t.Run("miss returns not found", func(t *testing.T) {
		_, err := s.FindByCode(context.Background(), "missing")
		assert.ErrorIs(t, err, shortlink.ErrNotFound)

		_, err = s.GetByID(context.Background(), "no-such-id")
		assert.ErrorIs(t, err, shortlink.ErrNotFound)
	})
}

func TestRestDB_IncrementViews(t *testing.T) {
	coll := &collectionServer{records: []map[string]any{
		{"_id": "1", "url": "https://a.example", "urlcut": "abc123", "views": float64(0)},
	}}
	s := newRestDB(t, coll)

	err := s.IncrementViews(context.Background(), "1")

	require.NoError(t, err)
	require.NotNil(t, coll.lastPartial)
	assert.Equal(t, map[string]any{"$inc": map[string]any{"views": float64(1)}}, coll.lastPartial)
}

func TestRestDB_Page(t *testing.T) {
	coll := &collectionServer{records: []map[string]any{
		{"_id": "1", "url": "https://a.example", "urlcut": "abc123", "views": float64(0)},
		{"_id": "2", "url": "https://b.example", "urlcut": "def456", "views": float64(0)},
	}}
	s := newRestDB(t, coll)

	links, total, err := s.Page(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, links, 2)
}

func TestRestDB_Unavailable(t *testing.T) {
	t.Run("server errors map to unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)

		s := store.NewRestDB(server.URL, "test-key")

		_, err := s.List(context.Background())

		assert.ErrorIs(t, err, shortlink.ErrUnavailable)
	})

	t.Run("network errors map to unavailable", func(t *testing.T) {
		s := store.NewRestDB("http://127.0.0.1:1", "test-key")

		err := s.Ping(context.Background())

		assert.ErrorIs(t, err, shortlink.ErrUnavailable)
	})
}

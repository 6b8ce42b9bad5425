package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"cutme/internal/shortlink"
)

// RedisCache wraps a shortlink.Store with Redis caching for the hot
// lookup paths (FindByCode on every redirect, FindByURL on every shorten).
// Entries expire after ttl, which also bounds how stale a cached view
// counter can get.
type RedisCache struct {
	store   shortlink.Store
	client  *redis.Client
	prefix  string
	urlsKey string
	ttl     time.Duration
}

// NewRedisCache creates a caching decorator around store.
func NewRedisCache(store shortlink.Store, client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		store:   store,
		client:  client,
		prefix:  "link:",
		urlsKey: "link_urls",
		ttl:     ttl,
	}
}

// Save-through: create in the underlying store, then cache.
func (r *RedisCache) Create(ctx context.Context, link *shortlink.ShortLink) error {
	if err := r.store.Create(ctx, link); err != nil {
		return err
	}

	r.cache(ctx, link)

	return nil
}

func (r *RedisCache) FindByCode(ctx context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
	if link, err := r.fromCache(ctx, code); err == nil {
		return link, nil
	}

	link, err := r.store.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cache(ctx, link)

	return link, nil
}

func (r *RedisCache) FindByURL(ctx context.Context, url string) (*shortlink.ShortLink, error) {
	// The urls hash maps url -> code; the entry itself lives under the code key.
	code, err := r.client.HGet(ctx, r.urlsKey, url).Result()
	if err == nil {
		if link, err := r.fromCache(ctx, shortlink.Code(code)); err == nil {
			return link, nil
		}
	}

	link, err := r.store.FindByURL(ctx, url)
	if err != nil {
		return nil, err
	}

	r.cache(ctx, link)

	return link, nil
}

func (r *RedisCache) GetByID(ctx context.Context, id string) (*shortlink.ShortLink, error) {
	return r.store.GetByID(ctx, id)
}

func (r *RedisCache) List(ctx context.Context) ([]*shortlink.ShortLink, error) {
	return r.store.List(ctx)
}

func (r *RedisCache) Page(ctx context.Context, page, limit int) ([]*shortlink.ShortLink, int64, error) {
	return r.store.Page(ctx, page, limit)
}

func (r *RedisCache) IncrementViews(ctx context.Context, id string) error {
	// The cached copy keeps its old counter until the TTL expires; the
	// authoritative count lives in the underlying store.
	return r.store.IncrementViews(ctx, id)
}

func (r *RedisCache) Update(ctx context.Context, link *shortlink.ShortLink) error {
	if err := r.store.Update(ctx, link); err != nil {
		return err
	}

	r.invalidate(ctx, link)

	return nil
}

func (r *RedisCache) Delete(ctx context.Context, id string) error {
	link, err := r.store.GetByID(ctx, id)
	if err == nil {
		r.invalidate(ctx, link)
	}

	return r.store.Delete(ctx, id)
}

func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return err
	}

	return r.store.Ping(ctx)
}

func (r *RedisCache) fromCache(ctx context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, shortlink.ErrNotFound
	}

	views, _ := strconv.ParseInt(fields["views"], 10, 64)

	var createdAt time.Time
	if nanos, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
		createdAt = time.Unix(0, nanos)
	}

	return &shortlink.ShortLink{
		ID:        fields["id"],
		URL:       fields["url"],
		Code:      shortlink.Code(fields["code"]),
		Views:     views,
		CreatedAt: createdAt,
	}, nil
}

func (r *RedisCache) cache(ctx context.Context, link *shortlink.ShortLink) {
	key := r.prefix + string(link.Code)

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"id":         link.ID,
		"url":        link.URL,
		"code":       string(link.Code),
		"views":      link.Views,
		"created_at": link.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	pipe.HSet(ctx, r.urlsKey, link.URL, string(link.Code))

	// Cache failures are invisible to callers; the store stays authoritative.
	_, _ = pipe.Exec(ctx)
}

func (r *RedisCache) invalidate(ctx context.Context, link *shortlink.ShortLink) {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.prefix+string(link.Code))
	pipe.HDel(ctx, r.urlsKey, link.URL)
	_, _ = pipe.Exec(ctx)
}

// Compile-time check.
var _ shortlink.Store = (*RedisCache)(nil)

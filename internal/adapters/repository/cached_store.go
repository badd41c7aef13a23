package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ domain.KVStore = (*CachedStore)(nil)

// CachedStore is a read-through redis cache in front of a slower store.
// Writes go to the underlying store first and then drop the cached copy, so a
// failed write never leaves a value in the cache that the store does not have.
// A key whose cached copy could be neither dropped nor replaced is read from
// the underlying store until the cache can be cleared.
type CachedStore struct {
	next   domain.KVStore
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	mu    sync.Mutex
	stale map[string]struct{}
}

func NewCachedStore(next domain.KVStore, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		stale:  make(map[string]struct{}),
	}
}

func (r *CachedStore) cacheKey(key string) string {
	return fmt.Sprintf("kv:%s", key)
}

func (r *CachedStore) isStale(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.stale[key]
	return ok
}

func (r *CachedStore) markStale(key string, stale bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stale {
		r.stale[key] = struct{}{}
	} else {
		delete(r.stale, key)
	}
}

// refresh brings the cache in line with a value just written to the store:
// the cached copy is dropped, or overwritten when the drop fails.
func (r *CachedStore) refresh(ctx context.Context, key string, value []byte) {
	ck := r.cacheKey(key)

	delErr := r.cache.Del(ctx, ck).Err()
	if delErr == nil {
		r.markStale(key, false)
		return
	}

	if err := r.cache.Set(ctx, ck, value, r.ttl).Err(); err == nil {
		r.logger.Warn("cache invalidation failed, cached the new value instead", zap.String("key", key), zap.Error(delErr))
		r.markStale(key, false)
		return
	}

	r.logger.Error("cache out of sync, reading key from the store until it recovers", zap.String("key", key), zap.Error(delErr))
	r.markStale(key, true)
}

func (r *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	ck := r.cacheKey(key)

	if r.isStale(key) {
		if err := r.cache.Del(ctx, ck).Err(); err != nil {
			return r.next.Get(ctx, key)
		}
		r.markStale(key, false)
	}

	val, err := r.cache.Get(ctx, ck).Bytes()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	val, err = r.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if setErr := r.cache.Set(ctx, ck, val, r.ttl).Err(); setErr != nil {
		r.logger.Warn("cache fill failed", zap.String("key", key), zap.Error(setErr))
	}
	return val, nil
}

func (r *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.next.Set(ctx, key, value); err != nil {
		return err
	}
	r.refresh(ctx, key, value)
	return nil
}

package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

var _ domain.ProductLookup = (*CachedLookup)(nil)

// CachedLookup keeps catalogue answers in redis so rescanning the same
// product does not hit the network. Only successful answers are cached.
type CachedLookup struct {
	next   domain.ProductLookup
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedLookup(next domain.ProductLookup, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedLookup {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLookup{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (l *CachedLookup) LookupByBarcode(ctx context.Context, barcode string) (domain.Product, error) {
	key := "product:barcode:" + strings.TrimSpace(barcode)

	var product domain.Product
	if l.read(ctx, key, &product) {
		return product, nil
	}

	product, err := l.next.LookupByBarcode(ctx, barcode)
	if err != nil {
		return domain.Product{}, err
	}
	l.write(ctx, key, product)
	return product, nil
}

func (l *CachedLookup) SearchByName(ctx context.Context, query string) ([]domain.Product, error) {
	key := "product:search:" + strings.ToLower(strings.TrimSpace(query))

	var products []domain.Product
	if l.read(ctx, key, &products) {
		return products, nil
	}

	products, err := l.next.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}
	l.write(ctx, key, products)
	return products, nil
}

func (l *CachedLookup) read(ctx context.Context, key string, dst any) bool {
	val, err := l.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l.logger.Warn("product cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		l.logger.Warn("corrupted product cache entry, cleaning up", zap.String("key", key))
		l.cache.Del(ctx, key)
		return false
	}
	return true
}

func (l *CachedLookup) write(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, key, data, l.ttl).Err(); err != nil {
		l.logger.Warn("product cache write failed", zap.String("key", key), zap.Error(err))
	}
}

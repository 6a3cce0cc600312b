// Package cachedsearch puts a cache-aside layer in front of product search so
// a cashier retyping the same query does not hit the backend every time.
package cachedsearch

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jcmexdev/grocery-pos/internal/pkg/cache"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/ports"
)

var _ ports.ProductSearcher = (*Searcher)(nil)

type Searcher struct {
	next  ports.ProductSearcher
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

// New wraps next. Results live for ttl; queries are keyed case-insensitively.
func New(next ports.ProductSearcher, c cache.Cache, ttl time.Duration) *Searcher {
	return &Searcher{next: next, cache: c, ttl: ttl}
}

func (s *Searcher) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	key := s.cache.GenerateKey("search", strings.ToLower(strings.TrimSpace(query)))

	if products, ok := s.lookup(ctx, key); ok {
		return products, nil
	}

	// Concurrent misses for the same query share one backend call.
	v, err, _ := s.group.Do(key, func() (any, error) {
		if products, ok := s.lookup(ctx, key); ok {
			return products, nil
		}
		fresh, err := s.next.SearchProducts(ctx, query)
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, fresh)
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Product), nil
}

// A cache failure is logged and treated as a miss.
func (s *Searcher) lookup(ctx context.Context, key string) ([]entity.Product, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "search cache read failed", "key", key, "error", err)
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var products []entity.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		slog.WarnContext(ctx, "search cache entry unreadable", "key", key, "error", err)
		return nil, false
	}
	return products, true
}

func (s *Searcher) store(ctx context.Context, key string, products []entity.Product) {
	if products == nil {
		products = []entity.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		slog.WarnContext(ctx, "search cache write failed", "key", key, "error", err)
	}
}

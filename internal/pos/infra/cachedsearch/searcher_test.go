package cachedsearch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/grocery-pos/internal/pkg/cache"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

type countingSearcher struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (c *countingSearcher) SearchProducts(_ context.Context, q string) ([]entity.Product, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	if c.err != nil {
		return nil, c.err
	}
	if q == "none" {
		return nil, nil
	}
	return []entity.Product{{ID: 1, Name: "Fresh Milk 1L", Barcode: "GRO1", Price: decimal.RequireFromString("220.50"), Quantity: 4}}, nil
}

func TestSearcher_CachesByNormalizedQuery(t *testing.T) {
	backend := &countingSearcher{}
	s := New(backend, cache.NewMemoryCache("pos-terminal"), time.Minute)
	ctx := context.Background()

	first, err := s.SearchProducts(ctx, "Milk")
	require.NoError(t, err)
	second, err := s.SearchProducts(ctx, " milk ")
	require.NoError(t, err)

	assert.Equal(t, int32(1), backend.calls.Load())
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.True(t, second[0].Price.Equal(decimal.RequireFromString("220.50")))
}

func TestSearcher_CachesEmptyResults(t *testing.T) {
	backend := &countingSearcher{}
	s := New(backend, cache.NewMemoryCache("pos-terminal"), time.Minute)

	for range 3 {
		got, err := s.SearchProducts(context.Background(), "none")
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.Equal(t, int32(1), backend.calls.Load())
}

func TestSearcher_ErrorsAreNotCached(t *testing.T) {
	backend := &countingSearcher{err: errors.New("connection refused")}
	s := New(backend, cache.NewMemoryCache("pos-terminal"), time.Minute)

	_, err := s.SearchProducts(context.Background(), "milk")
	require.Error(t, err)

	backend.err = nil
	got, err := s.SearchProducts(context.Background(), "milk")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int32(2), backend.calls.Load())
}

func TestSearcher_CollapsesConcurrentMisses(t *testing.T) {
	backend := &countingSearcher{delay: 50 * time.Millisecond}
	s := New(backend, cache.NewMemoryCache("pos-terminal"), time.Minute)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.SearchProducts(context.Background(), "milk")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), backend.calls.Load())
}

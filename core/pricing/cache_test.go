package pricing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	loads atomic.Int32
	delay time.Duration
	err   error
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Load(_ context.Context) (*Table, error) {
	s.loads.Add(1)
	time.Sleep(s.delay)
	if s.err != nil {
		return nil, s.err
	}
	return NewTable(map[string]int64{"Bat Wing": 50}), nil
}

func TestCache_Get(t *testing.T) {
	src := &countingSource{}
	cache := NewCache(src, 0)
	assert.Equal(t, "counting", cache.SourceName())

	for i := 0; i < 3; i++ {
		table, err := cache.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(50), table.Price("bat wing"))
	}
	assert.Equal(t, int32(1), src.loads.Load())
}

func TestCache_CollapsesConcurrentLoads(t *testing.T) {
	src := &countingSource{delay: 50 * time.Millisecond}
	cache := NewCache(src, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.loads.Load())
}

func TestCache_Expiry(t *testing.T) {
	src := &countingSource{}
	cache := NewCache(src, time.Millisecond)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), src.loads.Load())
}

func TestCache_Invalidate(t *testing.T) {
	src := &countingSource{}
	cache := NewCache(src, 0)

	_, _ = cache.Get(context.Background())
	cache.Invalidate()
	_, _ = cache.Get(context.Background())

	assert.Equal(t, int32(2), src.loads.Load())
}

func TestCache_Error(t *testing.T) {
	src := &countingSource{err: errors.New("backend down")}
	cache := NewCache(src, 0)

	_, err := cache.Get(context.Background())
	assert.Error(t, err)

	// Failures are not cached.
	_, err = cache.Get(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(2), src.loads.Load())
}

func TestNewStaticCache(t *testing.T) {
	table := NewTable(map[string]int64{"Demon Horn": 1000})
	cache := NewStaticCache(table)

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, table, got)
	assert.Equal(t, "static", cache.SourceName())
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-normalizer/internal/core/cart"
	"cart-normalizer/internal/infrastructure/config"
)

func testCacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Hour,
		},
	}
}

func sampleSnapshot() cart.Snapshot {
	c := cart.New()
	c.AddItem(cart.Item{SKU: "DON002", Name: "Chocolate Iced Doughnut", Quantity: 1, Modifiers: []string{"sprinkles"}, Price: 1.09})
	return c.Snapshot()
}

// TestManagerSetGet 寫入後可查回相同的快照
func TestManagerSetGet(t *testing.T) {
	m := NewManager(testCacheConfig(10, time.Hour))
	defer m.Close()
	ctx := context.Background()

	snap := sampleSnapshot()
	require.NoError(t, m.Set(ctx, "small", "a chocolate donut with sprinkles", snap))

	got, err := m.Get(ctx, "small", "a chocolate donut with sprinkles")
	require.NoError(t, err)
	assert.Equal(t, snap, *got)
}

// TestManagerMiss 不同菜單或文本都是未命中
func TestManagerMiss(t *testing.T) {
	m := NewManager(testCacheConfig(10, time.Hour))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "small", "a coffee", sampleSnapshot()))

	_, err := m.Get(ctx, "large", "a coffee")
	assert.ErrorIs(t, err, ErrMiss)

	_, err = m.Get(ctx, "small", "two coffees")
	assert.ErrorIs(t, err, ErrMiss)
}

// TestManagerExpiry 過期條目視為未命中並被淘汰
func TestManagerExpiry(t *testing.T) {
	m := NewManager(testCacheConfig(10, time.Millisecond))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "small", "a coffee", sampleSnapshot()))
	time.Sleep(10 * time.Millisecond)

	_, err := m.Get(ctx, "small", "a coffee")
	assert.ErrorIs(t, err, ErrMiss)

	stats := m.Stats()
	assert.EqualValues(t, 1, stats["evictions"])
}

// TestManagerLRUEviction 容量滿時淘汰最少使用的條目
func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(testCacheConfig(2, time.Hour))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "small", "text-a", sampleSnapshot()))
	require.NoError(t, m.Set(ctx, "small", "text-b", sampleSnapshot()))

	// 存取 text-a 讓 text-b 成為淘汰對象
	_, err := m.Get(ctx, "small", "text-a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "small", "text-c", sampleSnapshot()))

	_, err = m.Get(ctx, "small", "text-b")
	assert.ErrorIs(t, err, ErrMiss)

	_, err = m.Get(ctx, "small", "text-a")
	assert.NoError(t, err)
}

// TestManagerStats 命中與未命中統計
func TestManagerStats(t *testing.T) {
	m := NewManager(testCacheConfig(10, time.Hour))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "small", "a coffee", sampleSnapshot()))
	_, _ = m.Get(ctx, "small", "a coffee")
	_, _ = m.Get(ctx, "small", "missing")

	stats := m.Stats()
	assert.EqualValues(t, 1, stats["hits"])
	assert.EqualValues(t, 1, stats["misses"])
	assert.Equal(t, 0.5, stats["hit_ratio"])
	assert.Equal(t, "memory", stats["backend"])
}

// TestNewDisabled 快取停用時回傳 nil
func TestNewDisabled(t *testing.T) {
	store, err := New(&config.Config{Cache: config.CacheConfig{Enabled: false}})
	require.NoError(t, err)
	assert.Nil(t, store)
}

package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moodchart/internal/structures"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

type countingMetrics struct {
	noopMetrics
	hits, misses int
}

func (c *countingMetrics) IncCacheHits()   { c.hits++ }
func (c *countingMetrics) IncCacheMisses() { c.misses++ }

func cacheConfig(enabled bool, size int) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10), &cacheTestLogger{})
	_, ok := c.Get("any")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0), &cacheTestLogger{})
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_SetAndGet(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1), &cacheTestLogger{})

	c.Set("key1", []byte("value1"))
	val, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("value1"), val)
}

func TestCacheProvider_Miss(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1), &cacheTestLogger{})

	val, ok := c.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCacheProvider_Overwrite(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1), &cacheTestLogger{})

	c.Set("key1", []byte("v1"))
	c.Set("key1", []byte("v2"))

	val, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), val)
}

func TestNoopCache_AlwaysMiss(t *testing.T) {
	c := &noopCache{}
	c.Set("key1", []byte("value1"))

	val, ok := c.Get("key1")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestInstrumentedCache_CountsHitsAndMisses(t *testing.T) {
	m := &countingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1), &cacheTestLogger{}, m)

	c.Get("a")
	c.Set("a", []byte("1"))
	c.Get("a")

	assert.Equal(t, 1, m.hits)
	assert.Equal(t, 1, m.misses)
}

func TestInstrumentedCache_DisabledSkipsMetrics(t *testing.T) {
	m := &countingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1), &cacheTestLogger{}, m)
	c.Get("a")
	assert.Equal(t, 0, m.misses)
	assert.IsType(t, &noopCache{}, c)
}

package generator

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"sync"
	"time"
)

// ── CachedClient — response caching ────────────────────────

const defaultCacheSize = 128

type cacheEntry struct {
	key      string
	response *LLMResponse
	storedAt time.Time
}

// Cache is a bounded LRU with per-entry TTL, keyed by prompt hash.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	order   *list.List
	entries map[string]*list.Element
	hits    int64
	misses  int64
}

func NewCache(maxSize int, ttl time.Duration) *Cache {
	if maxSize <= 0 {
		maxSize = defaultCacheSize
	}
	return &Cache{
		maxSize: maxSize,
		ttl:     ttl,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) get(key string) (*LLMResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	entry := elem.Value.(*cacheEntry)
	if c.ttl > 0 && time.Since(entry.storedAt) > c.ttl {
		c.order.Remove(elem)
		delete(c.entries, key)
		c.misses++
		return nil, false
	}
	c.order.MoveToFront(elem)
	c.hits++
	return entry.response, true
}

func (c *Cache) put(key string, resp *LLMResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).response = resp
		elem.Value.(*cacheEntry).storedAt = time.Now()
		c.order.MoveToFront(elem)
		return
	}
	for c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
	elem := c.order.PushFront(&cacheEntry{key: key, response: resp, storedAt: time.Now()})
	c.entries[key] = elem
}

// Stats reports hit and miss counts since startup.
func (c *Cache) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// CachedClient serves repeated prompts from the cache instead of
// calling the backend again. Errors are never cached.
type CachedClient struct {
	inner LLMClient
	cache *Cache
}

func NewCachedClient(inner LLMClient, cache *Cache) *CachedClient {
	return &CachedClient{inner: inner, cache: cache}
}

func (c *CachedClient) Generate(ctx context.Context, prompt string) (*LLMResponse, error) {
	key := cacheKey(prompt)
	if resp, ok := c.cache.get(key); ok {
		log.Printf("LLM cache hit for prompt %s", key[:12])
		return resp, nil
	}
	resp, err := c.inner.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, resp)
	return resp, nil
}

// ── TimedClient — call timing ──────────────────────────────

// Metrics accumulates latency figures across LLM calls.
type Metrics struct {
	mu       sync.Mutex
	calls    int64
	failures int64
	total    time.Duration
	min      time.Duration
	max      time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) record(elapsed time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if failed {
		m.failures++
	}
	m.total += elapsed
	if m.min == 0 || elapsed < m.min {
		m.min = elapsed
	}
	if elapsed > m.max {
		m.max = elapsed
	}
}

// MetricsSnapshot is a point-in-time copy safe to serialize.
type MetricsSnapshot struct {
	Calls      int64   `json:"calls"`
	Failures   int64   `json:"failures"`
	AvgSeconds float64 `json:"avg_seconds"`
	MinSeconds float64 `json:"min_seconds"`
	MaxSeconds float64 `json:"max_seconds"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Calls:      m.calls,
		Failures:   m.failures,
		MinSeconds: m.min.Seconds(),
		MaxSeconds: m.max.Seconds(),
	}
	if m.calls > 0 {
		snap.AvgSeconds = (m.total / time.Duration(m.calls)).Seconds()
	}
	return snap
}

// TimedClient records call latency around the wrapped backend.
type TimedClient struct {
	inner   LLMClient
	metrics *Metrics
}

func NewTimedClient(inner LLMClient, metrics *Metrics) *TimedClient {
	return &TimedClient{inner: inner, metrics: metrics}
}

func (t *TimedClient) Generate(ctx context.Context, prompt string) (*LLMResponse, error) {
	start := time.Now()
	resp, err := t.inner.Generate(ctx, prompt)
	elapsed := time.Since(start)
	t.metrics.record(elapsed, err != nil)
	log.Printf("LLM call took %.2fs", elapsed.Seconds())
	return resp, err
}

package synthesis

import (
	"context"
	"sync"

	"github.com/jask/devreports/internal/metrics"
)

// Cache memoizes successful syntheses for the process lifetime, keyed by
// the exact (paragraph, topic) pair. Errors are never cached, so a flaky
// call can be retried. There is no eviction; the cache grows with the
// distinct pairs requested, which is bounded by dataset size times topics
// searched in one session.
type Cache struct {
	provider Provider

	mu      sync.Mutex
	entries map[cacheKey]string
	hits    int
	misses  int
}

type cacheKey struct {
	paragraph string
	topic     string
}

// NewCache wraps provider with memoization.
func NewCache(provider Provider) *Cache {
	return &Cache{
		provider: provider,
		entries:  make(map[cacheKey]string),
	}
}

func (c *Cache) Name() string { return c.provider.Name() }

func (c *Cache) Available() bool { return c.provider.Available() }

// Synthesize returns the cached line when the pair has been seen, and
// delegates to the wrapped provider otherwise.
func (c *Cache) Synthesize(ctx context.Context, paragraph, topic string) (string, error) {
	key := cacheKey{paragraph: paragraph, topic: topic}

	c.mu.Lock()
	if line, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		metrics.SynthesisCacheHits.WithLabelValues("hit").Inc()
		return line, nil
	}
	c.misses++
	c.mu.Unlock()
	metrics.SynthesisCacheHits.WithLabelValues("miss").Inc()

	line, err := c.provider.Synthesize(ctx, paragraph, topic)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = line
	c.mu.Unlock()
	return line, nil
}

// Stats reports cache hit/miss counters and the entry count.
func (c *Cache) Stats() (hits, misses, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.entries)
}

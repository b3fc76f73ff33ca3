package forecast

import "github.com/preston-bernstein/scorigami-service/internal/domain/games"

type cacheKey struct {
	side Side
	key  games.OrientedKey
}

// Cache memoizes uniqueness answers within one forecast call.
// It is not safe for concurrent use and must not be shared across invocations.
type Cache struct {
	entries map[cacheKey]bool
	hits    int
}

// NewCache returns an empty memo.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]bool)}
}

func (c *Cache) get(side Side, key games.OrientedKey) (bool, bool) {
	v, ok := c.entries[cacheKey{side: side, key: key}]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *Cache) put(side Side, key games.OrientedKey, unique bool) {
	c.entries[cacheKey{side: side, key: key}] = unique
}

// Len is the number of distinct lookups made.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Hits is the number of lookups answered from the memo.
func (c *Cache) Hits() int {
	return c.hits
}

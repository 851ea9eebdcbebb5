package holiday

import "sync"

// Cache memoizes Compute per year. Because Compute is pure, a cached set is
// indistinguishable from a fresh one; callers receive copies.
type Cache struct {
	mu    sync.RWMutex
	years map[int]Set
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{years: make(map[int]Set)}
}

// Year returns the holidays of year.
func (c *Cache) Year(year int) Set {
	return c.get(year).Clone()
}

// Window returns the holidays of year-1 through year+1.
func (c *Cache) Window(year int) Set {
	out := make(Set)
	for y := year - 1; y <= year+1; y++ {
		out.Merge(c.get(y))
	}
	return out
}

// Len returns the number of cached years.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.years)
}

func (c *Cache) get(year int) Set {
	c.mu.RLock()
	set, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return set
	}

	set = Compute(year)
	c.mu.Lock()
	c.years[year] = set
	c.mu.Unlock()
	return set
}

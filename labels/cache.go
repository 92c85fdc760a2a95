package labels

import "sync"

// labelCache remembers cleaned labels by raw value. Survey sheets repeat a
// handful of species across thousands of rows.
type labelCache struct {
	mu sync.RWMutex
	m  map[string]string
}

func newLabelCache() *labelCache {
	return &labelCache{m: make(map[string]string)}
}

func (c *labelCache) get(raw string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[raw]
	return v, ok
}

func (c *labelCache) put(raw, clean string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[raw] = clean
}

func (c *labelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

package filter

import (
	"container/list"
	"sync"
)

// filterCache keeps the most recently compiled filters, keyed by their
// expression. Each list element holds a CompiledFilter; front is newest.
type filterCache struct {
	capacity int
	order    *list.List
	byExpr   map[string]*list.Element
	mu       sync.Mutex
}

func newFilterCache(capacity int) *filterCache {
	return &filterCache{
		capacity: capacity,
		order:    list.New(),
		byExpr:   make(map[string]*list.Element, capacity),
	}
}

// lookup returns the filter compiled from expression and marks it recently used.
func (c *filterCache) lookup(expression string) (CompiledFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byExpr[expression]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(CompiledFilter), true
}

// add stores f under its own expression, evicting the least recently used
// filter once the cache is full.
func (c *filterCache) add(f CompiledFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expression := f.Expression()
	if el, ok := c.byExpr[expression]; ok {
		el.Value = f
		c.order.MoveToFront(el)
		return
	}

	c.byExpr[expression] = c.order.PushFront(f)
	for c.order.Len() > c.capacity {
		oldest := c.order.Remove(c.order.Back()).(CompiledFilter)
		delete(c.byExpr, oldest.Expression())
	}
}

func (c *filterCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.byExpr)
}

func (c *filterCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

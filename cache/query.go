// Package cache provides a bounded LRU cache for query results keyed by the
// graph epoch, so results computed before a mutation are never served after it.
package cache

import (
	"container/list"
	"sync"
)

// defaultCapacity is the number of entries a QueryCache holds when none is given.
const defaultCapacity = 1024

// Key identifies one query result. Epoch is the graph epoch the result was
// computed at; any mutation moves the graph to a new epoch.
type Key struct {
	Op    string
	Args  string
	Epoch uint64
}

type entry[V any] struct {
	key Key
	val V
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Size      int    `json:"size"`
	Capacity  int    `json:"capacity"`
	Gets      int    `json:"gets"`
	Hits      int    `json:"hits"`
	Puts      int    `json:"puts"`
	Evictions int    `json:"evictions"`
	Epoch     uint64 `json:"epoch"`
}

// QueryCache is a bounded LRU cache. It's safe for concurrent use.
//
// Entries older than the newest epoch seen by Put or Advance are dropped
// eagerly, since they can never be hit again.
type QueryCache[V any] struct {
	mu       sync.Mutex
	m        map[Key]*list.Element
	ll       *list.List
	capacity int
	epoch    uint64

	puts      int
	gets      int
	hits      int
	evictions int
}

// New returns a QueryCache with the given capacity (default if <= 0).
func New[V any](capacity int) *QueryCache[V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &QueryCache[V]{
		m:        make(map[Key]*list.Element, capacity),
		ll:       list.New(),
		capacity: capacity,
	}
}

// Get returns the value for key, and true if it was found.
// It updates LRU position on hit.
func (c *QueryCache[V]) Get(key Key) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	if el, ok := c.m[key]; ok {
		c.hits++
		c.ll.MoveToFront(el)
		return el.Value.(entry[V]).val, true
	}
	var zero V
	return zero, false
}

// Put inserts a value. A key from an older epoch than the cache has seen is ignored.
func (c *QueryCache[V]) Put(key Key, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key.Epoch < c.epoch {
		return
	}
	c.advanceLocked(key.Epoch)

	c.puts++
	if el, ok := c.m[key]; ok {
		el.Value = entry[V]{key: key, val: v}
		c.ll.MoveToFront(el)
		return
	}

	c.m[key] = c.ll.PushFront(entry[V]{key: key, val: v})
	if c.ll.Len() > c.capacity {
		if tail := c.ll.Back(); tail != nil {
			delete(c.m, tail.Value.(entry[V]).key)
			c.ll.Remove(tail)
			c.evictions++
		}
	}
}

// Advance tells the cache the graph moved to epoch, dropping older entries.
func (c *QueryCache[V]) Advance(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advanceLocked(epoch)
}

func (c *QueryCache[V]) advanceLocked(epoch uint64) {
	if epoch <= c.epoch {
		return
	}
	c.epoch = epoch
	for el := c.ll.Back(); el != nil; {
		prev := el.Prev()
		if k := el.Value.(entry[V]).key; k.Epoch < epoch {
			delete(c.m, k)
			c.ll.Remove(el)
		}
		el = prev
	}
}

// Purge removes all entries and resets the counters.
func (c *QueryCache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[Key]*list.Element, c.capacity)
	c.ll.Init()
	c.puts, c.gets, c.hits, c.evictions = 0, 0, 0, 0
}

// Stats returns the counters, all snapshot under lock.
func (c *QueryCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:      c.ll.Len(),
		Capacity:  c.capacity,
		Gets:      c.gets,
		Hits:      c.hits,
		Puts:      c.puts,
		Evictions: c.evictions,
		Epoch:     c.epoch,
	}
}

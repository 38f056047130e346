package di

import "sync"

// resolved is a cached resolution outcome: either a service value or the
// error that resolving it produced. Errors are cached verbatim so that
// repeated lookups of a failing interface fail fast without re-running
// the factory.
type resolved struct {
	value any
	err   error
}

// instanceKey keys the per-request tier by interface and requesting
// client type. A client-less request uses the zero client TypeID.
type instanceKey struct {
	iface  TypeID
	client TypeID
}

// Cache is a per-container store of already-resolved services. The
// singleton tier is keyed only by interface and shared by every caller;
// the instance tier memoizes per (interface, client) pair.
//
// The lock protects hosts that share one container across goroutines;
// it is never held across a factory call, so recursive resolution on
// one goroutine cannot deadlock.
type Cache struct {
	mu         sync.RWMutex
	singletons map[TypeID]resolved
	instances  map[instanceKey]resolved
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		singletons: make(map[TypeID]resolved),
		instances:  make(map[instanceKey]resolved),
	}
}

func (c *Cache) getSingleton(iface TypeID) (resolved, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.singletons[iface]
	return r, ok
}

func (c *Cache) setSingleton(iface TypeID, r resolved) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.singletons[iface] = r
}

func (c *Cache) get(iface, client TypeID) (resolved, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.instances[instanceKey{iface: iface, client: client}]
	return r, ok
}

func (c *Cache) set(iface, client TypeID, r resolved) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[instanceKey{iface: iface, client: client}] = r
}

// singletonValues returns the successfully constructed singleton values
// for teardown.
func (c *Cache) singletonValues() []any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	values := make([]any, 0, len(c.singletons))
	for _, r := range c.singletons {
		if r.err == nil {
			values = append(values, r.value)
		}
	}
	return values
}

// Clear empties both tiers. The next resolution of any interface
// re-invokes its factory and re-runs supplements, as if the container
// were freshly constructed.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.singletons = make(map[TypeID]resolved)
	c.instances = make(map[instanceKey]resolved)
}

// Len returns the total number of cached entries across both tiers.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.singletons) + len(c.instances)
}

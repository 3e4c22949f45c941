// Package cache provides a generic, thread-safe LRU store and a memoization
// layer built on top of it.
//
// # LRU
//
// LRUCache keeps at most capacity items and evicts the least recently used one
// when a new key would exceed it. A capacity of zero or less disables eviction.
//
//	c := cache.NewLRUCache[string, int](100)
//	c.PutIfAbsent("a", 1)
//	v, ok := c.Get("a")
//
// # Memoization
//
// Memo remembers the first successful result per key and hands back that very
// value (not a copy) on every later call with an equal key. Clear invalidates
// everything at once; results computed concurrently with a Clear are not
// stored, so stale values never outlive the invalidation.
//
//	m := cache.NewMemo[key, map[string]string](cache.WithCapacity(1024))
//	headers, err := m.Do(k, func() (map[string]string, error) {
//		return build(k)
//	})
//	...
//	m.Clear() // after the underlying data changed
//
// Memoize adapts a plain func(K) (V, error) into a memoized Func with Call and
// ClearCache.
//
// Errors are never cached: a failing computation is retried on the next call.
//
// # Thread Safety
//
// All operations may be called from multiple goroutines.
package cache

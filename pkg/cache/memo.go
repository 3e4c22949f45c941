package cache

import "sync"

// MemoOption configures a Memo.
type MemoOption func(*memoConfig)

type memoConfig struct {
	capacity int
	onHit    func()
	onMiss   func()
	onEvict  func()
}

// WithCapacity bounds the number of memoized results. Zero or less means unbounded.
func WithCapacity(n int) MemoOption {
	return func(c *memoConfig) { c.capacity = n }
}

// WithHitHook registers a callback run on every cache hit.
func WithHitHook(fn func()) MemoOption {
	return func(c *memoConfig) { c.onHit = fn }
}

// WithMissHook registers a callback run on every cache miss.
func WithMissHook(fn func()) MemoOption {
	return func(c *memoConfig) { c.onMiss = fn }
}

// WithEvictHook registers a callback run when a result is evicted by the capacity limit.
func WithEvictHook(fn func()) MemoOption {
	return func(c *memoConfig) { c.onEvict = fn }
}

// Memo remembers the first successful result computed for each key and
// returns that same value for later calls with an equal key until Clear.
//
// Clear bumps an internal generation. A computation that started before a
// Clear is returned to its caller but never stored, so a result derived from
// data that has since been replaced cannot reappear in the cache.
type Memo[K comparable, V any] struct {
	mu    sync.Mutex
	gen   uint64
	store *LRUCache[K, V]
	cfg   memoConfig
}

// NewMemo creates an empty Memo.
func NewMemo[K comparable, V any](opts ...MemoOption) *Memo[K, V] {
	var cfg memoConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Memo[K, V]{
		store: NewLRUCache[K, V](cfg.capacity),
		cfg:   cfg,
	}
	if cfg.onEvict != nil {
		m.store.SetEvictCallback(func(K, V) { cfg.onEvict() })
	}
	return m
}

// Do returns the memoized value for key, calling fn to compute it on a miss.
// Errors returned by fn are passed through and never cached.
// When two callers race on the same key, both receive the value stored first.
func (m *Memo[K, V]) Do(key K, fn func() (V, error)) (V, error) {
	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	if v, ok := m.store.Get(key); ok {
		if m.cfg.onHit != nil {
			m.cfg.onHit()
		}
		return v, nil
	}
	if m.cfg.onMiss != nil {
		m.cfg.onMiss()
	}

	v, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return v, nil
	}
	stored, _ := m.store.PutIfAbsent(key, v)
	return stored, nil
}

// Clear drops every memoized result.
func (m *Memo[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.store.Clear()
}

// Len reports the number of memoized results.
func (m *Memo[K, V]) Len() int {
	return m.store.Len()
}

// Func is a memoized single-argument function.
type Func[K comparable, V any] struct {
	fn   func(K) (V, error)
	memo *Memo[K, V]
}

// Memoize wraps fn so that repeated calls with an equal argument return the
// first computed result.
//
//	square := cache.Memoize(func(n int) ([]int, error) { return []int{n * n}, nil })
//	a, _ := square.Call(3)
//	b, _ := square.Call(3) // same slice as a
//	square.ClearCache()
func Memoize[K comparable, V any](fn func(K) (V, error), opts ...MemoOption) *Func[K, V] {
	return &Func[K, V]{fn: fn, memo: NewMemo[K, V](opts...)}
}

// Call returns the memoized result for key.
func (f *Func[K, V]) Call(key K) (V, error) {
	return f.memo.Do(key, func() (V, error) { return f.fn(key) })
}

// ClearCache forgets every memoized result.
func (f *Func[K, V]) ClearCache() {
	f.memo.Clear()
}

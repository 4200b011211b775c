package cache

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"casa_arbol_gateway/internal/backend"
)

// FetchFunc loads one resource from the backend.
type FetchFunc func(ctx context.Context) (any, error)

// MutateFunc performs one write against the backend.
type MutateFunc func(ctx context.Context) (any, error)

// State is the lifecycle of one cache key.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateFresh
	StateStale
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// RetryConfig bounds read-path retries. Mutations never consult it.
type RetryConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	Jitter            float64
}

// DefaultRetryConfig returns the retry policy for read fetches.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        5 * time.Second,
		BackoffMultiplier: 2.0,
		Jitter:            0.1,
	}
}

func (rc RetryConfig) backoff(attempt int) time.Duration {
	d := float64(rc.InitialBackoff) * math.Pow(rc.BackoffMultiplier, float64(attempt-1))
	if d > float64(rc.MaxBackoff) {
		d = float64(rc.MaxBackoff)
	}
	if rc.Jitter > 0 {
		d += d * rc.Jitter * (rand.Float64()*2 - 1)
	}
	return time.Duration(d)
}

// Config holds coordinator configuration.
type Config struct {
	// TTL is how long a fetched value counts as fresh.
	TTL time.Duration
	// FetchTimeout bounds one fetch including its retries.
	FetchTimeout time.Duration
	Retry        RetryConfig
	Metrics      *Metrics
}

// Coordinator keeps every on-screen view eventually consistent with the
// backend without manual refresh. Reads are keyed, deduplicated and served
// stale-while-revalidate; mutations invalidate the keys they declare and
// subscribed keys refetch immediately.
//
// Per key: idle -> fetching -> {fresh | error}; fresh -> stale on TTL expiry
// or invalidation; stale -> fetching on the next read while the stale value
// is still served. At most one fetch is in flight per key. The cache is
// process-wide and in-memory; cross-instance consistency is the backend's.
type Coordinator struct {
	mu        sync.Mutex
	cfg       Config
	entries   map[Key]*entry
	nextSubID int
}

type entry struct {
	state     State
	value     any
	err       error
	fetchedAt time.Time
	inflight  *call
	// refetch is the most recent fetcher for this key, reused when an
	// invalidation triggers a refetch for mounted subscribers.
	refetch FetchFunc
	subs    map[int]*Subscription
}

// call is one shared in-flight fetch.
type call struct {
	done       chan struct{}
	value      any
	err        error
	cancel     context.CancelFunc
	waiters    int
	background bool
	aborted    bool
	// invalidated marks a call whose key was invalidated after the fetch
	// started. Its result may predate the write, so it settles stale, not
	// fresh, and readers arriving after the invalidation never join it.
	invalidated bool
}

// New creates a coordinator.
func New(cfg Config) *Coordinator {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = backend.DefaultTimeout
	}
	if cfg.Retry.MaxRetries == 0 && cfg.Retry.InitialBackoff == 0 {
		cfg.Retry = DefaultRetryConfig()
	}
	return &Coordinator{cfg: cfg, entries: make(map[Key]*entry)}
}

// Get returns the cached value for key, fetching if needed. A fresh value is
// returned synchronously; a stale value is returned immediately while a
// background revalidation runs; otherwise the caller waits on the single
// in-flight fetch shared by all concurrent readers of the key.
func (c *Coordinator) Get(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	return c.get(ctx, key, fetch, true)
}

// GetFresh is a blocking fresh read: stale values are not served.
func (c *Coordinator) GetFresh(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	return c.get(ctx, key, fetch, false)
}

func (c *Coordinator) get(ctx context.Context, key Key, fetch FetchFunc, allowStale bool) (any, error) {
	for {
		c.mu.Lock()
		e := c.entry(key)
		e.refetch = fetch

		if e.state == StateFresh && time.Since(e.fetchedAt) >= c.cfg.TTL {
			e.state = StateStale
		}

		if e.state == StateFresh {
			value := e.value
			c.mu.Unlock()
			c.cfg.Metrics.hit("fresh")
			return value, nil
		}

		if e.state == StateStale && allowStale {
			if e.inflight == nil {
				c.startFetch(e, fetch, true)
			}
			value := e.value
			c.mu.Unlock()
			c.cfg.Metrics.hit("stale")
			return value, nil
		}

		// A call invalidated mid-flight only answers the readers that joined
		// before the write. Wait for it to settle, then take another pass;
		// the entry will be stale or idle by then and fetch anew.
		if cl := e.inflight; cl != nil && cl.invalidated {
			c.mu.Unlock()
			select {
			case <-ctx.Done():
				c.cfg.Metrics.cancellation()
				return nil, ctx.Err()
			case <-cl.done:
			}
			continue
		}

		c.cfg.Metrics.miss()
		if e.inflight == nil {
			c.startFetch(e, fetch, false)
		} else {
			c.cfg.Metrics.dedupJoin()
		}
		cl := e.inflight
		cl.waiters++
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			c.mu.Lock()
			cl.waiters--
			if cl.waiters <= 0 && !cl.background && !cl.aborted {
				// Last waiter gone: abort the I/O, write nothing.
				cl.aborted = true
				cl.cancel()
			}
			c.mu.Unlock()
			c.cfg.Metrics.cancellation()
			return nil, ctx.Err()
		case <-cl.done:
			return cl.value, cl.err
		}
	}
}

// startFetch begins the single fetch for an entry. Caller holds c.mu.
func (c *Coordinator) startFetch(e *entry, fetch FetchFunc, background bool) {
	fctx, cancel := context.WithTimeout(context.Background(), c.cfg.FetchTimeout)
	cl := &call{done: make(chan struct{}), cancel: cancel, background: background}
	e.inflight = cl
	if e.state != StateStale {
		e.state = StateFetching
	}
	c.cfg.Metrics.fetch()
	go c.runFetch(fctx, e, cl, fetch)
}

func (c *Coordinator) runFetch(fctx context.Context, e *entry, cl *call, fetch FetchFunc) {
	defer cl.cancel()
	value, err := c.fetchWithRetry(fctx, fetch)

	c.mu.Lock()
	aborted := cl.aborted
	invalidated := cl.invalidated
	cl.value, cl.err = value, err
	if e.inflight == cl {
		e.inflight = nil
		switch {
		case aborted:
			// A cancelled fetch never writes into the cache.
			if e.state == StateFetching {
				e.state = StateIdle
			}
		case err != nil:
			if invalidated {
				e.state = StateIdle
			} else {
				e.state = StateError
				e.err = err
			}
		case invalidated:
			// The key was invalidated while this fetch was in flight, so
			// its result may predate the write. Keep it as stale only; the
			// next read revalidates.
			e.state = StateStale
			e.value = value
			e.err = nil
			e.fetchedAt = time.Now()
		default:
			e.state = StateFresh
			e.value = value
			e.err = nil
			e.fetchedAt = time.Now()
		}
		if invalidated && !aborted && len(e.subs) > 0 && e.refetch != nil {
			c.startFetch(e, e.refetch, true)
		}
	}
	var subs []*Subscription
	if !aborted {
		subs = make([]*Subscription, 0, len(e.subs))
		for _, s := range e.subs {
			subs = append(subs, s)
		}
	}
	c.mu.Unlock()

	close(cl.done)
	for _, s := range subs {
		s.push(Update{Value: value, Err: err})
	}
}

func (c *Coordinator) fetchWithRetry(ctx context.Context, fetch FetchFunc) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retry.MaxRetries; attempt++ {
		if attempt > 0 {
			c.cfg.Metrics.retry()
			select {
			case <-ctx.Done():
				return nil, lastErr
			case <-time.After(c.cfg.Retry.backoff(attempt)):
			}
		}
		value, err := fetch(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err
		if !backend.IsRetryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// Mutate runs one write. On success the declared keys are invalidated, in
// the order mutations complete (last invalidate wins). On failure nothing is
// invalidated and the error is surfaced as-is; mutations are never retried
// here because writes like payments are not idempotent.
func (c *Coordinator) Mutate(ctx context.Context, mutate MutateFunc, invalidates ...Key) (any, error) {
	value, err := mutate(ctx)
	if err != nil {
		return nil, err
	}
	c.Invalidate(invalidates...)
	return value, nil
}

// Invalidate marks matching keys stale. Entries with mounted subscribers
// refetch immediately in the background. An in-flight fetch is marked so its
// result settles stale instead of fresh: it started before the write and may
// carry pre-write data.
func (c *Coordinator) Invalidate(keys ...Key) {
	c.mu.Lock()
	for _, k := range keys {
		for ek, e := range c.entries {
			if !k.matches(ek) {
				continue
			}
			c.cfg.Metrics.invalidation()
			switch e.state {
			case StateFresh:
				e.state = StateStale
			case StateError:
				e.state = StateIdle
			}
			if e.inflight != nil {
				e.inflight.invalidated = true
			} else if len(e.subs) > 0 && e.refetch != nil {
				c.startFetch(e, e.refetch, true)
			}
		}
	}
	c.mu.Unlock()
}

// Update is delivered to subscribers when their key settles a fetch.
type Update struct {
	Value any
	Err   error
}

// Subscription is a mounted view of one key.
type Subscription struct {
	c   *Coordinator
	key Key
	id  int
	ch  chan Update
}

// Subscribe registers a subscriber for key. The fetcher is remembered so
// invalidations can refetch on the subscriber's behalf.
func (c *Coordinator) Subscribe(key Key, fetch FetchFunc) *Subscription {
	c.mu.Lock()
	e := c.entry(key)
	if fetch != nil {
		e.refetch = fetch
	}
	c.nextSubID++
	s := &Subscription{c: c, key: key, id: c.nextSubID, ch: make(chan Update, 8)}
	e.subs[s.id] = s
	c.mu.Unlock()
	return s
}

// Updates delivers settled fetch results for the subscribed key.
func (s *Subscription) Updates() <-chan Update { return s.ch }

// Close unmounts the subscriber. No further updates are delivered.
func (s *Subscription) Close() {
	s.c.mu.Lock()
	if e, ok := s.c.entries[s.key]; ok {
		delete(e.subs, s.id)
	}
	s.c.mu.Unlock()
}

// push never blocks; a slow subscriber just misses intermediate updates.
func (s *Subscription) push(u Update) {
	select {
	case s.ch <- u:
	default:
	}
}

// Peek reports the current state of a key without touching it.
func (c *Coordinator) Peek(key Key) (State, any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return StateIdle, nil
	}
	state := e.state
	if state == StateFresh && time.Since(e.fetchedAt) >= c.cfg.TTL {
		state = StateStale
	}
	return state, e.value
}

// Sweep evicts settled entries that expired and have no subscribers.
// Wired to the cron janitor in main.
func (c *Coordinator) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.entries {
		if len(e.subs) > 0 || e.inflight != nil {
			continue
		}
		if e.state == StateFresh && time.Since(e.fetchedAt) < c.cfg.TTL {
			continue
		}
		delete(c.entries, k)
		removed++
	}
	return removed
}

func (c *Coordinator) entry(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{subs: make(map[int]*Subscription)}
		c.entries[key] = e
	}
	return e
}

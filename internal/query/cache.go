package query

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/calebwray/portal/internal/catalog"
)

// Key identifies one cacheable request. Two requests with equal keys share
// a single cache entry and, while in flight, a single network call.
type Key struct {
	Kind   string
	Page   int
	Search string
	IDs    string // comma-joined id list for batch fetches
}

// BatchKey builds a Key for a batch fetch of the given ids.
func BatchKey(kind string, ids []string) Key {
	return Key{Kind: kind, IDs: strings.Join(ids, ",")}
}

// Status describes the lifecycle of a cache entry.
type Status int

const (
	StatusIdle Status = iota
	StatusFetching
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusFetching:
		return "fetching"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of resolving a key: the last-known data, the entry
// status, and the error when the status is failed.
type Result struct {
	Data      any
	Status    Status
	Err       error
	FetchedAt time.Time
}

// FetchFunc performs the network request for a key.
type FetchFunc func(ctx context.Context) (any, error)

// Options tune how one resolve treats failures.
type Options struct {
	// MaxAttempts is the total number of attempts on transport failure.
	// Values below 1 mean a single attempt. Only *catalog.NetworkError is
	// retried; not-found and decode failures surface immediately.
	MaxAttempts int
}

// Primary is the retry policy for list and detail queries: the initial
// attempt plus two automatic retries on transport failure.
var Primary = Options{MaxAttempts: 3}

// Enrichment is the retry policy for secondary lookups nested under a
// record (location, episode batch): fail fast, rely on manual retry.
var Enrichment = Options{MaxAttempts: 1}

// DefaultStaleAfter is how long a successful entry is served without a
// refetch.
const DefaultStaleAfter = 5 * time.Minute

var defaultBackoff = []time.Duration{500 * time.Millisecond, 1 * time.Second, 2 * time.Second}

// Cache coalesces fetches per key and remembers their results.
//
// Fetch goroutines are detached from resolving callers: a caller whose
// context expires stops waiting, but the fetch keeps running under the
// cache's own context so other subscribers (and the cache itself) still
// get the result.
type Cache struct {
	ctx        context.Context
	staleAfter time.Duration
	backoff    []time.Duration
	now        func() time.Time

	mu      sync.Mutex
	entries map[Key]*entry
}

type entry struct {
	data      any
	err       error
	status    Status
	fetchedAt time.Time
	gen       uint64
	inFlight  chan struct{} // non-nil while a fetch is running
}

// CacheOption adjusts Cache construction.
type CacheOption func(*Cache)

// WithStaleAfter overrides the staleness window.
func WithStaleAfter(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.staleAfter = d
		}
	}
}

// WithBackoff overrides the retry backoff schedule.
func WithBackoff(schedule []time.Duration) CacheOption {
	return func(c *Cache) {
		if len(schedule) > 0 {
			c.backoff = schedule
		}
	}
}

// WithClock overrides the time source. Test seam.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds a Cache. The context bounds the lifetime of detached fetches;
// cancel it on application shutdown.
func New(ctx context.Context, opts ...CacheOption) *Cache {
	if ctx == nil {
		ctx = context.Background()
	}
	c := &Cache{
		ctx:        ctx,
		staleAfter: DefaultStaleAfter,
		backoff:    defaultBackoff,
		now:        time.Now,
		entries:    make(map[Key]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the entry for key, fetching if needed.
//
// A fresh successful entry is returned without a network call. If a fetch
// for the key is already in flight the caller attaches to it; at most one
// request per key is ever outstanding. Otherwise a new fetch starts and
// the caller waits for it. ctx bounds only this caller's wait, not the
// fetch itself.
func (c *Cache) Resolve(ctx context.Context, key Key, opts Options, fetch FetchFunc) Result {
	c.mu.Lock()
	e := c.entry(key)
	if e.inFlight == nil {
		// Both success and failure stick until stale; only Retry forces
		// an earlier refetch.
		settled := e.status == StatusSuccess || e.status == StatusFailed
		if settled && c.now().Sub(e.fetchedAt) < c.staleAfter {
			res := e.result()
			c.mu.Unlock()
			return res
		}
		c.startFetch(e, opts, fetch)
	}
	c.mu.Unlock()
	return c.await(ctx, key)
}

// Retry forces a new fetch for key regardless of staleness, superseding
// any previous error state. If a fetch is already outstanding the new one
// takes over its generation slot: whichever request was started last wins,
// and a slower, older response is discarded.
func (c *Cache) Retry(ctx context.Context, key Key, opts Options, fetch FetchFunc) Result {
	c.mu.Lock()
	e := c.entry(key)
	c.startFetch(e, opts, fetch)
	c.mu.Unlock()
	return c.await(ctx, key)
}

// Peek returns the current state for key without triggering or waiting on
// a fetch. Used for stale-while-revalidate display: the previous page's
// data stays visible under its own key while the next key resolves.
func (c *Cache) Peek(key Key) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Result{Status: StatusIdle}
	}
	return e.result()
}

// entry returns the entry for key, creating it if absent. Callers hold mu.
func (c *Cache) entry(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{status: StatusIdle}
		c.entries[key] = e
	}
	return e
}

// startFetch begins a new generation fetch for e. Callers hold mu.
func (c *Cache) startFetch(e *entry, opts Options, fetch FetchFunc) {
	e.gen++
	gen := e.gen
	ch := make(chan struct{})
	e.inFlight = ch
	e.status = StatusFetching

	go func() {
		defer close(ch)
		data, err := c.runFetch(opts, fetch)

		c.mu.Lock()
		defer c.mu.Unlock()
		if e.gen != gen {
			// Superseded by a later-started fetch; discard this result.
			return
		}
		e.inFlight = nil
		e.fetchedAt = c.now()
		if err != nil {
			e.status = StatusFailed
			e.err = err
			return
		}
		e.status = StatusSuccess
		e.data = data
		e.err = nil
	}()
}

// runFetch executes fetch with the configured attempt budget. Transport
// failures back off and retry; any other error surfaces immediately.
func (c *Cache) runFetch(opts Options, fetch FetchFunc) (any, error) {
	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.backoff[min(attempt-1, len(c.backoff)-1)]
			select {
			case <-c.ctx.Done():
				return nil, c.ctx.Err()
			case <-time.After(delay):
			}
		}
		data, err := fetch(c.ctx)
		if err == nil {
			return data, nil
		}
		lastErr = err
		var ne *catalog.NetworkError
		if !errors.As(err, &ne) {
			return nil, err
		}
	}
	return nil, lastErr
}

// await blocks until no fetch is outstanding for key, then returns the
// entry state. When a fetch is superseded mid-wait the caller re-attaches
// to the replacement.
func (c *Cache) await(ctx context.Context, key Key) Result {
	for {
		c.mu.Lock()
		e, ok := c.entries[key]
		if !ok || e.inFlight == nil {
			var res Result
			if ok {
				res = e.result()
			} else {
				res = Result{Status: StatusIdle}
			}
			c.mu.Unlock()
			return res
		}
		ch := e.inFlight
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return Result{Status: StatusFetching, Err: ctx.Err()}
		}
	}
}

// result snapshots an entry. Callers hold mu.
func (e *entry) result() Result {
	return Result{
		Data:      e.data,
		Status:    e.status,
		Err:       e.err,
		FetchedAt: e.fetchedAt,
	}
}

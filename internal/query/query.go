// Package query caches remote reads per browser and runs writes that
// invalidate them.
package query

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"example.com/notely-web/internal/toast"
)

// Key names a cached read. Parts are joined with "/"; invalidating a key also
// invalidates every key below it.
type Key string

func NewKey(parts ...string) Key {
	return Key(strings.Join(parts, "/"))
}

func (k Key) covers(other Key) bool {
	return other == k || strings.HasPrefix(string(other), string(k)+"/")
}

type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	}
	return "unknown"
}

type Result[T any] struct {
	Status    Status
	Data      T
	Err       error
	UpdatedAt time.Time
}

func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }
func (r Result[T]) IsError() bool   { return r.Status == StatusError }
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }

// Notifier receives mutation outcomes. *toast.Queue satisfies it.
type Notifier interface {
	Push(t toast.Toast) string
}

type Options struct {
	// StaleTime is how long a successful read is reused. Zero refetches on
	// every Fetch unless a fetch for the same key is already in flight.
	StaleTime time.Duration
	// RetryTTL bounds how long a failed mutation can be retried.
	RetryTTL time.Duration
	// RetryHref builds the action target of a retry toast.
	RetryHref func(toastID string) string
	Now       func() time.Time
}

type entry struct {
	status    Status
	data      any
	err       error
	fetchedAt time.Time
	gen       uint64
	valid     bool
}

// Client is the per-browser query cache.
type Client struct {
	mu       sync.Mutex
	entries  map[Key]*entry
	retries  map[string]pendingRetry
	group    singleflight.Group
	notifier Notifier
	opts     Options
}

func NewClient(n Notifier, opts Options) *Client {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RetryTTL <= 0 {
		opts.RetryTTL = 10 * time.Minute
	}
	return &Client{
		entries:  make(map[Key]*entry),
		retries:  make(map[string]pendingRetry),
		notifier: n,
		opts:     opts,
	}
}

// Fetch returns the cached value for key when it is still fresh, otherwise it
// calls fn. Concurrent fetches of the same key share one call.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) Result[T] {
	if v, at, ok := c.fresh(key); ok {
		if data, ok := v.(T); ok {
			return Result[T]{Status: StatusSuccess, Data: data, UpdatedAt: at}
		}
	}

	gen := c.begin(key)
	v, err, _ := c.group.Do(string(key)+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		return fn(ctx)
	})
	at := c.settle(key, gen, v, err)
	if err != nil {
		return Result[T]{Status: StatusError, Err: err, UpdatedAt: at}
	}
	data, _ := v.(T)
	return Result[T]{Status: StatusSuccess, Data: data, UpdatedAt: at}
}

// Peek reports the current status of key without fetching.
func (c *Client) Peek(key Key) (Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return StatusLoading, false
	}
	return e.status, true
}

// Invalidate marks keys, and everything below them, as needing a refetch.
func (c *Client) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		for _, key := range keys {
			if key.covers(k) {
				e.valid = false
				e.gen++
				break
			}
		}
	}
}

// Clear drops every cached read and pending retry.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.gen++
	}
	c.entries = make(map[Key]*entry)
	c.retries = make(map[string]pendingRetry)
}

func (c *Client) fresh(key Key) (any, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.valid || e.status != StatusSuccess {
		return nil, time.Time{}, false
	}
	if c.opts.StaleTime <= 0 || c.opts.Now().Sub(e.fetchedAt) >= c.opts.StaleTime {
		return nil, time.Time{}, false
	}
	return e.data, e.fetchedAt, true
}

func (c *Client) begin(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.status = StatusLoading
	return e.gen
}

// settle stores the outcome unless the key was invalidated while the read was
// in flight; a result fetched before a write never masks that write.
func (c *Client) settle(key Key, gen uint64, v any, err error) time.Time {
	now := c.opts.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.gen != gen {
		return now
	}
	e.fetchedAt = now
	if err != nil {
		e.status = StatusError
		e.err = err
		e.data = nil
		e.valid = false
		return now
	}
	e.status = StatusSuccess
	e.err = nil
	e.data = v
	e.valid = true
	return now
}

package query

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"example.com/notely-web/internal/toast"
)

var ErrUnknownRetry = errors.New("query: retry not found or expired")

// Mutation describes a write and what it does to the cache and the user.
type Mutation struct {
	// Name labels the operation in the default failure toast, e.g. "Trashing note".
	Name        string
	Invalidates []Key
	// Success is pushed after the write succeeds; a zero Toast pushes nothing.
	Success toast.Toast
	// Failure builds the error toast. Nil uses toast.OperationFailed.
	Failure func(err error) toast.Toast
	// Retryable attaches a "Retry" action that re-issues the same write.
	Retryable bool
}

type pendingRetry struct {
	m  Mutation
	fn func(context.Context) error
	at time.Time
}

// Mutate runs fn. On success the mutation's keys are invalidated and the
// success toast is pushed. On failure the error toast is pushed and the error
// is returned.
func (c *Client) Mutate(ctx context.Context, m Mutation, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		c.notify(c.failureToast(m, fn, err))
		return err
	}
	c.Invalidate(m.Invalidates...)
	if m.Success.Title != "" {
		c.notify(m.Success)
	}
	return nil
}

// Retry re-issues the mutation that produced the toast with the given id.
func (c *Client) Retry(ctx context.Context, toastID string) error {
	c.mu.Lock()
	r, ok := c.retries[toastID]
	delete(c.retries, toastID)
	c.mu.Unlock()
	if !ok || c.opts.Now().Sub(r.at) > c.opts.RetryTTL {
		return ErrUnknownRetry
	}
	return c.Mutate(ctx, r.m, r.fn)
}

func (c *Client) failureToast(m Mutation, fn func(context.Context) error, err error) toast.Toast {
	var t toast.Toast
	if m.Failure != nil {
		t = m.Failure(err)
	} else {
		t = toast.OperationFailed(m.Name, "")
	}
	if !m.Retryable {
		return t
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	href := ""
	if c.opts.RetryHref != nil {
		href = c.opts.RetryHref(t.ID)
	}
	t = t.WithAction("Retry", href)

	now := c.opts.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, r := range c.retries {
		if now.Sub(r.at) > c.opts.RetryTTL {
			delete(c.retries, id)
		}
	}
	c.retries[t.ID] = pendingRetry{m: m, fn: fn, at: now}
	return t
}

func (c *Client) notify(t toast.Toast) {
	if c.notifier != nil {
		c.notifier.Push(t)
	}
}

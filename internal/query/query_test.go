package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/notely-web/internal/toast"
)

type recorder struct {
	mu     sync.Mutex
	toasts []toast.Toast
}

func (r *recorder) Push(t toast.Toast) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
	return t.ID
}

func (r *recorder) last() toast.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.toasts[len(r.toasts)-1]
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func counter(n *atomic.Int32, out []string) func(context.Context) ([]string, error) {
	return func(context.Context) ([]string, error) {
		n.Add(1)
		return out, nil
	}
}

func TestKey(t *testing.T) {
	require.Equal(t, Key("note/42"), NewKey("note", "42"))
	require.True(t, NewKey("note").covers(NewKey("note", "42")))
	require.True(t, NewKey("note").covers(NewKey("note")))
	require.False(t, NewKey("note").covers(NewKey("notes")))
	require.Equal(t, "success", StatusSuccess.String())
}

func TestFetch_ZeroStaleTimeRefetches(t *testing.T) {
	c := NewClient(nil, Options{})
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		res := Fetch(context.Background(), c, NewKey("notes"), counter(&calls, []string{"a"}))
		require.True(t, res.IsSuccess())
		require.Equal(t, []string{"a"}, res.Data)
	}
	require.Equal(t, int32(3), calls.Load())
}

func TestFetch_StaleTimeAndInvalidate(t *testing.T) {
	clk := &clock{t: time.Unix(100, 0)}
	c := NewClient(nil, Options{StaleTime: time.Minute, Now: clk.now})
	var calls atomic.Int32
	fetch := counter(&calls, []string{"a"})

	Fetch(context.Background(), c, NewKey("note", "1"), fetch)
	Fetch(context.Background(), c, NewKey("note", "1"), fetch)
	require.Equal(t, int32(1), calls.Load())

	c.Invalidate(NewKey("note"))
	Fetch(context.Background(), c, NewKey("note", "1"), fetch)
	require.Equal(t, int32(2), calls.Load())

	clk.t = clk.t.Add(2 * time.Minute)
	Fetch(context.Background(), c, NewKey("note", "1"), fetch)
	require.Equal(t, int32(3), calls.Load())
}

func TestFetch_Error(t *testing.T) {
	c := NewClient(nil, Options{StaleTime: time.Minute})
	boom := errors.New("boom")

	res := Fetch(context.Background(), c, NewKey("trash"), func(context.Context) ([]string, error) {
		return nil, boom
	})
	require.True(t, res.IsError())
	require.ErrorIs(t, res.Err, boom)
	require.Nil(t, res.Data)

	st, ok := c.Peek(NewKey("trash"))
	require.True(t, ok)
	require.Equal(t, StatusError, st)
}

func TestFetch_InvalidatedWhileInFlightIsNotCached(t *testing.T) {
	c := NewClient(nil, Options{StaleTime: time.Hour})
	key := NewKey("notes")

	res := Fetch(context.Background(), c, key, func(context.Context) ([]string, error) {
		c.Invalidate(key)
		return []string{"before-write"}, nil
	})
	require.Equal(t, []string{"before-write"}, res.Data)

	var calls atomic.Int32
	res = Fetch(context.Background(), c, key, counter(&calls, []string{"after-write"}))
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, []string{"after-write"}, res.Data)
}

func TestMutate_SuccessInvalidatesAndNotifies(t *testing.T) {
	rec := &recorder{}
	c := NewClient(rec, Options{StaleTime: time.Hour})
	var reads atomic.Int32
	fetch := counter(&reads, []string{"a"})

	Fetch(context.Background(), c, NewKey("notes"), fetch)
	Fetch(context.Background(), c, NewKey("notes"), fetch)
	require.Equal(t, int32(1), reads.Load())

	var writes int
	err := c.Mutate(context.Background(), Mutation{
		Name:        "Trashing note",
		Invalidates: []Key{NewKey("notes")},
		Success:     toast.NoteAction("Note moved to trash", ""),
	}, func(context.Context) error {
		writes++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, writes)
	require.Equal(t, "Note moved to trash", rec.last().Title)

	Fetch(context.Background(), c, NewKey("notes"), fetch)
	require.Equal(t, int32(2), reads.Load())
}

func TestMutate_FailureAndRetry(t *testing.T) {
	rec := &recorder{}
	c := NewClient(rec, Options{RetryHref: func(id string) string { return "/toasts/" + id + "/retry" }})
	boom := errors.New("boom")

	attempts := 0
	m := Mutation{
		Name:        "Creating note",
		Invalidates: []Key{NewKey("notes")},
		Success:     toast.NoteCreated(),
		Retryable:   true,
	}
	err := c.Mutate(context.Background(), m, func(context.Context) error {
		attempts++
		if attempts == 1 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)

	failed := rec.last()
	require.Equal(t, toast.KindError, failed.Kind)
	require.Equal(t, "Creating note failed", failed.Title)
	require.NotNil(t, failed.Action)
	require.Equal(t, "Retry", failed.Action.Label)
	require.Equal(t, "/toasts/"+failed.ID+"/retry", failed.Action.Href)

	require.NoError(t, c.Retry(context.Background(), failed.ID))
	require.Equal(t, 2, attempts)
	require.Equal(t, "Note created successfully!", rec.last().Title)

	require.ErrorIs(t, c.Retry(context.Background(), failed.ID), ErrUnknownRetry)
}

func TestMutate_CustomFailureWithoutRetry(t *testing.T) {
	rec := &recorder{}
	c := NewClient(rec, Options{})

	err := c.Mutate(context.Background(), Mutation{
		Failure: func(err error) toast.Toast { return toast.OperationFailed("Restoring note", err.Error()) },
	}, func(context.Context) error { return errors.New("gone") })
	require.Error(t, err)
	require.Equal(t, "gone", rec.last().Description)
	require.Nil(t, rec.last().Action)
}

func TestRetry_Expires(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	rec := &recorder{}
	c := NewClient(rec, Options{RetryTTL: time.Minute, Now: clk.now})

	_ = c.Mutate(context.Background(), Mutation{Name: "x", Retryable: true}, func(context.Context) error {
		return errors.New("nope")
	})
	id := rec.last().ID
	clk.t = clk.t.Add(2 * time.Minute)
	require.ErrorIs(t, c.Retry(context.Background(), id), ErrUnknownRetry)
}

func TestClear(t *testing.T) {
	c := NewClient(nil, Options{StaleTime: time.Hour})
	var calls atomic.Int32
	fetch := counter(&calls, nil)

	Fetch(context.Background(), c, NewKey("notes"), fetch)
	c.Clear()
	_, ok := c.Peek(NewKey("notes"))
	require.False(t, ok)
	Fetch(context.Background(), c, NewKey("notes"), fetch)
	require.Equal(t, int32(2), calls.Load())
}

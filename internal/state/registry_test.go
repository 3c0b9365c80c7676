package state

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestRegistry_CreateGet(t *testing.T) {
	r := NewRegistry(discard(), Options{})
	s := r.Create()
	require.NotEmpty(t, s.ID)
	require.NotNil(t, s.Session)
	require.NotNil(t, s.Form)
	require.NotNil(t, s.Toasts)
	require.NotNil(t, s.Queries)
	require.NotNil(t, s.Actions)

	got, ok := r.Get(s.ID)
	require.True(t, ok)
	require.Same(t, s, got)

	_, ok = r.Get("nope")
	require.False(t, ok)
	require.NotEqual(t, s.ID, r.Create().ID)
	require.Equal(t, 2, r.Len())
}

func TestRegistry_SweepIdle(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	r := NewRegistry(discard(), Options{IdleTTL: time.Minute, Now: clk.now})

	idle := r.Create()
	busy := r.Create()

	clk.t = clk.t.Add(50 * time.Second)
	_, _ = r.Get(busy.ID)

	clk.t = clk.t.Add(20 * time.Second)
	require.Equal(t, 1, r.Sweep())

	_, ok := r.Get(idle.ID)
	require.False(t, ok)
	_, ok = r.Get(busy.ID)
	require.True(t, ok)
}

func TestRegistry_NoTTLKeepsEverything(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	r := NewRegistry(discard(), Options{Now: clk.now})
	r.Create()
	clk.t = clk.t.Add(24 * time.Hour)
	require.Zero(t, r.Sweep())
	require.Equal(t, 1, r.Len())
}

func TestRegistry_RunStopsWithContext(t *testing.T) {
	r := NewRegistry(discard(), Options{IdleTTL: time.Nanosecond})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

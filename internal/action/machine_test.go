package action

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMachine_ConfirmRunsOnce(t *testing.T) {
	var seen []State
	m := NewMachine(WithObserver(func(_, to State) { seen = append(seen, to) }))

	p, err := m.Begin(KindTrash, "n1")
	require.NoError(t, err)
	require.NotEmpty(t, p.Token)
	require.Equal(t, StateConfirming, m.State())

	got, ok := m.Pending()
	require.True(t, ok)
	require.Equal(t, p, got)

	calls := 0
	run := func(_ context.Context, p Pending) error {
		calls++
		require.Equal(t, StateInFlight, m.State())
		require.Equal(t, "n1", p.NoteID)
		return nil
	}

	done, err := m.Confirm(context.Background(), p.Token, run)
	require.NoError(t, err)
	require.Equal(t, KindTrash, done.Kind)

	_, err = m.Confirm(context.Background(), p.Token, run)
	require.ErrorIs(t, err, ErrNotConfirming)

	require.Equal(t, 1, calls)
	require.Equal(t, StateIdle, m.State())
	require.Equal(t, []State{StateConfirming, StateInFlight, StateSettled, StateIdle}, seen)
}

func TestMachine_FailureStillSettles(t *testing.T) {
	m := NewMachine()
	p, _ := m.Begin(KindDelete, "n2")
	boom := errors.New("boom")

	_, err := m.Confirm(context.Background(), p.Token, func(context.Context, Pending) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, StateIdle, m.State())
	_, ok := m.Pending()
	require.False(t, ok)
}

func TestMachine_Cancel(t *testing.T) {
	m := NewMachine()
	require.ErrorIs(t, m.Cancel("x"), ErrNotConfirming)

	p, _ := m.Begin(KindRestore, "n3")
	require.ErrorIs(t, m.Cancel("wrong"), ErrTokenMismatch)
	require.NoError(t, m.Cancel(p.Token))
	require.Equal(t, StateIdle, m.State())

	_, err := m.Confirm(context.Background(), p.Token, func(context.Context, Pending) error {
		t.Fatal("cancelled action must not run")
		return nil
	})
	require.ErrorIs(t, err, ErrNotConfirming)
}

func TestMachine_TokenMismatchAndReplace(t *testing.T) {
	m := NewMachine()
	first, _ := m.Begin(KindMakePublic, "n4")
	second, _ := m.Begin(KindMakePrivate, "n5")
	require.NotEqual(t, first.Token, second.Token)

	_, err := m.Confirm(context.Background(), first.Token, func(context.Context, Pending) error { return nil })
	require.ErrorIs(t, err, ErrTokenMismatch)

	got, ok := m.Pending()
	require.True(t, ok)
	require.Equal(t, KindMakePrivate, got.Kind)
}

func TestMachine_BusyWhileInFlight(t *testing.T) {
	m := NewMachine()
	p, _ := m.Begin(KindTrash, "n6")

	_, err := m.Confirm(context.Background(), p.Token, func(context.Context, Pending) error {
		_, err := m.Begin(KindTrash, "n7")
		require.ErrorIs(t, err, ErrBusy)
		return nil
	})
	require.NoError(t, err)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("make-public")
	require.True(t, ok)
	require.Equal(t, KindMakePublic, k)

	_, ok = ParseKind("explode")
	require.False(t, ok)
}

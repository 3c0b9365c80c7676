// Package action gates destructive note actions behind an explicit
// confirmation step.
package action

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateConfirming
	StateInFlight
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfirming:
		return "confirming"
	case StateInFlight:
		return "in-flight"
	case StateSettled:
		return "settled"
	}
	return "unknown"
}

type Kind string

const (
	KindTrash       Kind = "trash"
	KindRestore     Kind = "restore"
	KindDelete      Kind = "delete"
	KindMakePublic  Kind = "make-public"
	KindMakePrivate Kind = "make-private"
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindTrash, KindRestore, KindDelete, KindMakePublic, KindMakePrivate:
		return k, true
	}
	return "", false
}

var (
	ErrNotConfirming = errors.New("action: no confirmation pending")
	ErrTokenMismatch = errors.New("action: confirmation token does not match")
	ErrBusy          = errors.New("action: another action is in flight")
)

// Pending is the action awaiting confirmation.
type Pending struct {
	Token  string
	Kind   Kind
	NoteID string
}

// Machine tracks the confirmation dialog of one browser:
// idle -> confirming -> in-flight -> settled -> idle, or confirming -> idle on cancel.
type Machine struct {
	mu      sync.Mutex
	state   State
	pending Pending
	observe func(from, to State)
}

type Option func(*Machine)

// WithObserver calls fn on every state transition.
func WithObserver(fn func(from, to State)) Option {
	return func(m *Machine) { m.observe = fn }
}

func NewMachine(opts ...Option) *Machine {
	m := &Machine{}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Begin opens a confirmation for kind on noteID, replacing any earlier
// unconfirmed one.
func (m *Machine) Begin(kind Kind, noteID string) (Pending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateInFlight {
		return Pending{}, ErrBusy
	}
	m.pending = Pending{Token: uuid.NewString(), Kind: kind, NoteID: noteID}
	m.transition(StateConfirming)
	return m.pending, nil
}

// Pending returns the action awaiting confirmation, if any.
func (m *Machine) Pending() (Pending, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateConfirming {
		return Pending{}, false
	}
	return m.pending, true
}

func (m *Machine) Cancel(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateConfirming {
		return ErrNotConfirming
	}
	if token != m.pending.Token {
		return ErrTokenMismatch
	}
	m.pending = Pending{}
	m.transition(StateIdle)
	return nil
}

// Confirm runs the pending action exactly once. A second Confirm with the same
// token finds no pending action and returns ErrNotConfirming without calling run.
func (m *Machine) Confirm(ctx context.Context, token string, run func(context.Context, Pending) error) (Pending, error) {
	m.mu.Lock()
	if m.state != StateConfirming {
		m.mu.Unlock()
		return Pending{}, ErrNotConfirming
	}
	if token != m.pending.Token {
		m.mu.Unlock()
		return Pending{}, ErrTokenMismatch
	}
	p := m.pending
	m.transition(StateInFlight)
	m.mu.Unlock()

	err := run(ctx, p)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.transition(StateSettled)
	m.pending = Pending{}
	m.transition(StateIdle)
	return p, err
}

func (m *Machine) transition(to State) {
	from := m.state
	m.state = to
	if m.observe != nil {
		m.observe(from, to)
	}
}

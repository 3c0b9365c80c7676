// Package state owns the per-browser client state. A Scope is created lazily
// for each browser and dropped after it has been idle for a while.
package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/notely-web/internal/action"
	"example.com/notely-web/internal/form"
	"example.com/notely-web/internal/query"
	"example.com/notely-web/internal/session"
	"example.com/notely-web/internal/toast"
)

type Scope struct {
	ID      string
	Session *session.Store
	Form    *form.Store
	Toasts  *toast.Queue
	Queries *query.Client
	Actions *action.Machine

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Scope) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Scope) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

type Options struct {
	IdleTTL       time.Duration
	ToastDuration time.Duration
	StaleTime     time.Duration
	// RetryHref builds the POST target of a toast's Retry action.
	RetryHref func(toastID string) string
	Now       func() time.Time
}

type Registry struct {
	mu     sync.Mutex
	scopes map[string]*Scope
	opts   Options
	log    *slog.Logger
}

func NewRegistry(log *slog.Logger, opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{scopes: make(map[string]*Scope), opts: opts, log: log}
}

// Get returns the live scope with id and marks it as used.
func (r *Registry) Get(id string) (*Scope, bool) {
	r.mu.Lock()
	s, ok := r.scopes[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	s.touch(r.opts.Now())
	return s, true
}

// Create starts a fresh scope under a new random id.
func (r *Registry) Create() *Scope {
	toasts := toast.NewQueue(r.opts.ToastDuration)
	s := &Scope{
		ID:      uuid.NewString(),
		Session: session.NewStore(),
		Form:    form.NewStore(),
		Toasts:  toasts,
		Queries: query.NewClient(toasts, query.Options{
			StaleTime: r.opts.StaleTime,
			RetryHref: r.opts.RetryHref,
			Now:       r.opts.Now,
		}),
		Actions:  action.NewMachine(),
		lastSeen: r.opts.Now(),
	}
	r.mu.Lock()
	r.scopes[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scopes)
}

// Sweep drops scopes idle for longer than IdleTTL and returns how many went.
func (r *Registry) Sweep() int {
	if r.opts.IdleTTL <= 0 {
		return 0
	}
	now := r.opts.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.scopes {
		if s.idleSince(now) > r.opts.IdleTTL {
			delete(r.scopes, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug("swept idle scopes", slog.Int("count", n), slog.Int("live", r.Len()))
			}
		}
	}
}

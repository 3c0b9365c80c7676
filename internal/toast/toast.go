package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Action is an optional follow-up offered on a toast. Href is the POST target.
type Action struct {
	Label string
	Href  string
}

type Toast struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	Action      *Action
	Duration    time.Duration
	CreatedAt   time.Time
}

func (t Toast) WithAction(label, href string) Toast {
	t.Action = &Action{Label: label, Href: href}
	return t
}

func (t Toast) expired(now time.Time) bool {
	return t.Duration > 0 && now.After(t.CreatedAt.Add(t.Duration))
}

// Queue holds the pending notifications of one browser.
type Queue struct {
	mu       sync.Mutex
	items    []Toast
	duration time.Duration
	now      func() time.Time
}

// NewQueue returns a queue whose toasts expire after duration unless they set
// their own. A non-positive duration keeps toasts until dismissed.
func NewQueue(duration time.Duration) *Queue {
	return &Queue{duration: duration, now: time.Now}
}

// Push enqueues t and returns its id.
func (q *Queue) Push(t Toast) string {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Duration == 0 {
		t.Duration = q.duration
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = q.now()
	}
	q.items = append(q.items, t)
	return t.ID
}

// List returns the toasts that have not expired, oldest first.
func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	active := q.items[:0]
	for _, t := range q.items {
		if t.expired(now) {
			continue
		}
		active = append(active, t)
	}
	q.items = active
	if len(active) == 0 {
		return nil
	}
	out := make([]Toast, len(active))
	copy(out, active)
	return out
}

func (q *Queue) Get(id string) (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, t := range q.items {
		if t.ID == id {
			return t, true
		}
	}
	return Toast{}, false
}

func (q *Queue) Dismiss(id string) {
	if id == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	next := q.items[:0]
	for _, t := range q.items {
		if t.ID == id {
			continue
		}
		next = append(next, t)
	}
	q.items = next
}

func (q *Queue) DismissAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

package form

import "sync"

// Note holds the fields of a note being composed or edited.
type Note struct {
	ID       string `json:"id"`
	Title    string `json:"title" validate:"notblank"`
	Synopsis string `json:"synopsis" validate:"notblank"`
	Content  string `json:"content" validate:"notblank"`
	IsPublic bool   `json:"isPublic"`
	UserID   string `json:"userId,omitempty"`
}

func (n Note) Validate() error {
	return Validate(n)
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Title    *string
	Synopsis *string
	Content  *string
	IsPublic *bool
}

// Store holds the in-progress note form of one browser.
type Store struct {
	mu        sync.RWMutex
	note      Note
	currentID string
	// held marks the fields as an unsaved draft the next edit page must keep.
	held bool
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Snapshot() Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.note
}

func (s *Store) CurrentNoteID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

func (s *Store) Set(n Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.note = n
}

func (s *Store) Update(p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Title != nil {
		s.note.Title = *p.Title
	}
	if p.Synopsis != nil {
		s.note.Synopsis = *p.Synopsis
	}
	if p.Content != nil {
		s.note.Content = *p.Content
	}
	if p.IsPublic != nil {
		s.note.IsPublic = *p.IsPublic
	}
}

func (s *Store) SetCurrentNoteID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = id
}

// Reset clears both the fields and the current note id.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.note = Note{}
	s.currentID = ""
	s.held = false
}

// HoldDraft keeps the current fields for the next edit page mount, after a
// submit that did not go through.
func (s *Store) HoldDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = true
}

// TakeDraft reports whether a held draft exists for id and clears the hold.
func (s *Store) TakeDraft(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.held && s.currentID == id
	s.held = false
	return ok
}

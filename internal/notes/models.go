package notes

import (
	"time"

	"example.com/notely-web/internal/account"
	"example.com/notely-web/internal/form"
)

type Note struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Title       string        `json:"title"`
	Synopsis    string        `json:"synopsis"`
	Content     string        `json:"content"`
	IsPublic    bool          `json:"isPublic"`
	IsDeleted   bool          `json:"isDeleted"`
	DateCreated time.Time     `json:"dateCreated"`
	LastUpdated time.Time     `json:"lastUpdated"`
	User        *account.User `json:"user,omitempty"`
}

// Edited reports whether the note changed after it was created.
func (n Note) Edited() bool {
	return !n.LastUpdated.IsZero() && !n.LastUpdated.Equal(n.DateCreated)
}

// Form pre-fills the editor with n.
func (n Note) Form() form.Note {
	return form.Note{
		ID:       n.ID,
		Title:    n.Title,
		Synopsis: n.Synopsis,
		Content:  n.Content,
		IsPublic: n.IsPublic,
		UserID:   n.UserID,
	}
}

type CreateNoteRequest struct {
	Title    string `json:"title"`
	Synopsis string `json:"synopsis"`
	Content  string `json:"content"`
	IsPublic bool   `json:"isPublic"`
}

type UpdateNoteRequest struct {
	Title    string `json:"title"`
	Synopsis string `json:"synopsis"`
	Content  string `json:"content"`
	IsPublic bool   `json:"isPublic"`
}

func createRequest(f form.Note) CreateNoteRequest {
	return CreateNoteRequest{Title: f.Title, Synopsis: f.Synopsis, Content: f.Content, IsPublic: f.IsPublic}
}

func updateRequest(f form.Note) UpdateNoteRequest {
	return UpdateNoteRequest{Title: f.Title, Synopsis: f.Synopsis, Content: f.Content, IsPublic: f.IsPublic}
}

type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// VisibilityOf returns the visibility that makes a note public when public is true.
func VisibilityOf(public bool) Visibility {
	if public {
		return Public
	}
	return Private
}

type ListParams struct {
	Query string
}

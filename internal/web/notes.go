package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"example.com/notely-web/internal/editor"
	"example.com/notely-web/internal/form"
	"example.com/notely-web/internal/lib/logger/sl"
	"example.com/notely-web/internal/notes"
	"example.com/notely-web/internal/toast"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	repo := s.repo(r)
	if r.URL.Query().Get("reload") == "1" {
		repo.Reload(notes.KeyNotes)
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	res := repo.List(r.Context(), notes.ListParams{Query: q})

	data := ViewData{
		Title:           "Dashboard",
		ContentTemplate: "dashboard",
		SearchQuery:     q,
		SearchAction:    "/dashboard",
		Notes:           res.Data,
		ReloadHref:      "/dashboard?reload=1",
	}
	if res.IsError() {
		data.LoadError = loadError(res.Err, "Failed to load notes")
	}
	s.page(w, r, http.StatusOK, data)
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	repo := s.repo(r)
	if r.URL.Query().Get("reload") == "1" {
		repo.Reload(notes.NoteKey(id))
	}
	res := repo.Get(r.Context(), id)

	data := ViewData{
		Title:           "Note",
		ContentTemplate: "note",
		Note:            res.Data,
		ReloadHref:      noteHref(id) + "?reload=1",
	}
	if res.IsError() {
		data.LoadError = loadError(res.Err, "Failed to load note")
	} else {
		data.Title = res.Data.Title
	}
	s.page(w, r, http.StatusOK, data)
}

func (s *Server) handleTrash(w http.ResponseWriter, r *http.Request) {
	repo := s.repo(r)
	if r.URL.Query().Get("reload") == "1" {
		repo.Reload(notes.KeyTrash)
	}
	res := repo.Trash(r.Context())

	data := ViewData{
		Title:           "Trash",
		ContentTemplate: "trash",
		Notes:           res.Data,
		ReloadHref:      "/dashboard/notes/trash?reload=1",
	}
	if res.IsError() {
		data.LoadError = loadError(res.Err, "Failed to load trash")
	}
	s.page(w, r, http.StatusOK, data)
}

func (s *Server) handlePrivacy(w http.ResponseWriter, r *http.Request) {
	repo := s.repo(r)
	if r.URL.Query().Get("reload") == "1" {
		repo.Reload(notes.KeyNotes)
	}
	res := repo.List(r.Context(), notes.ListParams{})
	public, private := notes.Partition(res.Data)

	data := ViewData{
		Title:           "Privacy",
		ContentTemplate: "privacy",
		PublicNotes:     public,
		PrivateNotes:    private,
		ReloadHref:      "/dashboard/notes/privacy?reload=1",
	}
	if res.IsError() {
		data.LoadError = loadError(res.Err, "Failed to load notes")
	}
	s.page(w, r, http.StatusOK, data)
}

// handleNewNote renders the compose form from the form store. A draft left by
// the edit page is discarded.
func (s *Server) handleNewNote(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r.Context())
	if sc.Form.CurrentNoteID() != "" {
		sc.Form.Reset()
	}
	f := sc.Form.Snapshot()

	ed := editor.Mount(s.editor, s.editorOptions(), f.Content, nil)
	defer ed.Unmount()

	s.page(w, r, http.StatusOK, ViewData{
		Title:           "New note",
		ContentTemplate: "editor",
		Form:            f,
		FormAction:      "/dashboard/notes/new",
		Editor:          ed.View(),
	})
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	const op = "web.handleCreateNote"
	sc := scopeFrom(r.Context())
	if sc.Form.CurrentNoteID() != "" {
		sc.Form.Reset()
	}

	f, err := s.readNoteForm(r)
	if err != nil {
		sc.Toasts.Push(toast.ValidationError("Please fill in title, synopsis and content"))
		http.Redirect(w, r, "/dashboard/notes/new", http.StatusSeeOther)
		return
	}

	if _, err := s.repo(r).Create(r.Context(), f); err != nil {
		s.log.Error("failed to create note", slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())), sl.Err(err))
		http.Redirect(w, r, "/dashboard/notes/new", http.StatusSeeOther)
		return
	}

	sc.Form.Reset()
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleEditNote loads the note into the form on every mount. Only a draft
// held by a failed submit of the same note is shown instead.
func (s *Server) handleEditNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sc := scopeFrom(r.Context())

	ed := editor.Mount(s.editor, s.editorOptions(), sc.Form.Snapshot().Content, nil)
	defer ed.Unmount()

	if !sc.Form.TakeDraft(id) {
		res := s.repo(r).Get(r.Context(), id)
		if res.IsError() {
			s.page(w, r, http.StatusOK, ViewData{
				Title:           "Edit note",
				ContentTemplate: "editor",
				LoadError:       loadError(res.Err, "Failed to load note"),
				ReloadHref:      noteHref(id) + "/edit",
			})
			return
		}
		sc.Form.Set(res.Data.Form())
		sc.Form.SetCurrentNoteID(id)
		ed.Sync(res.Data.Content)
	}

	s.page(w, r, http.StatusOK, ViewData{
		Title:           "Edit note",
		ContentTemplate: "editor",
		Form:            sc.Form.Snapshot(),
		FormAction:      noteHref(id) + "/edit",
		Editor:          ed.View(),
	})
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	const op = "web.handleUpdateNote"
	id := chi.URLParam(r, "id")
	sc := scopeFrom(r.Context())
	sc.Form.SetCurrentNoteID(id)
	editHref := noteHref(id) + "/edit"

	f, err := s.readNoteForm(r)
	if err != nil {
		sc.Toasts.Push(toast.ValidationError("Please fill in title, synopsis and content"))
		sc.Form.HoldDraft()
		http.Redirect(w, r, editHref, http.StatusSeeOther)
		return
	}

	if err := s.repo(r).Update(r.Context(), id, f); err != nil {
		s.log.Error("failed to update note", slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())), sl.Err(err))
		sc.Form.HoldDraft()
		http.Redirect(w, r, editHref, http.StatusSeeOther)
		return
	}

	sc.Form.Reset()
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// readNoteForm copies the submitted fields into the form store, passing the
// content through the editor widget, and validates the result.
func (s *Server) readNoteForm(r *http.Request) (form.Note, error) {
	sc := scopeFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		return form.Note{}, errors.Join(form.ErrInvalid, err)
	}

	ed := editor.Mount(s.editor, s.editorOptions(), sc.Form.Snapshot().Content, func(v string) {
		sc.Form.Update(form.Patch{Content: &v})
	})
	defer ed.Unmount()

	title := r.PostFormValue("title")
	synopsis := r.PostFormValue("synopsis")
	public := r.PostFormValue("isPublic") != ""
	sc.Form.Update(form.Patch{Title: &title, Synopsis: &synopsis, IsPublic: &public})
	ed.Input(r.PostFormValue("content"))

	f := sc.Form.Snapshot()
	return f, f.Validate()
}

func noteHref(id string) string {
	return "/dashboard/notes/" + url.PathEscape(id)
}

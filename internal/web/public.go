package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"example.com/notely-web/internal/api"
	"example.com/notely-web/internal/notes"
	"example.com/notely-web/internal/toast"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	res := s.repo(r).PublicList(r.Context(), notes.ListParams{})
	latest := res.Data
	if len(latest) > 3 {
		latest = latest[:3]
	}
	s.page(w, r, http.StatusOK, ViewData{
		Title:           "Notely",
		ContentTemplate: "home",
		Notes:           latest,
	})
}

func (s *Server) handlePublicNotes(w http.ResponseWriter, r *http.Request) {
	repo := s.repo(r)
	if r.URL.Query().Get("reload") == "1" {
		repo.Reload(notes.PublicListKey())
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	res := repo.PublicList(r.Context(), notes.ListParams{Query: q})

	data := ViewData{
		Title:           "Public notes",
		ContentTemplate: "public_notes",
		SearchQuery:     q,
		SearchAction:    "/public/notes",
		Notes:           res.Data,
		ReloadHref:      "/public/notes?reload=1",
	}
	if res.IsError() {
		data.LoadError = loadError(res.Err, "Failed to load public notes")
	}
	s.page(w, r, http.StatusOK, data)
}

// handlePublicNote shows a note in the reader. Browsers carrying upstream
// cookies can read their own private notes here too.
func (s *Server) handlePublicNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	repo := s.repo(r)
	if r.URL.Query().Get("reload") == "1" {
		repo.Reload(notes.PublicNoteKey(id))
	}
	res := repo.PublicNote(r.Context(), id, api.HasCookies(r.Context()))

	data := ViewData{
		Title:           "Note",
		ContentTemplate: "reader",
		Note:            res.Data,
		ReloadHref:      "/public/notes/" + url.PathEscape(id) + "?reload=1",
	}
	status := http.StatusOK
	if res.IsError() {
		data.LoadError = loadError(res.Err, "Failed to load note")
		if api.IsKind(res.Err, api.KindNotFound) {
			status = http.StatusNotFound
		}
	} else {
		data.Title = res.Data.Title
	}
	s.page(w, r, status, data)
}

func loadError(err error, fallback string) string {
	if api.IsKind(err, api.KindTransport) {
		return toast.NetworkError().Description
	}
	return api.Message(err, fallback)
}

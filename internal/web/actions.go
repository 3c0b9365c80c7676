package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"example.com/notely-web/internal/action"
	"example.com/notely-web/internal/lib/logger/sl"
	"example.com/notely-web/internal/notes"
	"example.com/notely-web/internal/toast"
)

// handleActionDialog opens the confirmation dialog for a note action.
func (s *Server) handleActionDialog(w http.ResponseWriter, r *http.Request) {
	kind, ok := action.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	id := chi.URLParam(r, "id")
	sc := scopeFrom(r.Context())
	ret := safeReturn(r.URL.Query().Get("return"), defaultReturn(kind))

	p, err := sc.Actions.Begin(kind, id)
	if err != nil {
		sc.Toasts.Push(toast.Warning("Please wait", "Another action is still in progress"))
		http.Redirect(w, r, ret, http.StatusSeeOther)
		return
	}

	s.page(w, r, http.StatusOK, ViewData{
		Title:           dialogFor(p, ret).Title,
		ContentTemplate: "dialog",
		Dialog:          dialogFor(p, ret),
	})
}

// handleActionConfirm runs the pending action once. Replayed or stale tokens
// issue no request.
func (s *Server) handleActionConfirm(w http.ResponseWriter, r *http.Request) {
	const op = "web.handleActionConfirm"
	sc := scopeFrom(r.Context())
	repo := s.repo(r)
	token := r.PostFormValue("token")

	p, err := sc.Actions.Confirm(r.Context(), token, func(ctx context.Context, p action.Pending) error {
		return runAction(ctx, repo, p)
	})
	ret := safeReturn(r.PostFormValue("return"), defaultReturn(p.Kind))

	switch {
	case errors.Is(err, action.ErrNotConfirming), errors.Is(err, action.ErrTokenMismatch):
		sc.Toasts.Push(toast.Warning("Action expired", "Please try again"))
	case err != nil:
		s.log.Error("note action failed",
			slog.String("op", op),
			slog.String("kind", string(p.Kind)),
			slog.String("note_id", p.NoteID),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
	}
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

func (s *Server) handleActionCancel(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r.Context())
	_ = sc.Actions.Cancel(r.PostFormValue("token"))
	http.Redirect(w, r, safeReturn(r.PostFormValue("return"), "/dashboard"), http.StatusSeeOther)
}

func runAction(ctx context.Context, repo *notes.Repository, p action.Pending) error {
	switch p.Kind {
	case action.KindTrash:
		return repo.MoveToTrash(ctx, p.NoteID)
	case action.KindRestore:
		return repo.Restore(ctx, p.NoteID)
	case action.KindDelete:
		return repo.DeletePermanently(ctx, p.NoteID)
	case action.KindMakePublic:
		return repo.SetVisibility(ctx, p.NoteID, notes.Public)
	case action.KindMakePrivate:
		return repo.SetVisibility(ctx, p.NoteID, notes.Private)
	}
	return nil
}

func defaultReturn(k action.Kind) string {
	switch k {
	case action.KindRestore, action.KindDelete:
		return "/dashboard/notes/trash"
	case action.KindMakePublic, action.KindMakePrivate:
		return "/dashboard/notes/privacy"
	}
	return "/dashboard"
}

// safeReturn accepts only local absolute paths.
func safeReturn(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}

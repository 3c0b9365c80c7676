package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"example.com/notely-web/internal/query"
	"example.com/notely-web/internal/toast"
)

func (s *Server) handleToastDismiss(w http.ResponseWriter, r *http.Request) {
	scopeFrom(r.Context()).Toasts.Dismiss(chi.URLParam(r, "id"))
	http.Redirect(w, r, back(r, "/"), http.StatusSeeOther)
}

// handleToastRetry re-issues the mutation that failed with the given toast.
func (s *Server) handleToastRetry(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r.Context())
	id := chi.URLParam(r, "id")
	sc.Toasts.Dismiss(id)

	err := sc.Queries.Retry(r.Context(), id)
	if errors.Is(err, query.ErrUnknownRetry) {
		sc.Toasts.Push(toast.Info("Nothing to retry", "This action can no longer be retried"))
	}
	http.Redirect(w, r, back(r, "/dashboard"), http.StatusSeeOther)
}

// back returns the local path of the referring page, or fallback.
func back(r *http.Request, fallback string) string {
	if ret := r.PostFormValue("return"); ret != "" {
		return safeReturn(ret, fallback)
	}
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return fallback
	}
	return safeReturn(ref.RequestURI(), fallback)
}

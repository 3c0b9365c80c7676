// Package web serves the notely pages. It renders HTML on the server and talks
// to the upstream notes API on behalf of each browser.
package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"example.com/notely-web/internal/account"
	"example.com/notely-web/internal/config"
	"example.com/notely-web/internal/editor"
	"example.com/notely-web/internal/notes"
	"example.com/notely-web/internal/state"
)

// API is everything the pages need from the upstream.
type API interface {
	notes.Remote
	account.Remote
}

type Server struct {
	cfg      config.Config
	log      *slog.Logger
	api      API
	accounts *account.Service
	registry *state.Registry
	views    *Templates
	editor   editor.Factory
	router   chi.Router
}

func NewServer(cfg config.Config, log *slog.Logger, upstream API, registry *state.Registry) (*Server, error) {
	f, err := editor.FactoryFor(cfg.EditorFormat)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg,
		log:      log.With(slog.String("component", "web")),
		api:      upstream,
		accounts: account.New(upstream),
		registry: registry,
		views:    MustParseTemplates(),
		editor:   f,
	}
	s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// RetryHref is the POST target of a toast's Retry action.
func RetryHref(toastID string) string {
	return "/toasts/" + toastID + "/retry"
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{"status": "ok", "scopes": s.registry.Len()})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.withScope)

		r.Get("/", s.handleHome)
		r.Get("/public/notes", s.handlePublicNotes)
		r.Get("/public/notes/{id}", s.handlePublicNote)

		r.Post("/toasts/{id}/dismiss", s.handleToastDismiss)
		r.Post("/toasts/{id}/retry", s.handleToastRetry)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/login", s.handleLoginPage)
			r.Post("/login", s.handleLogin)
			r.Get("/register", s.handleRegisterPage)
			r.Post("/register", s.handleRegister)
			r.Post("/logout", s.handleLogout)

			r.Group(func(r chi.Router) {
				r.Use(s.requireSession)

				r.Get("/", s.handleDashboard)
				r.Get("/notes/new", s.handleNewNote)
				r.Post("/notes/new", s.handleCreateNote)
				r.Get("/notes/trash", s.handleTrash)
				r.Get("/notes/privacy", s.handlePrivacy)
				r.Get("/notes/{id}", s.handleNote)
				r.Get("/notes/{id}/edit", s.handleEditNote)
				r.Post("/notes/{id}/edit", s.handleUpdateNote)

				r.Get("/actions/{kind}/{id}", s.handleActionDialog)
				r.Post("/actions/confirm", s.handleActionConfirm)
				r.Post("/actions/cancel", s.handleActionCancel)

				r.Get("/profile", s.handleProfile)
				r.Get("/profile/update", s.handleProfileForm)
				r.Post("/profile/update", s.handleProfileUpdate)
				r.Get("/profile/update/password", s.handlePasswordForm)
				r.Post("/profile/update/password", s.handlePasswordUpdate)
			})
		})
	})

	s.router = r
}

func (s *Server) page(w http.ResponseWriter, r *http.Request, status int, data ViewData) {
	sc := scopeFrom(r.Context())
	if u, ok := sc.Session.User(); ok {
		data.User = &u
	}
	data.Toasts = sc.Toasts.List()
	data.NavDelayMS = s.cfg.NavigationDelay.Milliseconds()
	s.views.RenderPage(w, status, data)
}

func (s *Server) repo(r *http.Request) *notes.Repository {
	return notes.NewRepository(s.api, scopeFrom(r.Context()).Queries)
}

func (s *Server) editorOptions() editor.Options {
	opts := editor.DefaultOptions()
	opts.Height = s.cfg.EditorHeight
	return opts
}

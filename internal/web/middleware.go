package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"example.com/notely-web/internal/api"
	"example.com/notely-web/internal/lib/logger/sl"
	"example.com/notely-web/internal/session"
	"example.com/notely-web/internal/state"
	"example.com/notely-web/internal/toast"
)

type scopeKey struct{}

func scopeFrom(ctx context.Context) *state.Scope {
	sc, _ := ctx.Value(scopeKey{}).(*state.Scope)
	return sc
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	log = log.With(slog.String("component", "middleware/logger"))
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			entry := log.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()
			defer func() {
				entry.Info("request completed",
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("duration", time.Since(t1).String()),
				)
			}()
			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

// withScope attaches the browser's scope, creating one on first visit, and
// forwards the browser's other cookies to credentialed upstream calls.
func (s *Server) withScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sc *state.Scope
		if c, err := r.Cookie(s.cfg.SessionCookie); err == nil {
			sc, _ = s.registry.Get(c.Value)
		}
		if sc == nil {
			sc = s.registry.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.SessionCookie,
				Value:    sc.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		var upstream []*http.Cookie
		for _, c := range r.Cookies() {
			if c.Name != s.cfg.SessionCookie {
				upstream = append(upstream, c)
			}
		}

		ctx := context.WithValue(r.Context(), scopeKey{}, sc)
		ctx = api.WithCookies(ctx, upstream)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession runs the session check on every protected page load and
// sends browsers without a session to the login page.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "web.requireSession"
		sc := scopeFrom(r.Context())

		u, err := sc.Session.Check(r.Context(), s.api)
		if err != nil {
			s.log.Debug("session check failed",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				sl.Err(err),
			)
			if api.IsKind(err, api.KindTransport) {
				sc.Toasts.Push(toast.NetworkError())
			}
			http.Redirect(w, r, "/dashboard/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(session.WithUser(r.Context(), u)))
	})
}

// relayCookies passes upstream session cookies on to the browser, scoped to
// this host.
func relayCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, c := range cookies {
		out := *c
		out.Domain = ""
		out.Path = "/"
		http.SetCookie(w, &out)
	}
}

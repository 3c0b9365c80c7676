package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"example.com/notely-web/internal/account"
	"example.com/notely-web/internal/api"
	"example.com/notely-web/internal/lib/logger/sl"
	"example.com/notely-web/internal/query"
	"example.com/notely-web/internal/session"
	"example.com/notely-web/internal/state"
	"example.com/notely-web/internal/toast"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, ViewData{Title: "Author login", ContentTemplate: "login"})
}

// handleLogin signs in upstream and relays the session cookie. The session
// store is filled by the check on the next protected page, not here.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r.Context())
	creds := account.Credentials{
		EmailAddress: r.PostFormValue("emailAddress"),
		Password:     r.PostFormValue("password"),
	}

	sess, err := s.accounts.Login(r.Context(), creds)
	if err != nil {
		if t, ok := validationToast(err); ok {
			sc.Toasts.Push(t)
		} else {
			sc.Toasts.Push(toast.LoginFailed(failureMessage(err)))
		}
		http.Redirect(w, r, "/dashboard/login", http.StatusSeeOther)
		return
	}

	resetScope(sc)
	relayCookies(w, sess.Cookies)
	sc.Toasts.Push(toast.LoginSuccess())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, ViewData{Title: "Create an author account", ContentTemplate: "register"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r.Context())
	reg := account.Registration{
		FirstName:       r.PostFormValue("firstName"),
		LastName:        r.PostFormValue("lastName"),
		EmailAddress:    r.PostFormValue("emailAddress"),
		Username:        r.PostFormValue("username"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}

	sess, err := s.accounts.Register(r.Context(), reg)
	if err != nil {
		if t, ok := validationToast(err); ok {
			sc.Toasts.Push(t)
		} else {
			sc.Toasts.Push(toast.RegistrationFailed(failureMessage(err)))
		}
		http.Redirect(w, r, "/dashboard/register", http.StatusSeeOther)
		return
	}

	resetScope(sc)
	relayCookies(w, sess.Cookies)
	sc.Toasts.Push(toast.RegistrationSuccess())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r)
	scopeFrom(r.Context()).Toasts.Push(toast.LogoutSuccess())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// endSession logs out upstream and drops everything cached for the browser.
// The local state is cleared even when the upstream call fails.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	const op = "web.endSession"
	sc := scopeFrom(r.Context())

	var cookies []*http.Cookie
	err := sc.Session.Logout(r.Context(), session.LogoutFunc(func(ctx context.Context) error {
		c, err := s.accounts.Logout(ctx)
		cookies = c
		return err
	}))
	if err != nil {
		s.log.Warn("upstream logout failed",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
	}
	resetScope(sc)
	relayCookies(w, cookies)
}

// resetScope drops everything tied to the previous author: cached reads,
// retryable writes, the note draft and any open confirmation.
func resetScope(sc *state.Scope) {
	sc.Queries.Clear()
	sc.Form.Reset()
	if p, ok := sc.Actions.Pending(); ok {
		_ = sc.Actions.Cancel(p.Token)
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, ViewData{Title: "Profile", ContentTemplate: "profile"})
}

func (s *Server) handleProfileForm(w http.ResponseWriter, r *http.Request) {
	u, _ := session.CurrentUser(r.Context())
	s.page(w, r, http.StatusOK, ViewData{
		Title:           "Update profile",
		ContentTemplate: "profile_form",
		Profile:         account.ProfileOf(u),
	})
}

// handleProfileUpdate saves the profile and, on success, ends the session so
// the author signs in again with the new details.
func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r.Context())
	p := account.Profile{
		FirstName:    r.PostFormValue("firstName"),
		LastName:     r.PostFormValue("lastName"),
		Username:     r.PostFormValue("username"),
		EmailAddress: r.PostFormValue("emailAddress"),
	}
	if err := p.Validate(); err != nil {
		if errors.Is(err, account.ErrInvalidEmail) {
			sc.Toasts.Push(toast.ValidationError("Please enter a valid email address"))
		} else {
			sc.Toasts.Push(toast.ValidationError("All fields are required"))
		}
		http.Redirect(w, r, "/dashboard/profile/update", http.StatusSeeOther)
		return
	}

	err := sc.Queries.Mutate(r.Context(), query.Mutation{
		Name:    "Updating profile",
		Success: toast.Success("Profile updated!", "Your profile has been updated. Please login again."),
		Failure: func(err error) toast.Toast {
			return toast.Error("Profile update failed", or(failureMessage(err), "Unable to update your profile"))
		},
		Retryable: true,
	}, func(ctx context.Context) error {
		_, err := s.accounts.UpdateProfile(ctx, p)
		return err
	})
	if err != nil {
		http.Redirect(w, r, "/dashboard/profile/update", http.StatusSeeOther)
		return
	}

	s.endSession(w, r)
	http.Redirect(w, r, "/dashboard/login", http.StatusSeeOther)
}

func (s *Server) handlePasswordForm(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, ViewData{Title: "Update password", ContentTemplate: "password_form"})
}

func (s *Server) handlePasswordUpdate(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r.Context())
	pc := account.PasswordChange{
		CurrentPassword: r.PostFormValue("currentPassword"),
		NewPassword:     r.PostFormValue("newPassword"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
	if err := pc.Validate(); err != nil {
		if errors.Is(err, account.ErrPasswordMismatch) {
			sc.Toasts.Push(toast.ValidationError("Passwords do not match"))
		} else {
			sc.Toasts.Push(toast.ValidationError("All fields are required"))
		}
		http.Redirect(w, r, "/dashboard/profile/update/password", http.StatusSeeOther)
		return
	}

	err := sc.Queries.Mutate(r.Context(), query.Mutation{
		Name:    "Updating password",
		Success: toast.Success("Password updated successfully!", ""),
		Failure: func(err error) toast.Toast {
			return toast.Error("Password update failed", or(failureMessage(err), "Unable to update your password"))
		},
	}, func(ctx context.Context) error {
		return s.accounts.ChangePassword(ctx, pc)
	})
	if err != nil {
		http.Redirect(w, r, "/dashboard/profile/update/password", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard/profile", http.StatusSeeOther)
}

// validationToast maps a form validation error to its toast.
func validationToast(err error) (toast.Toast, bool) {
	switch {
	case errors.Is(err, account.ErrPasswordMismatch):
		return toast.PasswordMismatch(), true
	case errors.Is(err, account.ErrInvalidEmail):
		return toast.ValidationError("Please enter a valid email address"), true
	case errors.Is(err, account.ErrMissingFields):
		return toast.ValidationError("Please provide all required fields"), true
	}
	return toast.Toast{}, false
}

func failureMessage(err error) string {
	if api.IsKind(err, api.KindTransport) {
		return toast.NetworkError().Description
	}
	return api.Message(err, "")
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

package account

import (
	"context"
	"net/http"
	"strings"

	"example.com/notely-web/internal/stringsx"
)

// Remote is the upstream auth API. It must be stubbed in unit tests.
type Remote interface {
	Login(ctx context.Context, c Credentials) (Session, error)
	Register(ctx context.Context, r Registration) (Session, error)
	Logout(ctx context.Context) ([]*http.Cookie, error)
	Me(ctx context.Context) (User, error)
	ChangePassword(ctx context.Context, p PasswordChange) error
	UpdateProfile(ctx context.Context, p Profile) (User, error)
}

// Service validates account forms before they reach the upstream. A form that
// fails validation never produces a request.
type Service struct {
	remote Remote
}

func New(remote Remote) *Service {
	return &Service{remote: remote}
}

func (s *Service) Login(ctx context.Context, c Credentials) (Session, error) {
	c.EmailAddress = stringsx.Normalize(c.EmailAddress)
	if err := c.Validate(); err != nil {
		return Session{}, err
	}
	return s.remote.Login(ctx, c)
}

func (s *Service) Register(ctx context.Context, r Registration) (Session, error) {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Username = strings.TrimSpace(r.Username)
	r.EmailAddress = stringsx.Normalize(r.EmailAddress)
	if err := r.Validate(); err != nil {
		return Session{}, err
	}
	return s.remote.Register(ctx, r)
}

func (s *Service) ChangePassword(ctx context.Context, p PasswordChange) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.remote.ChangePassword(ctx, p)
}

func (s *Service) UpdateProfile(ctx context.Context, p Profile) (User, error) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Username = strings.TrimSpace(p.Username)
	p.EmailAddress = stringsx.Normalize(p.EmailAddress)
	if err := p.Validate(); err != nil {
		return User{}, err
	}
	return s.remote.UpdateProfile(ctx, p)
}

func (s *Service) Logout(ctx context.Context) ([]*http.Cookie, error) {
	return s.remote.Logout(ctx)
}

func (s *Service) Me(ctx context.Context) (User, error) {
	return s.remote.Me(ctx)
}

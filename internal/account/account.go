package account

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"example.com/notely-web/internal/form"
	"example.com/notely-web/internal/stringsx"
)

// User is the displayable profile of an author.
type User struct {
	ID           string `json:"id,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Username     string `json:"username"`
	EmailAddress string `json:"emailAddress"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns up to two upper-case letters for avatars.
func (u User) Initials() string {
	var b strings.Builder
	for _, s := range []string{u.FirstName, u.LastName} {
		for _, r := range strings.TrimSpace(s) {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
	}
	if b.Len() == 0 && u.Username != "" {
		return strings.ToUpper(stringsx.Clip(u.Username, 1))
	}
	return b.String()
}

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

type Credentials struct {
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
}

func (c Credentials) Validate() error { return classify(form.Validate(c)) }

type Registration struct {
	FirstName       string `json:"firstName" validate:"notblank"`
	LastName        string `json:"lastName" validate:"notblank"`
	EmailAddress    string `json:"emailAddress" validate:"required,email"`
	Username        string `json:"username" validate:"notblank"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

func (r Registration) Validate() error { return classify(form.Validate(r)) }

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=NewPassword"`
}

func (p PasswordChange) Validate() error { return classify(form.Validate(p)) }

type Profile struct {
	FirstName    string `json:"firstName" validate:"notblank"`
	LastName     string `json:"lastName" validate:"notblank"`
	Username     string `json:"username" validate:"notblank"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
}

func (p Profile) Validate() error { return classify(form.Validate(p)) }

// ProfileOf pre-fills the profile form from the current user.
func ProfileOf(u User) Profile {
	return Profile{FirstName: u.FirstName, LastName: u.LastName, Username: u.Username, EmailAddress: u.EmailAddress}
}

// Session is what the upstream returns on login and registration: the user and
// the cookies that must reach the browser.
type Session struct {
	User    User
	Cookies []*http.Cookie
}

// classify maps field failures to a single sentinel. Missing values win over
// format errors, and format errors over confirmation mismatches.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ferr *form.Error
	if !errors.As(err, &ferr) {
		return err
	}
	switch {
	case ferr.HasTag("required") || ferr.HasTag("notblank"):
		return fmt.Errorf("%w: %w", ErrMissingFields, err)
	case ferr.HasTag("email"):
		return fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	case ferr.HasTag("eqfield"):
		return fmt.Errorf("%w: %w", ErrPasswordMismatch, err)
	}
	return err
}

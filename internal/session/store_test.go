package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/notely-web/internal/account"
)

type stubChecker struct {
	meFn func(context.Context) (account.User, error)
}

func (s stubChecker) Me(ctx context.Context) (account.User, error) { return s.meFn(ctx) }

func ok(u account.User) stubChecker {
	return stubChecker{meFn: func(context.Context) (account.User, error) { return u, nil }}
}

func fail(err error) stubChecker {
	return stubChecker{meFn: func(context.Context) (account.User, error) { return account.User{}, err }}
}

func TestStore_Check(t *testing.T) {
	ada := account.User{FirstName: "Ada", EmailAddress: "ada@example.com"}
	s := NewStore()

	_, found := s.User()
	require.False(t, found)

	u, err := s.Check(context.Background(), ok(ada))
	require.NoError(t, err)
	require.Equal(t, ada, u)
	got, found := s.User()
	require.True(t, found)
	require.Equal(t, ada, got)

	boom := errors.New("401")
	_, err = s.Check(context.Background(), fail(boom))
	require.ErrorIs(t, err, boom)
	_, found = s.User()
	require.False(t, found, "a failed check clears the store")
}

func TestStore_Check_EmptyProfileIsNoSession(t *testing.T) {
	s := NewStore()
	_, _ = s.Check(context.Background(), ok(account.User{EmailAddress: "a@b.io"}))

	_, err := s.Check(context.Background(), ok(account.User{}))
	require.ErrorIs(t, err, ErrNoSession)
	_, found := s.User()
	require.False(t, found)
}

func TestStore_Logout(t *testing.T) {
	s := NewStore()
	_, _ = s.Check(context.Background(), ok(account.User{EmailAddress: "a@b.io"}))

	boom := errors.New("upstream down")
	err := s.Logout(context.Background(), LogoutFunc(func(context.Context) error { return boom }))
	require.ErrorIs(t, err, boom)
	_, found := s.User()
	require.False(t, found)

	require.NoError(t, s.Logout(context.Background(), LogoutFunc(func(context.Context) error { return nil })))
}

func TestCurrentUser(t *testing.T) {
	_, found := CurrentUser(context.Background())
	require.False(t, found)

	ctx := WithUser(context.Background(), account.User{Username: "ada"})
	u, found := CurrentUser(ctx)
	require.True(t, found)
	require.Equal(t, "ada", u.Username)
}

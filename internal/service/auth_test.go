package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookloans/library-service/internal/errs"
	"github.com/bookloans/library-service/internal/model"
)

type fakeUserRepo struct {
	fakeRepo

	users   map[string]model.User
	deleted []int
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user model.User) (model.User, error) {
	if _, ok := f.users[user.Username]; ok {
		return model.User{}, errs.ErrConflict
	}
	user.UserID = len(f.users) + 1
	f.users[user.Username] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByName(_ context.Context, username string) (model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return model.User{}, errs.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id int) (model.User, error) {
	for _, user := range f.users {
		if user.UserID == id {
			return user, nil
		}
	}
	return model.User{}, errs.ErrNotFound
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{users: map[string]model.User{}}
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), model.UserCreateRequest{
		Username: "alice",
		Password: "secret",
		Role:     "customer",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "customer", user.UserRole)
	require.NotEqual(t, "secret", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")))

	_, err = svc.Register(context.Background(), model.UserCreateRequest{
		Username: "alice",
		Password: "other",
		Role:     "user",
	})
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Len(t, repo.users, 1)
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcryptCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{users: map[string]model.User{
		"alice": {UserID: 1, Username: "alice", Password: string(hash), UserRole: "manager"},
	}}
	svc := newTestService(repo)

	t.Run("ok", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), model.AuthRequest{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), model.AuthRequest{Username: "alice", Password: "nope"})
		require.ErrorIs(t, err, errs.ErrBadCredentials)
	})

	t.Run("unknown user reports the same error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), model.AuthRequest{Username: "bob", Password: "secret"})
		require.ErrorIs(t, err, errs.ErrBadCredentials)
	})
}

func TestService_DeleteUser(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{users: map[string]model.User{
		"alice": {UserID: 1, Username: "alice"},
	}}
	svc := newTestService(repo)

	require.NoError(t, svc.DeleteUser(context.Background(), 1))
	require.Equal(t, []int{1}, repo.deleted)

	err := svc.DeleteUser(context.Background(), 42)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.Len(t, repo.deleted, 1)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakarigames/duel-services/internal/duelsvc/apperr"
	"github.com/hakarigames/duel-services/internal/duelsvc/models"
)

type fakeUserStore struct {
	byUsername map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byUsername: map[string]models.User{}}
}

func (s *fakeUserStore) CreateUser(ctx context.Context, user models.User) (string, error) {
	s.byUsername[user.Username] = user
	return user.UserId, nil
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := s.byUsername[username]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, userId string) (*models.User, error) {
	for _, u := range s.byUsername {
		if u.UserId == userId {
			return &u, nil
		}
	}
	return nil, nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.UserId)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	logged, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.UserId, logged.UserId)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Register(context.Background(), "alice", "a@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "b@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, apperr.KindIllegalAction, apperr.KindOf(err))
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Register(context.Background(), "alice", "", "pw")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "nope")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Login(context.Background(), "ghost", "pw")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

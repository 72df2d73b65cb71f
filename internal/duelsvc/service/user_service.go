package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/hakarigames/duel-services/internal/duelsvc/apperr"
	"github.com/hakarigames/duel-services/internal/duelsvc/models"
)

// UserStorer is the credential store surface the service depends on.
type UserStorer interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, userId string) (*models.User, error)
}

// UserService handles registration and login. The SHA-256 password scheme is
// carried over from the original deployment as a given.
type UserService struct {
	userStore UserStorer
}

func NewUserService(userStore UserStorer) *UserService {
	return &UserService{userStore: userStore}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperr.Validation("username, email and password are required")
	}

	existing, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Internal("failed to check username", err)
	}
	if existing != nil {
		return nil, apperr.IllegalAction("username %s is taken", username)
	}

	user := models.User{
		UserId:       uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hashPassword(password),
	}

	userId, err := s.userStore.CreateUser(ctx, user)
	if err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}
	user.UserId = userId

	return &user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperr.Validation("username and password are required")
	}

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.Authorization("user not found")
	}
	if user.PasswordHash != hashPassword(password) {
		return nil, apperr.Authorization("wrong password")
	}

	return user, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

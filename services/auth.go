package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"restaurant-ordering-api/metrics"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/store"

	"golang.org/x/crypto/bcrypt"
)

// UserStore is the credential store.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByName(ctx context.Context, username string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type AuthService struct {
	users      UserStore
	tokens     TokenIssuer
	bcryptCost int
	// dummyHash is compared against when the user does not exist, so unknown
	// names and wrong passwords cost the same.
	dummyHash []byte
	logger    *slog.Logger
}

func NewAuthService(users UserStore, tokens TokenIssuer, bcryptCost int, logger *slog.Logger) (*AuthService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare password hashing: %w", err)
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		logger:     logger,
	}, nil
}

// HashPassword returns the bcrypt hash stored for a new account.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a plain user with no capabilities.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" {
		return nil, invalidInput("username is required")
	}
	if password == "" {
		return nil, invalidInput("password is required")
	}

	_, err := s.users.UserByName(ctx, username)
	switch {
	case err == nil:
		return nil, ErrDuplicateIdentity
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("look up user: %w", err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks the password and returns a signed session token. Unknown
// names and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.UserByName(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("look up user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		metrics.RecordLogin(false)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.RecordLogin(false)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}
	metrics.RecordLogin(true)
	s.logger.Debug("user logged in", "user_id", user.ID)
	return token, nil
}

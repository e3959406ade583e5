package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"waste_tracker/internal/apperror"
	"waste_tracker/internal/domain"
)

// UserService registers and authenticates users
type UserService struct {
	users UserStore
	cost  int // bcrypt cost
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users, cost: bcrypt.DefaultCost}
}

// Register creates a user. confirm is checked only when the caller supplies it.
func (s *UserService) Register(ctx context.Context, username, password, confirm string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.NewValidationError("Please fill in all fields")
	}
	if utf8.RuneCountInString(username) > 80 {
		return nil, apperror.NewValidationError("Username must be at most 80 characters")
	}
	if confirm != "" && password != confirm {
		return nil, apperror.NewValidationError("Passwords do not match")
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to register user", err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to hash password", err)
	}
	user := &domain.User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same name
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewConflictError("Username already taken", err)
		}
		return nil, apperror.NewInternalError("Failed to register user", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	return user, nil
}

// Authenticate checks a username and password pair
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, apperror.NewInternalError("Failed to log in", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperror.NewAuthError("Invalid username or password")
	}
	return user, nil
}

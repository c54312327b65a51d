// Package service holds the domain rules between handlers and repositories.
package service

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// AuthService registers users and verifies credentials. It never stores
// or returns plaintext passwords.
type AuthService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new user after checking the email is free. The
// duplicate check happens before any write; the unique index on email
// backstops concurrent registrations.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Password == "" {
		return nil, models.NewValidationError("Password is required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("The email is already registered. Please login instead!")
	}

	digest, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: digest,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password keep
// their historical distinct messages but share one error code, so the
// messages can be collapsed in one place if that leak is ever closed.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewCredentialError("The email does not exist. Please register first.")
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		return nil, models.NewCredentialError("Wrong password. Please try again!")
	}
	return user, nil
}

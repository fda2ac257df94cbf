package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blog-server/internal/auth"
	"blog-server/internal/domain"
	"blog-server/internal/repository"
)

var (
	// ErrEmailNotFound indicates a login attempt against an unknown email.
	ErrEmailNotFound = errors.New("email not found")
	// ErrPasswordMismatch indicates the password did not match the stored hash.
	ErrPasswordMismatch = errors.New("password mismatch")
	// ErrEmailTaken is returned when signup hits an already-registered email.
	ErrEmailTaken = repository.ErrEmailTaken
	// ErrUserNotFound is returned when a token's subject no longer exists.
	ErrUserNotFound = repository.ErrUserNotFound
)

// TokenPair carries the two tokens returned by signup and login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SignupInput is the field set accepted at registration.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	GithubID  string
	AvatarURL string
}

// UserService orchestrates the signup, login and refresh flows.
type UserService interface {
	Signup(ctx context.Context, input SignupInput) (*TokenPair, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	List(ctx context.Context) ([]domain.User, error)
	SetAvatar(ctx context.Context, userID, avatarURL string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenService) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
	}
}

func (s *userService) Signup(ctx context.Context, input SignupInput) (*TokenPair, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(input.Username),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		GithubID:     input.GithubID,
		AvatarURL:    input.AvatarURL,
	}

	// uniqueness is decided by the insert itself; no read-then-create window
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issuePair(user)
}

func (s *userService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPasswordMismatch
	}

	return s.issuePair(user)
}

// Refresh validates a refresh token and mints a new access token for the same
// identity. The refresh token itself is not rotated.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) SetAvatar(ctx context.Context, userID, avatarURL string) (*domain.User, error) {
	if err := s.users.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) issuePair(user *domain.User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

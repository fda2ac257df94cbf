package repository

import (
	"context"
	"errors"

	"blog-server/internal/domain"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an insert violates the unique email index.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
}

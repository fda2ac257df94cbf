package repository

import (
	"context"
	"errors"

	"blog-server/internal/domain"
)

// ErrPostNotFound is returned when no post matches the given id.
var ErrPostNotFound = errors.New("post not found")

// PostRepository exposes persistence operations for Post entities.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
}

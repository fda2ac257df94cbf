package service

import (
	"context"

	"github.com/google/uuid"

	"blog-server/internal/domain"
	"blog-server/internal/repository"
)

// PostService coordinates post level operations backed by the repository.
type PostService interface {
	CreatePost(ctx context.Context, title, content, author string, tags []string) (*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	UpdatePost(ctx context.Context, id, title, content string, tags []string) (*domain.Post, error)
	DeletePost(ctx context.Context, id string) error
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) CreatePost(ctx context.Context, title, content, author string, tags []string) (*domain.Post, error) {
	post := &domain.Post{
		ID:      uuid.NewString(),
		Title:   title,
		Tags:    tags,
		Author:  author,
		Content: content,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.Get(ctx, id)
}

func (s *postService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *postService) UpdatePost(ctx context.Context, id, title, content string, tags []string) (*domain.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	post.Tags = tags

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, id string) error {
	return s.posts.Delete(ctx, id)
}

package mocks

import (
	"context"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"

	"github.com/stretchr/testify/mock"
)

var (
	_ repository.PostRepository    = (*PostRepository)(nil)
	_ repository.CommentRepository = (*CommentRepository)(nil)
)

// PostRepository is a mock of repository.PostRepository.
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	args := m.Called(ctx, id)
	var post *domain.Post
	if v := args.Get(0); v != nil {
		post = v.(*domain.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepository) List(ctx context.Context, search string) ([]domain.Post, error) {
	args := m.Called(ctx, search)
	var posts []domain.Post
	if v := args.Get(0); v != nil {
		posts = v.([]domain.Post)
	}
	return posts, args.Error(1)
}

func (m *PostRepository) Save(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// CommentRepository is a mock of repository.CommentRepository.
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	var comments []domain.Comment
	if v := args.Get(0); v != nil {
		comments = v.([]domain.Comment)
	}
	return comments, args.Error(1)
}

func (m *CommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

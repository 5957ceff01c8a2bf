package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"
)

// withAuthor preloads only the public columns of the author.
func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("Author", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "username")
	})
}

// GormPostRepository is the GORM implementation of repository.PostRepository.
type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := withAuthor(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d: %w", id, err)
	}
	return &post, nil
}

// List returns posts newest first. A non-empty search matches title or content.
func (r *GormPostRepository) List(ctx context.Context, search string) ([]domain.Post, error) {
	var posts []domain.Post
	q := withAuthor(r.db.WithContext(ctx))
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("gorm: list posts (search %q): %w", search, err)
	}
	return posts, nil
}

// Save inserts or updates the post row only; the preloaded author is never written.
func (r *GormPostRepository) Save(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return fmt.Errorf("gorm: save post (id: %d): %w", post.ID, err)
	}
	return nil
}

// Delete removes the post and its comments in one transaction.
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return fmt.Errorf("gorm: delete comments of post %d: %w", id, err)
		}
		res := tx.Delete(&domain.Post{}, id)
		if res.Error != nil {
			return fmt.Errorf("gorm: delete post %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return repository.ErrPostNotFound
		}
		return nil
	})
}

// GormCommentRepository is the GORM implementation of repository.CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCommentRepository")
	}
	return &GormCommentRepository{db: db}
}

// ListByPost returns the comments of a post oldest first.
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := withAuthor(r.db.WithContext(ctx)).
		Where("board_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

func (r *GormCommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("gorm: save comment on post %d: %w", comment.PostID, err)
	}
	return nil
}

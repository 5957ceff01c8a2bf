package service

import (
	"context"
	"fmt"
	"strings"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/repository"

	"github.com/sirupsen/logrus"
)

// BoardService handles the discussion board. Posts are visible to every
// logged-in user; only the author may change or remove one.
type BoardService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	activity    ActivityRecorder
}

// NewBoardService creates a BoardService.
func NewBoardService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, activity ActivityRecorder) *BoardService {
	if postRepo == nil || commentRepo == nil {
		panic("PostRepository and CommentRepository cannot be nil for BoardService")
	}
	if activity == nil {
		activity = NopActivityRecorder{}
	}
	return &BoardService{postRepo: postRepo, commentRepo: commentRepo, activity: activity}
}

// ListPosts returns all posts newest first, optionally filtered by a search term.
func (s *BoardService) ListPosts(ctx context.Context, identity domain.Identity, search string) ([]domain.Post, error) {
	search = strings.TrimSpace(search)
	posts, err := s.postRepo.List(ctx, search)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"user_id": identity.UserID, "query": search}).Error("Failed to list posts")
		return nil, ErrStoreUnavailable
	}
	return posts, nil
}

// GetPost returns a post together with its comments, oldest comment first.
func (s *BoardService) GetPost(ctx context.Context, identity domain.Identity, postID uint) (*domain.Post, []domain.Comment, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "post_id": postID})

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		mapped := mapRepoError(err)
		if mapped != ErrNotFound {
			logCtx.WithError(err).Error("Failed to load post")
		}
		return nil, nil, mapped
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load comments")
		return nil, nil, ErrStoreUnavailable
	}
	return post, comments, nil
}

// CreatePost publishes a new post authored by identity.
func (s *BoardService) CreatePost(ctx context.Context, identity domain.Identity, title, content string) (*domain.Post, error) {
	title, content, err := validatePost(title, content)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{UserID: identity.UserID, Title: title, Content: content}
	if err := s.postRepo.Save(ctx, post); err != nil {
		logrus.WithError(err).WithField("user_id", identity.UserID).Error("Failed to save new post")
		return nil, ErrStoreUnavailable
	}

	s.activity.Record(ctx, newActivity(identity, domain.ActivityPostCreated, post.ID, title))
	logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "post_id": post.ID}).Info("Post created")
	return post, nil
}

// PostForEdit loads a post for its edit form; only the author may open it.
func (s *BoardService) PostForEdit(ctx context.Context, identity domain.Identity, postID uint) (*domain.Post, error) {
	return s.loadOwnedPost(ctx, identity, postID)
}

// UpdatePost changes title and content of the identity's own post.
func (s *BoardService) UpdatePost(ctx context.Context, identity domain.Identity, postID uint, title, content string) (*domain.Post, error) {
	post, err := s.loadOwnedPost(ctx, identity, postID)
	if err != nil {
		return nil, err
	}

	title, content, err = validatePost(title, content)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.postRepo.Save(ctx, post); err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("Failed to update post")
		return nil, ErrStoreUnavailable
	}

	s.activity.Record(ctx, newActivity(identity, domain.ActivityPostUpdated, post.ID, title))
	logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "post_id": postID}).Info("Post updated")
	return post, nil
}

// DeletePost removes the identity's own post.
func (s *BoardService) DeletePost(ctx context.Context, identity domain.Identity, postID uint) error {
	if _, err := s.loadOwnedPost(ctx, identity, postID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("Failed to delete post")
		return mapRepoError(err)
	}

	s.activity.Record(ctx, newActivity(identity, domain.ActivityPostDeleted, postID, ""))
	logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "post_id": postID}).Info("Post deleted")
	return nil
}

// AddComment appends a comment to an existing post.
func (s *BoardService) AddComment(ctx context.Context, identity domain.Identity, postID uint, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}

	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		mapped := mapRepoError(err)
		if mapped != ErrNotFound {
			logrus.WithError(err).WithField("post_id", postID).Error("Failed to load post for comment")
		}
		return nil, mapped
	}

	comment := &domain.Comment{PostID: postID, UserID: identity.UserID, Content: content}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("Failed to save comment")
		return nil, ErrStoreUnavailable
	}

	s.activity.Record(ctx, newActivity(identity, domain.ActivityCommentAdded, comment.ID, ""))
	return comment, nil
}

// loadOwnedPost applies the ownership gate: load, not found, forbidden.
func (s *BoardService) loadOwnedPost(ctx context.Context, identity domain.Identity, postID uint) (*domain.Post, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "post_id": postID})

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		mapped := mapRepoError(err)
		if mapped != ErrNotFound {
			logCtx.WithError(err).Error("Failed to load post")
		}
		return nil, mapped
	}
	if err := authorize(identity, post.UserID); err != nil {
		logCtx.WithField("owner_id", post.UserID).Warn("Rejected change to another user's post")
		return nil, err
	}
	return post, nil
}

func validatePost(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return "", "", fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	return title, content, nil
}

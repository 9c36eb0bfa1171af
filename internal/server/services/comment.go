package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bloggyhq/bloggy/internal/common"
	"github.com/bloggyhq/bloggy/internal/logging"
	"github.com/bloggyhq/bloggy/internal/server/models"
	"github.com/bloggyhq/bloggy/internal/server/repositories/repomanager"
)

// CommentService implements commenting on posts.
type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewCommentService constructs a CommentService using repositories.
func NewCommentService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *CommentService {
	return &CommentService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "comment_service"),
	}
}

// Create stores a new comment by the authenticated user on an existing post.
func (s *CommentService) Create(ctx context.Context, authorID, postID, content string) (*models.Comment, error) {
	if postID == "" || content == "" {
		return nil, fmt.Errorf("%w: post and content are required", common.ErrorValidation)
	}

	if _, err := s.repomanager.Posts(s.db).GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		Content:   content,
		AuthorID:  authorID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repomanager.Comments(s.db).Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListAll returns every comment, newest first.
func (s *CommentService) ListAll(ctx context.Context) ([]*models.Comment, error) {
	return s.repomanager.Comments(s.db).ListAll(ctx)
}

// ListByPost returns a post's comments, newest first.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.repomanager.Comments(s.db).ListByPost(ctx, postID)
}

// Delete removes a comment. Only the author may delete.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	repo := s.repomanager.Comments(s.db)

	comment, err := repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := RequireOwner(comment.AuthorID, userID); err != nil {
		return err
	}

	return repo.Delete(ctx, commentID)
}

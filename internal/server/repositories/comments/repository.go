package comments

import (
	"context"

	"github.com/bloggyhq/bloggy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListAll(ctx context.Context) ([]*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

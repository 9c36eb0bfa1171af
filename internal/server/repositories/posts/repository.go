package posts

import (
	"context"

	"github.com/bloggyhq/bloggy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListMostStarred(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error

	// Star primitives. AddStar and RemoveStar are conditional set operations:
	// they report whether membership actually changed, and the caller adjusts
	// the denormalized counter only when it did, inside the same transaction.
	AddStar(ctx context.Context, userID, postID string) (bool, error)
	RemoveStar(ctx context.Context, userID, postID string) (bool, error)
	IncrementStars(ctx context.Context, postID string) error
	DecrementStars(ctx context.Context, postID string) error
	IsStarred(ctx context.Context, userID, postID string) (bool, error)
	CountStars(ctx context.Context, postID string) (int64, error)
}

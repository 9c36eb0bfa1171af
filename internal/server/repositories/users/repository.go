package users

import (
	"context"

	"github.com/bloggyhq/bloggy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	MarkVerified(ctx context.Context, id string) error
}

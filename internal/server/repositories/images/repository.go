package images

import (
	"context"

	"github.com/bloggyhq/bloggy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByKey(ctx context.Context, storageKey string) (*models.Image, error)
}

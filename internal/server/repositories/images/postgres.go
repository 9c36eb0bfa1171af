// Package images provides a PostgreSQL-backed repository for upload metadata.
// The image bytes themselves live in object storage.
package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bloggyhq/bloggy/internal/common"
	"github.com/bloggyhq/bloggy/internal/dbx"
	"github.com/bloggyhq/bloggy/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (id, file_name, storage_key, owner_id, size_bytes, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		image.ID, image.FileName, image.StorageKey, image.OwnerID,
		image.SizeBytes, image.ContentType, image.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByKey(ctx context.Context, storageKey string) (*models.Image, error) {
	query := `
		SELECT id, file_name, storage_key, owner_id, size_bytes, content_type, created_at
		FROM images
		WHERE storage_key = $1
	`
	image := &models.Image{}
	err := r.db.QueryRowContext(ctx, query, storageKey).Scan(
		&image.ID, &image.FileName, &image.StorageKey, &image.OwnerID,
		&image.SizeBytes, &image.ContentType, &image.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return image, nil
}

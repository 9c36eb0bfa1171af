// Package comments provides a PostgreSQL-backed repository for post comments.
package comments

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

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, content, author_id, post_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.Content, comment.AuthorID, comment.PostID, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT id, content, author_id, post_id, created_at
		FROM comments
		WHERE id = $1
	`
	comment := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.Content, &comment.AuthorID, &comment.PostID, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return comment, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Comment, error) {
	query := `
		SELECT id, content, author_id, post_id, created_at
		FROM comments
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	query := `
		SELECT id, content, author_id, post_id, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, postID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM comments
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Comment{}
	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(&comment.ID, &comment.Content, &comment.AuthorID, &comment.PostID, &comment.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Package posts provides a PostgreSQL-backed repository for blog posts and
// the post_stars relation backing the star feature.
package posts

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

const postColumns = `p.id, p.title, p.content, p.author_id, p.image_key, p.stars, p.created_at, p.updated_at, u.username`

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, title, content, author_id, image_key, stars, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.AuthorID, post.ImageKey, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`
	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.ImageKey,
		&post.Stars, &post.CreatedAt, &post.UpdatedAt, &post.AuthorName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

// ListMostStarred orders by the star counter, newest first among equals.
func (r *PostgresRepository) ListMostStarred(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.stars DESC, p.created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
	`
	return r.list(ctx, query, authorID)
}

// Update rewrites the mutable columns of a post. Star mutations never go
// through here.
func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, image_key = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.ImageKey, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM posts
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

// AddStar inserts set membership for (userID, postID). The conditional insert
// reports whether a row was actually added, so a duplicate request can never
// bump the counter twice.
func (r *PostgresRepository) AddStar(ctx context.Context, userID, postID string) (bool, error) {
	query := `
		INSERT INTO post_stars (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

// RemoveStar deletes set membership and reports whether a row was removed.
func (r *PostgresRepository) RemoveStar(ctx context.Context, userID, postID string) (bool, error) {
	query := `
		DELETE FROM post_stars
		WHERE user_id = $1 AND post_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) IncrementStars(ctx context.Context, postID string) error {
	query := `
		UPDATE posts SET stars = stars + 1
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DecrementStars floors at zero; the counter is declared non-negative and a
// decrement without prior membership is a caller bug, not a reason to wrap.
func (r *PostgresRepository) DecrementStars(ctx context.Context, postID string) error {
	query := `
		UPDATE posts SET stars = stars - 1
		WHERE id = $1 AND stars > 0
	`
	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) IsStarred(ctx context.Context, userID, postID string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM post_stars
		WHERE user_id = $1 AND post_id = $2
	`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, userID, postID).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) CountStars(ctx context.Context, postID string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM post_stars
		WHERE post_id = $1
	`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, postID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		post := &models.Post{}
		err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.ImageKey,
			&post.Stars, &post.CreatedAt, &post.UpdatedAt, &post.AuthorName)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bloggyhq/bloggy/internal/common"
	"github.com/bloggyhq/bloggy/internal/dbx"
	"github.com/bloggyhq/bloggy/internal/logging"
	"github.com/bloggyhq/bloggy/internal/server/models"
	"github.com/bloggyhq/bloggy/internal/server/repositories/repomanager"
)

// Paging defaults for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// StarResult reports which way a star mutation went.
type StarResult string

const (
	Starred   StarResult = "starred"
	Unstarred StarResult = "unstarred"
)

// PostService implements post CRUD and the star feature. Starring touches
// set membership in post_stars and the denormalized counter on the post row,
// so every star mutation runs inside a single transaction with a conditional
// set operation deciding whether the counter moves. That keeps
// stars == cardinality(post_stars) even under concurrent duplicate requests
// from the same user.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewPostService constructs a PostService using repositories.
func NewPostService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *PostService {
	return &PostService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "post_service"),
	}
}

// Create stores a new post for the given author. imageKey may be empty or a
// stored-file key previously returned by the upload endpoint.
func (s *PostService) Create(ctx context.Context, authorID, title, content, imageKey string) (*models.Post, error) {
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", common.ErrorValidation)
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		ImageKey:  imageKey,
		CreatedAt: now,
		UpdatedAt: now,
	}

	repo := s.repomanager.Posts(s.db)
	if err := repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, post.ID)
}

// Get returns a single post by ID.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.repomanager.Posts(s.db).GetByID(ctx, id)
}

// ListAll returns a page of posts, newest first.
func (s *PostService) ListAll(ctx context.Context, page, limit int) ([]*models.Post, error) {
	limit, offset := normalizePaging(page, limit)
	return s.repomanager.Posts(s.db).ListAll(ctx, limit, offset)
}

// ListMostStarred returns a page of posts ordered by star count descending,
// newest first among equals.
func (s *PostService) ListMostStarred(ctx context.Context, page, limit int) ([]*models.Post, error) {
	limit, offset := normalizePaging(page, limit)
	return s.repomanager.Posts(s.db).ListMostStarred(ctx, limit, offset)
}

// ListByAuthor returns all posts by the given author, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).ListByAuthor(ctx, authorID)
}

// Update edits a post's title, content, or image. Empty fields keep their
// stored values. Only the author may edit; updated_at always moves.
func (s *PostService) Update(ctx context.Context, userID, postID, title, content, imageKey string) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(post.AuthorID, userID); err != nil {
		return nil, err
	}

	if title != "" {
		post.Title = title
	}
	if content != "" {
		post.Content = content
	}
	if imageKey != "" {
		post.ImageKey = imageKey
	}
	post.UpdatedAt = time.Now().UTC()

	if err := repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := RequireOwner(post.AuthorID, userID); err != nil {
		return err
	}

	return repo.Delete(ctx, postID)
}

// Star adds the post to the user's starred set and bumps the counter. A
// repeated star is a no-op reported as alreadyStarred.
func (s *PostService) Star(ctx context.Context, userID, postID string) (alreadyStarred bool, err error) {
	err = s.withStarTx(ctx, userID, postID, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		added, err := repo.AddStar(ctx, userID, postID)
		if err != nil {
			return err
		}
		if !added {
			alreadyStarred = true
			return nil
		}
		return repo.IncrementStars(ctx, postID)
	})
	return alreadyStarred, err
}

// Unstar removes the post from the user's starred set and drops the counter.
// Unstarring a post that was not starred is a no-op reported as notStarred.
func (s *PostService) Unstar(ctx context.Context, userID, postID string) (notStarred bool, err error) {
	err = s.withStarTx(ctx, userID, postID, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		removed, err := repo.RemoveStar(ctx, userID, postID)
		if err != nil {
			return err
		}
		if !removed {
			notStarred = true
			return nil
		}
		return repo.DecrementStars(ctx, postID)
	})
	return notStarred, err
}

// ToggleStar flips the user's star on a post and reports which way it went.
// The conditional insert decides the direction inside the transaction, so two
// racing toggles by the same user resolve to one star and one unstar rather
// than a drifted counter.
func (s *PostService) ToggleStar(ctx context.Context, userID, postID string) (result StarResult, err error) {
	err = s.withStarTx(ctx, userID, postID, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		added, err := repo.AddStar(ctx, userID, postID)
		if err != nil {
			return err
		}
		if added {
			result = Starred
			return repo.IncrementStars(ctx, postID)
		}

		if _, err := repo.RemoveStar(ctx, userID, postID); err != nil {
			return err
		}
		result = Unstarred
		return repo.DecrementStars(ctx, postID)
	})
	return result, err
}

// IsStarred reports whether the user's starred set contains the post.
func (s *PostService) IsStarred(ctx context.Context, userID, postID string) (bool, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		return false, err
	}
	return s.repomanager.Posts(s.db).IsStarred(ctx, userID, postID)
}

// withStarTx verifies both aggregate roots exist and runs fn in one
// transaction over the star relation and the post row.
func (s *PostService) withStarTx(ctx context.Context, userID, postID string, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).GetByID(ctx, userID); err != nil {
			return err
		}
		if _, err := s.repomanager.Posts(tx).GetByID(ctx, postID); err != nil {
			return err
		}
		return fn(ctx, tx)
	})
}

func normalizePaging(page, limit int) (normLimit, offset int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit, (page - 1) * limit
}

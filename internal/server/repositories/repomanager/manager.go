package repomanager

import (
	"context"
	"database/sql"

	"github.com/bloggyhq/bloggy/internal/dbx"
	"github.com/bloggyhq/bloggy/internal/server/repositories/comments"
	"github.com/bloggyhq/bloggy/internal/server/repositories/images"
	"github.com/bloggyhq/bloggy/internal/server/repositories/posts"
	"github.com/bloggyhq/bloggy/internal/server/repositories/users"
)

// RepositoryManager vends per-entity repositories bound to a specific DBTX,
// so services can run several repositories against the same transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
	Images(db dbx.DBTX) images.Repository
}

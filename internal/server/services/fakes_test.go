package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"

	"github.com/bloggyhq/bloggy/internal/common"
	"github.com/bloggyhq/bloggy/internal/dbx"
	"github.com/bloggyhq/bloggy/internal/logging"
	"github.com/bloggyhq/bloggy/internal/server/models"
	commentsrepo "github.com/bloggyhq/bloggy/internal/server/repositories/comments"
	imagesrepo "github.com/bloggyhq/bloggy/internal/server/repositories/images"
	postsrepo "github.com/bloggyhq/bloggy/internal/server/repositories/posts"
	"github.com/bloggyhq/bloggy/internal/server/repositories/repomanager"
	usersrepo "github.com/bloggyhq/bloggy/internal/server/repositories/users"
)

func errNotFound() error { return common.ErrorNotFound }

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- users ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byID    map[string]*models.User
	byEmail map[string]*models.User
	getErr  error

	verifiedIDs []string
	verifyErr   error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, errNotFound()
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, errNotFound()
}

func (f *fakeUsersRepo) MarkVerified(ctx context.Context, id string) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	f.verifiedIDs = append(f.verifiedIDs, id)
	return nil
}

// --- posts ---

type fakePostsRepo struct {
	postsrepo.Repository // unimplemented methods panic if reached

	byID   map[string]*models.Post
	getErr error
}

func (f *fakePostsRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, errNotFound()
}

// --- comments ---

type fakeCommentsRepo struct {
	created   []*models.Comment
	createErr error

	byID   map[string]*models.Comment
	getErr error

	deleted   []string
	deleteErr error

	listOut []*models.Comment
	listErr error
}

func (f *fakeCommentsRepo) Create(ctx context.Context, c *models.Comment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCommentsRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, errNotFound()
}

func (f *fakeCommentsRepo) ListAll(ctx context.Context) ([]*models.Comment, error) {
	return f.listOut, f.listErr
}

func (f *fakeCommentsRepo) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return f.listOut, f.listErr
}

func (f *fakeCommentsRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// --- images ---

type fakeImagesRepo struct {
	created   []*models.Image
	createErr error
}

func (f *fakeImagesRepo) Create(ctx context.Context, img *models.Image) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, img)
	return nil
}

func (f *fakeImagesRepo) GetByKey(ctx context.Context, key string) (*models.Image, error) {
	return nil, errNotFound()
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePostsRepo
	c *fakeCommentsRepo
	i *fakeImagesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error         { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository               { return m.u }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository               { return m.p }
func (m *fakeRepoManager) Comments(db dbx.DBTX) commentsrepo.Repository         { return m.c }
func (m *fakeRepoManager) Images(db dbx.DBTX) imagesrepo.Repository             { return m.i }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

// --- mail ---

type fakeMailer struct {
	mu   sync.Mutex
	done chan struct{}

	to   string
	link string
	err  error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{done: make(chan struct{}, 1)}
}

func (f *fakeMailer) SendVerification(ctx context.Context, to, link string) error {
	f.mu.Lock()
	f.to, f.link = to, link
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

func (f *fakeMailer) sent() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.to, f.link
}

// --- object store ---

type fakeObjectStore struct {
	keys         []string
	contentTypes []string
	sizes        []int64
	err          error
}

func (f *fakeObjectStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if f.err != nil {
		return f.err
	}
	n, _ := io.Copy(io.Discard, body)
	f.keys = append(f.keys, key)
	f.contentTypes = append(f.contentTypes, contentType)
	f.sizes = append(f.sizes, n)
	return nil
}

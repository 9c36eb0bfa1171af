package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bloggyhq/bloggy/internal/common"
	"github.com/bloggyhq/bloggy/internal/server/models"
)

func newCommentService(rm *fakeRepoManager) *CommentService {
	return NewCommentService(nil, rm, discardLogger())
}

func TestCommentCreate(t *testing.T) {
	posts := &fakePostsRepo{byID: map[string]*models.Post{"p1": {ID: "p1"}}}
	comments := &fakeCommentsRepo{}
	svc := newCommentService(&fakeRepoManager{p: posts, c: comments})

	comment, err := svc.Create(context.Background(), "u1", "p1", "nice post")
	require.NoError(t, err)
	require.NotEmpty(t, comment.ID)
	require.Equal(t, "u1", comment.AuthorID)
	require.Equal(t, "p1", comment.PostID)
	require.Equal(t, "nice post", comment.Content)
	require.Len(t, comments.created, 1)
}

func TestCommentCreate_UnknownPost(t *testing.T) {
	svc := newCommentService(&fakeRepoManager{p: &fakePostsRepo{}, c: &fakeCommentsRepo{}})

	_, err := svc.Create(context.Background(), "u1", "missing", "nice post")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCommentCreate_Validation(t *testing.T) {
	svc := newCommentService(&fakeRepoManager{p: &fakePostsRepo{}, c: &fakeCommentsRepo{}})

	_, err := svc.Create(context.Background(), "u1", "p1", "")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Create(context.Background(), "u1", "", "text")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestCommentDelete_AuthorOnly(t *testing.T) {
	comments := &fakeCommentsRepo{byID: map[string]*models.Comment{
		"c1": {ID: "c1", AuthorID: "u1", PostID: "p1"},
	}}
	svc := newCommentService(&fakeRepoManager{c: comments})

	require.ErrorIs(t, svc.Delete(context.Background(), "u2", "c1"), common.ErrorForbidden)
	require.Empty(t, comments.deleted)

	require.NoError(t, svc.Delete(context.Background(), "u1", "c1"))
	require.Equal(t, []string{"c1"}, comments.deleted)
}

func TestCommentDelete_Unknown(t *testing.T) {
	svc := newCommentService(&fakeRepoManager{c: &fakeCommentsRepo{}})
	require.ErrorIs(t, svc.Delete(context.Background(), "u1", "missing"), common.ErrorNotFound)
}

func TestCommentListByPost(t *testing.T) {
	comments := &fakeCommentsRepo{listOut: []*models.Comment{
		{ID: "c2"}, {ID: "c1"},
	}}
	svc := newCommentService(&fakeRepoManager{c: comments})

	got, err := svc.ListByPost(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "c2", got[0].ID)
}

package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	status, raw := ts.doJSON(t, http.MethodPost, "/user/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)
	require.NotContains(t, strings.ToLower(string(raw)), "password")

	// login is refused until the address is verified
	status, _ = ts.doJSON(t, http.MethodPost, "/user/login", "", map[string]string{
		"email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, status)

	link := ts.mailer.lastLink(t)
	token := link[strings.LastIndex(link, "/")+1:]
	status, _ = ts.doJSON(t, http.MethodGet, "/user/verify/"+token, "", nil)
	require.Equal(t, http.StatusOK, status)

	status, raw = ts.doJSON(t, http.MethodPost, "/user/login", "", map[string]string{
		"email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(raw), `"token"`)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.signUp(t, "alice", "alice@example.com", "secret123")

	status, _ := ts.doJSON(t, http.MethodPost, "/user/register", "", map[string]string{
		"username": "alice2", "email": "alice@example.com", "password": "secret456",
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestLogin_BadPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.signUp(t, "alice", "alice@example.com", "secret123")

	status, _ := ts.doJSON(t, http.MethodPost, "/user/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestProfile_OwnOnly(t *testing.T) {
	ts := newTestServer(t)
	tokenA, idA := ts.signUp(t, "alice", "alice@example.com", "secret123")
	_, idB := ts.signUp(t, "bob", "bob@example.com", "secret123")

	status, raw := ts.doJSON(t, http.MethodGet, "/user/"+idA, tokenA, nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(raw), `"username":"alice"`)
	require.NotContains(t, strings.ToLower(string(raw)), "password")

	status, _ = ts.doJSON(t, http.MethodGet, "/user/"+idB, tokenA, nil)
	require.Equal(t, http.StatusForbidden, status)
}

func TestUsername_Public(t *testing.T) {
	ts := newTestServer(t)
	_, id := ts.signUp(t, "alice", "alice@example.com", "secret123")

	status, raw := ts.doJSON(t, http.MethodGet, "/user/username/"+id, "", nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"username":"alice"}`, string(raw))

	status, _ = ts.doJSON(t, http.MethodGet, "/user/username/ghost", "", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func createPost(t *testing.T, ts *testServer, token, title string) string {
	t.Helper()
	status, raw := ts.doJSON(t, http.MethodPost, "/post/create", token, map[string]string{
		"title": title, "content": "some content",
	})
	require.Equal(t, http.StatusCreated, status)

	var post struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &post))
	return post.ID
}

func postStars(t *testing.T, ts *testServer, postID string) int64 {
	t.Helper()
	status, raw := ts.doJSON(t, http.MethodGet, "/post/"+postID, "", nil)
	require.Equal(t, http.StatusOK, status)

	var post struct {
		Stars int64 `json:"stars"`
	}
	require.NoError(t, json.Unmarshal(raw, &post))
	return post.Stars
}

func TestPostStarFlow(t *testing.T) {
	ts := newTestServer(t)
	tokenA, _ := ts.signUp(t, "alice", "alice@example.com", "secret123")
	tokenB, _ := ts.signUp(t, "bob", "bob@example.com", "secret123")

	postID := createPost(t, ts, tokenA, "hello world")

	status, _ := ts.doJSON(t, http.MethodPost, "/post/star/"+postID, tokenB, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), postStars(t, ts, postID))

	// starring twice does not bump the counter again
	status, _ = ts.doJSON(t, http.MethodPost, "/post/star/"+postID, tokenB, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), postStars(t, ts, postID))

	status, raw := ts.doJSON(t, http.MethodGet, "/user/starred/"+postID, tokenB, nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"starred":true}`, string(raw))

	status, _ = ts.doJSON(t, http.MethodDelete, "/post/star/"+postID, tokenB, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(0), postStars(t, ts, postID))

	status, raw = ts.doJSON(t, http.MethodGet, "/user/starred/"+postID, tokenB, nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"starred":false}`, string(raw))
}

func TestPostStar_UnknownPost(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signUp(t, "alice", "alice@example.com", "secret123")

	status, _ := ts.doJSON(t, http.MethodPost, "/post/star/missing", token, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestPostEditDelete_Ownership(t *testing.T) {
	ts := newTestServer(t)
	tokenA, _ := ts.signUp(t, "alice", "alice@example.com", "secret123")
	tokenB, _ := ts.signUp(t, "bob", "bob@example.com", "secret123")

	postID := createPost(t, ts, tokenA, "hello")

	status, _ := ts.doJSON(t, http.MethodPut, "/post/edit/"+postID, tokenB, map[string]string{
		"title": "hijacked",
	})
	require.Equal(t, http.StatusForbidden, status)

	status, raw := ts.doJSON(t, http.MethodPut, "/post/edit/"+postID, tokenA, map[string]string{
		"title": "renamed",
	})
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(raw), `"title":"renamed"`)
	require.Contains(t, string(raw), `"content":"some content"`)

	status, _ = ts.doJSON(t, http.MethodDelete, "/post/delete/"+postID, tokenB, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = ts.doJSON(t, http.MethodDelete, "/post/delete/"+postID, tokenA, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = ts.doJSON(t, http.MethodGet, "/post/"+postID, "", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestPostLists(t *testing.T) {
	ts := newTestServer(t)
	tokenA, idA := ts.signUp(t, "alice", "alice@example.com", "secret123")
	tokenB, _ := ts.signUp(t, "bob", "bob@example.com", "secret123")

	first := createPost(t, ts, tokenA, "first")
	createPost(t, ts, tokenA, "second")

	status, _ := ts.doJSON(t, http.MethodPost, "/post/star/"+first, tokenB, nil)
	require.Equal(t, http.StatusOK, status)

	status, raw := ts.doJSON(t, http.MethodGet, "/post/all?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, status)
	var posts []struct {
		ID    string `json:"id"`
		Stars int64  `json:"stars"`
	}
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Len(t, posts, 2)

	status, raw = ts.doJSON(t, http.MethodGet, "/post/most-liked", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Equal(t, first, posts[0].ID)
	require.Equal(t, int64(1), posts[0].Stars)

	status, raw = ts.doJSON(t, http.MethodGet, "/post/author/"+idA, "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Len(t, posts, 2)
}

func TestCommentFlow(t *testing.T) {
	ts := newTestServer(t)
	tokenA, _ := ts.signUp(t, "alice", "alice@example.com", "secret123")
	tokenB, _ := ts.signUp(t, "bob", "bob@example.com", "secret123")

	postID := createPost(t, ts, tokenA, "hello")

	status, raw := ts.doJSON(t, http.MethodPost, "/comment/create", tokenB, map[string]string{
		"post": postID, "content": "nice one",
	})
	require.Equal(t, http.StatusCreated, status)
	var comment struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &comment))

	status, _ = ts.doJSON(t, http.MethodPost, "/comment/create", tokenB, map[string]string{
		"post": "missing", "content": "lost",
	})
	require.Equal(t, http.StatusNotFound, status)

	status, raw = ts.doJSON(t, http.MethodGet, "/comment/post/"+postID, "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(raw), "nice one")

	status, _ = ts.doJSON(t, http.MethodDelete, "/comment/delete/"+comment.ID, tokenA, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = ts.doJSON(t, http.MethodDelete, "/comment/delete/"+comment.ID, tokenB, nil)
	require.Equal(t, http.StatusNoContent, status)
}

// uploadFile posts a multipart body with an explicit part content type.
func uploadFile(t *testing.T, ts *testServer, token, fileName, contentType string, payload []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/file/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := ts.srv.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestFileUpload(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signUp(t, "alice", "alice@example.com", "secret123")

	status, raw := uploadFile(t, ts, token, "cat.png", "image/png", bytes.Repeat([]byte{1}, 512))
	require.Equal(t, http.StatusOK, status)

	var out struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.True(t, strings.HasPrefix(out.Key, "images/"))
	require.Equal(t, []string{out.Key}, ts.store.keys)
}

func TestFileUpload_TooLarge(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signUp(t, "alice", "alice@example.com", "secret123")

	status, _ := uploadFile(t, ts, token, "big.jpg", "image/jpeg", bytes.Repeat([]byte{1}, 2<<20))
	require.Equal(t, http.StatusBadRequest, status)
	require.Empty(t, ts.store.keys)
}

func TestFileUpload_WrongType(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signUp(t, "alice", "alice@example.com", "secret123")

	status, _ := uploadFile(t, ts, token, "notes.txt", "text/plain", []byte("hello"))
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = uploadFile(t, ts, token, "", "", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Empty(t, ts.store.keys)
}

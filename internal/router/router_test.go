package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"feed/internal/dto"
	"feed/internal/repository"
	"feed/internal/services"
	"feed/internal/utils"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestEngine(t *testing.T) http.Handler {
	t.Helper()
	markdown, err := utils.NewMarkdownRenderer(16, time.Minute)
	if err != nil {
		t.Fatalf("NewMarkdownRenderer failed: %v", err)
	}
	return New(Deps{
		Feed:         services.NewFeedService(repository.NewMemoryRepository()),
		Markdown:     markdown,
		Log:          zap.NewNop(),
		SessionName:  "feed_session",
		SessionStore: cookie.NewStore([]byte("test-secret")),
	})
}

// client keeps the session cookie between requests.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			c.t.Fatalf("Marshal failed: %v", err)
		}
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = c.cookies[:0]
		for _, ck := range set {
			if ck.MaxAge >= 0 && ck.Value != "" {
				c.cookies = append(c.cookies, ck)
			}
		}
	}
	return w
}

func (c *client) expect(w *httptest.ResponseRecorder, status int) {
	c.t.Helper()
	if w.Code != status {
		c.t.Fatalf("Expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

func (c *client) expectError(w *httptest.ResponseRecorder, status int, msg string) {
	c.t.Helper()
	c.expect(w, status)
	var body struct {
		Errors string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		c.t.Fatalf("Error body is not JSON: %s", w.Body.String())
	}
	if body.Errors != msg {
		c.t.Errorf("Expected error %q, got %q", msg, body.Errors)
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("Decode failed: %v (%s)", err, w.Body.String())
	}
	return v
}

// signUp registers an author and logs in as them.
func signUp(t *testing.T, h http.Handler, username, fullName string) (*client, dto.AuthorResponse) {
	t.Helper()
	c := &client{t: t, h: h}
	w := c.do(http.MethodPost, "/author", gin.H{"username": username, "password": "secret", "full_name": fullName})
	c.expect(w, http.StatusCreated)
	author := decode[dto.AuthorResponse](t, w)

	c.expect(c.do(http.MethodPost, "/login", gin.H{"username": username, "password": "secret"}), http.StatusOK)
	if len(c.cookies) == 0 {
		t.Fatal("Login did not set a session cookie")
	}
	return c, author
}

func TestHealthz(t *testing.T) {
	c := &client{t: t, h: newTestEngine(t)}
	w := c.do(http.MethodGet, "/healthz", nil)
	c.expect(w, http.StatusOK)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a request id header")
	}
}

func TestWritesRequireLogin(t *testing.T) {
	c := &client{t: t, h: newTestEngine(t)}
	for _, r := range []struct{ method, path string }{
		{http.MethodPost, "/article"},
		{http.MethodPost, "/articles/1/comments"},
		{http.MethodDelete, "/comments/1"},
		{http.MethodPost, "/comment/1/like"},
		{http.MethodPatch, "/author/1"},
	} {
		c.expectError(c.do(r.method, r.path, gin.H{}), http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
}

func TestLogin(t *testing.T) {
	h := newTestEngine(t)
	signUp(t, h, "jane", "Jane")

	c := &client{t: t, h: h}
	c.expectError(c.do(http.MethodPost, "/login", gin.H{"username": "jane", "password": "nope"}), http.StatusUnauthorized, "Invalid username or password.")
	c.expectError(c.do(http.MethodPost, "/login", gin.H{"username": "jane"}), http.StatusBadRequest, "The password of login is missing.")
}

func TestLogout(t *testing.T) {
	c, _ := signUp(t, newTestEngine(t), "jane", "Jane")
	c.expect(c.do(http.MethodPost, "/logout", nil), http.StatusNoContent)
	c.expect(c.do(http.MethodPost, "/article", gin.H{}), http.StatusUnauthorized)
}

func TestArticleEndpoints(t *testing.T) {
	h := newTestEngine(t)
	jane, author := signUp(t, h, "jane", "Jane")

	w := jane.do(http.MethodPost, "/article", gin.H{"title": "Hello", "content": "Some **bold** words", "author_id": author.ID})
	jane.expect(w, http.StatusCreated)
	article := decode[dto.ArticleResponse](t, w)
	if article.Author != author.ID || article.AuthorFullName == nil || *article.AuthorFullName != "Jane" {
		t.Errorf("Unexpected author fields: %+v", article)
	}
	if !strings.Contains(string(article.ContentHTML), "<strong>bold</strong>") {
		t.Errorf("Expected rendered content, got %q", article.ContentHTML)
	}
	if article.IsUpdated {
		t.Error("New article should not be marked updated")
	}

	w = jane.do(http.MethodPost, fmt.Sprintf("/author/%d/article", author.ID), gin.H{"title": "Second", "content": "Body"})
	jane.expect(w, http.StatusCreated)

	w = jane.do(http.MethodGet, "/article", nil)
	jane.expect(w, http.StatusOK)
	list := decode[[]dto.ArticleListItem](t, w)
	if len(list) != 2 || list[0].Title != "Second" || list[0].Author == nil || *list[0].Author != "Jane" {
		t.Errorf("Unexpected article list: %+v", list)
	}

	jane.expectError(jane.do(http.MethodPost, "/article", gin.H{"content": "Body", "author_id": author.ID}), http.StatusBadRequest, "The title of article is missing.")
	jane.expectError(jane.do(http.MethodPost, "/article", gin.H{"title": "T", "content": "Body"}), http.StatusBadRequest, "The author of article is missing.")
	jane.expectError(jane.do(http.MethodPost, "/article", "{"), http.StatusBadRequest, "Malformed request body.")
	jane.expectError(jane.do(http.MethodGet, "/article/9999", nil), http.StatusNotFound, "The article was not found.")
	jane.expectError(jane.do(http.MethodGet, "/article/abc", nil), http.StatusNotFound, "The article was not found.")

	w = jane.do(http.MethodPatch, fmt.Sprintf("/article/%d", article.ID), gin.H{"title": "Hello again"})
	jane.expect(w, http.StatusOK)
	if got := decode[dto.ArticleResponse](t, w); got.Title != "Hello again" || got.Content != "Some **bold** words" {
		t.Errorf("Unexpected article after patch: %+v", got)
	}

	bob, _ := signUp(t, h, "bob", "Bob")
	bob.expectError(bob.do(http.MethodDelete, fmt.Sprintf("/article/%d", article.ID), nil), http.StatusForbidden, "You do not have permission to perform this action.")
	jane.expect(jane.do(http.MethodDelete, fmt.Sprintf("/article/%d", article.ID), nil), http.StatusNoContent)
	jane.expect(jane.do(http.MethodGet, fmt.Sprintf("/article/%d", article.ID), nil), http.StatusNotFound)
}

func TestCommentsAndLikes(t *testing.T) {
	h := newTestEngine(t)
	jane, author := signUp(t, h, "jane", "Jane")
	bob, _ := signUp(t, h, "bob", "Bob")

	w := jane.do(http.MethodPost, "/article", gin.H{"title": "T", "content": "Body", "author_id": author.ID})
	jane.expect(w, http.StatusCreated)
	articleT := decode[dto.ArticleResponse](t, w)
	w = jane.do(http.MethodPost, "/article", gin.H{"title": "U", "content": "Body", "author_id": author.ID})
	jane.expect(w, http.StatusCreated)
	articleU := decode[dto.ArticleResponse](t, w)

	commentsOf := func(id uint) string { return fmt.Sprintf("/articles/%d/comments", id) }

	w = jane.do(http.MethodPost, commentsOf(articleT.ID), gin.H{"comment_text": "First"})
	jane.expect(w, http.StatusCreated)
	c1 := decode[dto.CommentResponse](t, w)
	if c1.ParentComment != nil || c1.CountOfLikes != 0 || c1.ChildComments != nil {
		t.Errorf("Unexpected new comment: %+v", c1)
	}

	w = bob.do(http.MethodPost, commentsOf(articleT.ID), gin.H{"comment_text": "Reply", "parent_comment_id": c1.ID})
	bob.expect(w, http.StatusCreated)
	c2 := decode[dto.CommentResponse](t, w)

	w = jane.do(http.MethodPost, commentsOf(articleT.ID), gin.H{"comment_text": "Deeper", "parent_comment_id": c2.ID})
	jane.expect(w, http.StatusCreated)
	c3 := decode[dto.CommentResponse](t, w)

	jane.expectError(jane.do(http.MethodPost, commentsOf(articleU.ID), gin.H{"comment_text": "Lost", "parent_comment_id": c1.ID}),
		http.StatusBadRequest, "The parent comment does not belong to the article")
	jane.expectError(jane.do(http.MethodPost, commentsOf(articleT.ID), gin.H{}), http.StatusBadRequest, "The comment_text of comment is missing.")
	jane.expectError(jane.do(http.MethodPost, commentsOf(9999), gin.H{"comment_text": "x"}), http.StatusNotFound, "The article was not found.")

	w = jane.do(http.MethodGet, commentsOf(articleT.ID), nil)
	jane.expect(w, http.StatusOK)
	roots := decode[[]dto.CommentResponse](t, w)
	if len(roots) != 1 || roots[0].ID != c1.ID {
		t.Fatalf("Expected only the top-level comment, got %+v", roots)
	}
	if len(roots[0].ChildComments) != 1 || roots[0].ChildComments[0].ID != c2.ID {
		t.Fatalf("Expected reply nested under first comment, got %+v", roots[0].ChildComments)
	}
	nested := roots[0].ChildComments[0]
	if nested.Author == nil || *nested.Author != "Bob" {
		t.Errorf("Expected reply by Bob, got %v", nested.Author)
	}
	if len(nested.ChildComments) != 1 || nested.ChildComments[0].ID != c3.ID || nested.ChildComments[0].ChildComments != nil {
		t.Errorf("Unexpected deepest level: %+v", nested.ChildComments)
	}

	likeOf := func(id uint) string { return fmt.Sprintf("/comment/%d/like", id) }
	countOf := func(id uint) uint {
		w := jane.do(http.MethodGet, fmt.Sprintf("/comments/%d", id), nil)
		jane.expect(w, http.StatusOK)
		return decode[dto.CommentResponse](t, w).CountOfLikes
	}

	w = bob.do(http.MethodPost, likeOf(c1.ID), gin.H{"reaction": "like"})
	bob.expect(w, http.StatusCreated)
	like := decode[dto.LikeResponse](t, w)
	if like.Emoji != "&#128077;" || like.Author == nil || *like.Author != "Bob" {
		t.Errorf("Unexpected like: %+v", like)
	}
	if got := countOf(c1.ID); got != 1 {
		t.Errorf("Expected 1 like, got %d", got)
	}

	bob.expectError(bob.do(http.MethodPost, likeOf(c1.ID), gin.H{"reaction": "cry"}), http.StatusBadRequest, "Unique constraint failed.")
	bob.expectError(bob.do(http.MethodPost, likeOf(c2.ID), gin.H{"reaction": "angry"}), http.StatusBadRequest, "The reaction of like is invalid.")
	if got := countOf(c1.ID); got != 1 {
		t.Errorf("Duplicate changed counter to %d", got)
	}

	bob.expect(bob.do(http.MethodPatch, likeOf(c1.ID), gin.H{"reaction": "cry"}), http.StatusOK)
	w = jane.do(http.MethodGet, fmt.Sprintf("/comment/%d/like/%d", c1.ID, like.AuthorID), nil)
	jane.expect(w, http.StatusOK)
	if got := decode[dto.LikeResponse](t, w); got.Reaction != "cry" {
		t.Errorf("Expected cry, got %s", got.Reaction)
	}

	w = jane.do(http.MethodGet, likeOf(c1.ID), nil)
	jane.expect(w, http.StatusOK)
	if likes := decode[[]dto.LikeResponse](t, w); len(likes) != 1 {
		t.Errorf("Expected 1 reaction, got %d", len(likes))
	}

	jane.expectError(jane.do(http.MethodDelete, likeOf(c1.ID), nil), http.StatusNotFound, "The like was not found.")
	bob.expect(bob.do(http.MethodDelete, likeOf(c1.ID), nil), http.StatusNoContent)
	if got := countOf(c1.ID); got != 0 {
		t.Errorf("Expected 0 likes, got %d", got)
	}

	// Only the author may change or remove a comment.
	bob.expectError(bob.do(http.MethodDelete, fmt.Sprintf("/comments/%d", c1.ID), nil), http.StatusForbidden, "You do not have permission to perform this action.")
	jane.expect(jane.do(http.MethodGet, fmt.Sprintf("/comments/%d", c1.ID), nil), http.StatusOK)

	w = bob.do(http.MethodPatch, fmt.Sprintf("/comments/%d", c2.ID), gin.H{"comment_text": "Edited"})
	bob.expect(w, http.StatusOK)
	if got := decode[dto.CommentResponse](t, w); got.CommentText != "Edited" || len(got.ChildComments) != 1 {
		t.Errorf("Unexpected comment after patch: %+v", got)
	}

	jane.expect(jane.do(http.MethodDelete, fmt.Sprintf("/comments/%d", c1.ID), nil), http.StatusNoContent)
	jane.expect(jane.do(http.MethodGet, fmt.Sprintf("/comments/%d", c3.ID), nil), http.StatusNotFound)
}

func TestAuthorEndpoints(t *testing.T) {
	h := newTestEngine(t)
	jane, author := signUp(t, h, "jane", "Jane")
	bob, _ := signUp(t, h, "bob", "Bob")

	anon := &client{t: t, h: h}
	anon.expectError(anon.do(http.MethodPost, "/author", gin.H{"username": "jane", "password": "x", "full_name": "Dup"}), http.StatusBadRequest, "An author with that username already exists.")
	anon.expectError(anon.do(http.MethodPost, "/author", gin.H{"password": "x"}), http.StatusBadRequest, "The username of author is missing.")

	w := anon.do(http.MethodGet, "/author", nil)
	anon.expect(w, http.StatusOK)
	if list := decode[[]dto.AuthorResponse](t, w); len(list) != 2 {
		t.Errorf("Expected 2 authors, got %d", len(list))
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("Password must never be serialized")
	}

	path := fmt.Sprintf("/author/%d", author.ID)
	bob.expect(bob.do(http.MethodPatch, path, gin.H{"full_name": "Mallory"}), http.StatusForbidden)

	w = jane.do(http.MethodPut, path, gin.H{"username": "jane", "first_name": "Jane", "last_name": "Doe"})
	jane.expect(w, http.StatusOK)
	if got := decode[dto.AuthorResponse](t, w); got.FullName != "Jane Doe" {
		t.Errorf("Expected Jane Doe, got %q", got.FullName)
	}

	jane.expect(jane.do(http.MethodDelete, path, nil), http.StatusNoContent)
	anon.expect(anon.do(http.MethodGet, path, nil), http.StatusNotFound)
	jane.expect(jane.do(http.MethodPost, "/article", gin.H{}), http.StatusUnauthorized)
}

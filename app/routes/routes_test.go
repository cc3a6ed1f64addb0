package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quill/app/models"
	"quill/app/repositories/mock"
	"quill/app/services"
)

func setupTestRouter(t *testing.T) (*mux.Router, *Services) {
	t.Helper()
	svc := BuildServices(
		mock.NewUserRepository(),
		mock.NewCategoryRepository(),
		mock.NewLocationRepository(),
		mock.NewPostRepository(),
		mock.NewCommentRepository(),
		mock.NewSessionRepository(),
		services.SystemClock(),
	)
	return NewRouter(svc, zap.NewNop()), svc
}

func postJSON(t *testing.T, router *mux.Router, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, router, "POST", path, body, cookie)
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account through the API and returns the
// session cookie from the login response.
func registerAndLogin(t *testing.T, router *mux.Router, username string) *http.Cookie {
	t.Helper()
	w := postJSON(t, router, "/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/auth/login", map[string]string{
		"username": username,
		"password": "correct-horse",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "quill_session" {
			return cookie
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func TestAuthRoutes(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("register login logout", func(t *testing.T) {
		cookie := registerAndLogin(t, router, "alice")
		assert.NotEmpty(t, cookie.Value)

		w := postJSON(t, router, "/auth/logout", nil, cookie)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("duplicate username", func(t *testing.T) {
		w := postJSON(t, router, "/auth/register", map[string]string{
			"username": "alice",
			"email":    "other@example.com",
			"password": "correct-horse",
		}, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		w := postJSON(t, router, "/auth/login", map[string]string{
			"username": "alice",
			"password": "wrong",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("profile update requires auth", func(t *testing.T) {
		w := doJSON(t, router, "PUT", "/profile", map[string]string{"first_name": "A"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("profile update", func(t *testing.T) {
		cookie := registerAndLogin(t, router, "bob")
		w := doJSON(t, router, "PUT", "/profile", map[string]string{
			"first_name": "Bob",
			"last_name":  "Builder",
		}, cookie)
		require.Equal(t, http.StatusOK, w.Code)

		var user models.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, "Bob", user.FirstName)
	})
}

func TestPostRoutes(t *testing.T) {
	router, svc := setupTestRouter(t)

	category := &models.Category{Title: "Travel", Description: "On the road", Slug: "travel", IsPublished: true}
	require.NoError(t, svc.Taxonomy.CreateCategory(category))

	author := registerAndLogin(t, router, "author")
	other := registerAndLogin(t, router, "other")

	var created models.Post

	t.Run("create", func(t *testing.T) {
		w := postJSON(t, router, "/posts", map[string]interface{}{
			"title":       "Hello",
			"text":        "First post",
			"category_id": category.ID,
		}, author)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/profile/author", w.Header().Get("Location"))
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Greater(t, created.ID, 0)
	})

	t.Run("create requires auth", func(t *testing.T) {
		w := postJSON(t, router, "/posts", map[string]interface{}{
			"title":       "Anon",
			"text":        "nope",
			"category_id": category.ID,
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create without category is rejected", func(t *testing.T) {
		w := postJSON(t, router, "/posts", map[string]interface{}{
			"title": "No category",
			"text":  "nope",
		}, author)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		input, ok := body["input"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "No category", input["title"])
	})

	t.Run("home feed lists the post", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/posts", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Posts      []json.RawMessage `json:"posts"`
			Number     int               `json:"number"`
			TotalCount int               `json:"total_count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, 1, page.TotalCount)
	})

	t.Run("show", func(t *testing.T) {
		w := doJSON(t, router, "GET", fmt.Sprintf("/posts/%d", created.ID), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var detail struct {
			Title    string            `json:"title"`
			Comments []json.RawMessage `json:"comments"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
		assert.Equal(t, "Hello", detail.Title)
		assert.Empty(t, detail.Comments)
	})

	t.Run("show missing", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/posts/999", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("edit by non-owner redirects", func(t *testing.T) {
		w := doJSON(t, router, "PUT", fmt.Sprintf("/posts/%d", created.ID), map[string]interface{}{
			"title":       "Hijacked",
			"text":        "nope",
			"category_id": category.ID,
		}, other)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, fmt.Sprintf("/posts/%d", created.ID), w.Header().Get("Location"))

		detail, err := svc.Posts.Get(nil, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello", detail.Title)
	})

	t.Run("edit by owner", func(t *testing.T) {
		w := doJSON(t, router, "PUT", fmt.Sprintf("/posts/%d", created.ID), map[string]interface{}{
			"title":       "Hello again",
			"text":        "Updated",
			"category_id": category.ID,
		}, author)
		require.Equal(t, http.StatusOK, w.Code)

		var post models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, "Hello again", post.Title)
	})

	t.Run("delete by non-owner redirects", func(t *testing.T) {
		w := doJSON(t, router, "DELETE", fmt.Sprintf("/posts/%d", created.ID), nil, other)
		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("delete by owner", func(t *testing.T) {
		w := doJSON(t, router, "DELETE", fmt.Sprintf("/posts/%d", created.ID), nil, author)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, router, "GET", fmt.Sprintf("/posts/%d", created.ID), nil, author)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentRoutes(t *testing.T) {
	router, svc := setupTestRouter(t)

	category := &models.Category{Title: "Food", Description: "Eating out", Slug: "food", IsPublished: true}
	require.NoError(t, svc.Taxonomy.CreateCategory(category))

	author := registerAndLogin(t, router, "author")
	commenter := registerAndLogin(t, router, "commenter")

	w := postJSON(t, router, "/posts", map[string]interface{}{
		"title":       "Dinner",
		"text":        "Reviews welcome",
		"category_id": category.ID,
	}, author)
	require.Equal(t, http.StatusCreated, w.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	var comment models.Comment

	t.Run("create", func(t *testing.T) {
		w := postJSON(t, router, fmt.Sprintf("/posts/%d/comments", post.ID), map[string]string{
			"text": "Looks tasty",
		}, commenter)
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
		assert.Equal(t, post.ID, comment.PostID)
	})

	t.Run("create requires auth", func(t *testing.T) {
		w := postJSON(t, router, fmt.Sprintf("/posts/%d/comments", post.ID), map[string]string{
			"text": "anon",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create on missing post", func(t *testing.T) {
		w := postJSON(t, router, "/posts/999/comments", map[string]string{"text": "hi"}, commenter)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("edit by non-owner redirects", func(t *testing.T) {
		w := doJSON(t, router, "PUT", fmt.Sprintf("/posts/%d/comments/%d", post.ID, comment.ID), map[string]string{
			"text": "hijacked",
		}, author)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))
	})

	t.Run("edit under wrong post is not found", func(t *testing.T) {
		w := doJSON(t, router, "PUT", fmt.Sprintf("/posts/999/comments/%d", comment.ID), map[string]string{
			"text": "misfiled",
		}, commenter)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("edit by owner", func(t *testing.T) {
		w := doJSON(t, router, "PUT", fmt.Sprintf("/posts/%d/comments/%d", post.ID, comment.ID), map[string]string{
			"text": "Even better on a second look",
		}, commenter)
		require.Equal(t, http.StatusOK, w.Code)

		var updated models.Comment
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Even better on a second look", updated.Text)
	})

	t.Run("delete by owner", func(t *testing.T) {
		w := doJSON(t, router, "DELETE", fmt.Sprintf("/posts/%d/comments/%d", post.ID, comment.ID), nil, commenter)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestCatalogRoutes(t *testing.T) {
	router, svc := setupTestRouter(t)

	public := &models.Category{Title: "Tech", Description: "Bits", Slug: "tech", IsPublished: true}
	hidden := &models.Category{Title: "Drafts", Description: "Shh", Slug: "drafts", IsPublished: false}
	require.NoError(t, svc.Taxonomy.CreateCategory(public))
	require.NoError(t, svc.Taxonomy.CreateCategory(hidden))

	author := registerAndLogin(t, router, "author")
	w := postJSON(t, router, "/posts", map[string]interface{}{
		"title":       "Shipping",
		"text":        "We shipped",
		"category_id": public.ID,
	}, author)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("category feed", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/category/tech", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			TotalCount int `json:"total_count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 1, page.TotalCount)
	})

	t.Run("unpublished category is hidden", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/category/drafts", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/category/nope", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("profile feed", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/profile/author", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			TotalCount int `json:"total_count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 1, page.TotalCount)
	})

	t.Run("unknown profile", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/profile/ghost", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("page parameter is clamped", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/posts?page=99", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Number int `json:"number"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 1, page.Number)
	})
}

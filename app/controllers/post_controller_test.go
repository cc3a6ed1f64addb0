package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/app/middleware"
	"quill/app/models"
	"quill/app/repositories/mock"
	"quill/app/services"
)

type postControllerEnv struct {
	router     *mux.Router
	author     *models.User
	categoryID int
}

func setupPostController(t *testing.T) *postControllerEnv {
	t.Helper()
	posts := mock.NewPostRepository()
	comments := mock.NewCommentRepository()
	categories := mock.NewCategoryRepository()
	clock := services.SystemClock()
	visibility := services.NewVisibility(categories, clock)
	controller := NewPostController(services.NewPostService(posts, comments, visibility, clock))

	router := mux.NewRouter()
	router.HandleFunc("/posts", controller.Create).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}", controller.Show).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}", controller.Edit).Methods("PUT")
	router.HandleFunc("/posts/{id:[0-9]+}", controller.Delete).Methods("DELETE")

	category := &models.Category{Title: "Tech", Description: "Bits", Slug: "tech", IsPublished: true, CreatedAt: time.Now()}
	require.NoError(t, categories.Create(category))

	author := &models.User{ID: 1, Username: "author", Email: "author@example.com", CreatedAt: time.Now()}

	return &postControllerEnv{
		router:     router,
		author:     author,
		categoryID: category.ID,
	}
}

func (env *postControllerEnv) do(method, path, body string, viewer *models.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if viewer != nil {
		req = middleware.WithUser(req, viewer)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestPostControllerCreate(t *testing.T) {
	env := setupPostController(t)

	t.Run("defaults is_published to true", func(t *testing.T) {
		body := fmt.Sprintf(`{"title":"Up","text":"body","category_id":%d}`, env.categoryID)
		w := env.do(http.MethodPost, "/posts", body, env.author)
		require.Equal(t, http.StatusCreated, w.Code)

		var post models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.True(t, post.IsPublished)
	})

	t.Run("honors explicit is_published false", func(t *testing.T) {
		body := fmt.Sprintf(`{"title":"Draft","text":"body","category_id":%d,"is_published":false}`, env.categoryID)
		w := env.do(http.MethodPost, "/posts", body, env.author)
		require.Equal(t, http.StatusCreated, w.Code)

		var post models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.False(t, post.IsPublished)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := env.do(http.MethodPost, "/posts", "{not json", env.author)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure echoes input", func(t *testing.T) {
		body := fmt.Sprintf(`{"title":"","text":"body","category_id":%d}`, env.categoryID)
		w := env.do(http.MethodPost, "/posts", body, env.author)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response, "error")
		assert.Contains(t, response, "input")
	})

	t.Run("anonymous", func(t *testing.T) {
		body := fmt.Sprintf(`{"title":"Up","text":"body","category_id":%d}`, env.categoryID)
		w := env.do(http.MethodPost, "/posts", body, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPostControllerOutcomes(t *testing.T) {
	env := setupPostController(t)

	body := fmt.Sprintf(`{"title":"Mine","text":"body","category_id":%d}`, env.categoryID)
	w := env.do(http.MethodPost, "/posts", body, env.author)
	require.Equal(t, http.StatusCreated, w.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	stranger := &models.User{ID: env.author.ID + 1, Username: "stranger", CreatedAt: time.Now()}
	path := fmt.Sprintf("/posts/%d", post.ID)
	update := fmt.Sprintf(`{"title":"Theirs","text":"body","category_id":%d}`, env.categoryID)

	t.Run("show", func(t *testing.T) {
		w := env.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("edit denied redirects to the post", func(t *testing.T) {
		w := env.do(http.MethodPut, path, update, stranger)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, path, w.Header().Get("Location"))
	})

	t.Run("edit missing post", func(t *testing.T) {
		w := env.do(http.MethodPut, "/posts/999", update, env.author)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete denied redirects to the post", func(t *testing.T) {
		w := env.do(http.MethodDelete, path, "", stranger)
		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("delete applied", func(t *testing.T) {
		w := env.do(http.MethodDelete, path, "", env.author)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

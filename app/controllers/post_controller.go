package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"quill/app/middleware"
	"quill/app/models"
	"quill/app/services"
)

type PostController struct {
	posts *services.PostService
}

func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// postPayload is the request body for creating and editing posts.
// IsPublished defaults to true when the field is omitted.
type postPayload struct {
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	Image       string    `json:"image,omitempty"`
	PubDate     time.Time `json:"pub_date"`
	IsPublished *bool     `json:"is_published"`
	CategoryID  *int      `json:"category_id"`
	LocationID  *int      `json:"location_id"`
}

func (p *postPayload) toModel() *models.Post {
	published := true
	if p.IsPublished != nil {
		published = *p.IsPublished
	}
	return &models.Post{
		Title:       p.Title,
		Text:        p.Text,
		Image:       p.Image,
		PubDate:     p.PubDate,
		IsPublished: published,
		CategoryID:  p.CategoryID,
		LocationID:  p.LocationID,
	}
}

func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "invalid post id", http.StatusBadRequest)
		return
	}
	detail, err := pc.posts.Get(middleware.CurrentUser(r), id)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, detail)
}

func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	viewer := middleware.CurrentUser(r)
	post := payload.toModel()
	if err := pc.posts.Create(viewer, post); err != nil {
		sendServiceError(w, err)
		return
	}
	w.Header().Set("Location", "/profile/"+viewer.Username)
	sendJSON(w, http.StatusCreated, post)
}

func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "invalid post id", http.StatusBadRequest)
		return
	}
	var payload postPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	post, outcome, err := pc.posts.Edit(middleware.CurrentUser(r), id, payload.toModel())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	switch outcome {
	case services.Applied:
		sendJSON(w, http.StatusOK, post)
	case services.Denied:
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", id), http.StatusSeeOther)
	default:
		sendError(w, "not found", http.StatusNotFound)
	}
}

func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "invalid post id", http.StatusBadRequest)
		return
	}
	outcome, err := pc.posts.Delete(middleware.CurrentUser(r), id)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	switch outcome {
	case services.Applied:
		w.WriteHeader(http.StatusNoContent)
	case services.Denied:
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", id), http.StatusSeeOther)
	default:
		sendError(w, "not found", http.StatusNotFound)
	}
}

package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quill/app/middleware"
	"quill/app/services"
)

type CommentController struct {
	comments *services.CommentService
}

func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

type commentPayload struct {
	Text string `json:"text"`
}

func commentVars(r *http.Request) (postID, commentID int, err error) {
	vars := mux.Vars(r)
	postID, err = strconv.Atoi(vars["postId"])
	if err != nil {
		return 0, 0, err
	}
	if raw, ok := vars["id"]; ok {
		commentID, err = strconv.Atoi(raw)
	}
	return postID, commentID, err
}

func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, _, err := commentVars(r)
	if err != nil {
		sendError(w, "invalid comment path", http.StatusBadRequest)
		return
	}
	var payload commentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	comment, err := cc.comments.Add(middleware.CurrentUser(r), postID, payload.Text)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/posts/%d", postID))
	sendJSON(w, http.StatusCreated, comment)
}

func (cc *CommentController) Edit(w http.ResponseWriter, r *http.Request) {
	postID, commentID, err := commentVars(r)
	if err != nil {
		sendError(w, "invalid comment path", http.StatusBadRequest)
		return
	}
	var payload commentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	comment, outcome, err := cc.comments.Edit(middleware.CurrentUser(r), postID, commentID, payload.Text)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	switch outcome {
	case services.Applied:
		sendJSON(w, http.StatusOK, comment)
	case services.Denied:
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", postID), http.StatusSeeOther)
	default:
		sendError(w, "not found", http.StatusNotFound)
	}
}

func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	postID, commentID, err := commentVars(r)
	if err != nil {
		sendError(w, "invalid comment path", http.StatusBadRequest)
		return
	}
	outcome, err := cc.comments.Delete(middleware.CurrentUser(r), postID, commentID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	switch outcome {
	case services.Applied:
		w.WriteHeader(http.StatusNoContent)
	case services.Denied:
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", postID), http.StatusSeeOther)
	default:
		sendError(w, "not found", http.StatusNotFound)
	}
}

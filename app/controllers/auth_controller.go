package controllers

import (
	"encoding/json"
	"net/http"

	"quill/app/middleware"
	"quill/app/services"
)

type AuthController struct {
	users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{users: users}
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type profilePayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	user, err := ac.users.Register(payload.Username, payload.Email, payload.Password)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	user, err := ac.users.Authenticate(payload.Username, payload.Password)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	session, err := ac.users.StartSession(user, services.DefaultSessionTTL)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	sendJSON(w, http.StatusOK, user)
}

func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		ac.users.EndSession(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (ac *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload profilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	viewer := middleware.CurrentUser(r)
	user, err := ac.users.UpdateProfile(viewer, payload.FirstName, payload.LastName, payload.Email)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

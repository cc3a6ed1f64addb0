package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"quill/app/middleware"
	"quill/app/services"
)

// CatalogController serves the paginated listings: the public feed, a
// category feed, and an author's profile feed.
type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

func (cc *CatalogController) Home(w http.ResponseWriter, r *http.Request) {
	page, err := cc.catalog.ListHome(parsePage(r))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, page)
}

func (cc *CatalogController) Category(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	page, err := cc.catalog.ListCategory(slug, parsePage(r))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, page)
}

func (cc *CatalogController) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	viewer := middleware.CurrentUser(r)
	profile, err := cc.catalog.ListProfile(username, viewer, parsePage(r))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, profile)
}

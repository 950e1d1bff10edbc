package controllers

import (
	"net/http"

	"quill/app/middleware"
	"quill/app/models"
	"quill/app/services"
)

// FavoriteController handles HTTP requests for article favorites
type FavoriteController struct {
	favorites *services.FavoriteService
}

// NewFavoriteController creates a new FavoriteController
func NewFavoriteController(favorites *services.FavoriteService) *FavoriteController {
	return &FavoriteController{favorites: favorites}
}

// Index lists the authenticated user's favorites, newest first.
func (fc *FavoriteController) Index(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	favorites, err := fc.favorites.ListByUser(user.ID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if favorites == nil {
		favorites = []*models.Favorite{}
	}
	sendJSON(w, http.StatusOK, favorites)
}

// Toggle flips the favorite state of one article for the
// authenticated user and reports the resulting state.
func (fc *FavoriteController) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	articleID, err := pathInt(r, "articleId")
	if err != nil {
		sendError(w, "invalid article ID", http.StatusBadRequest)
		return
	}

	favorited, err := fc.favorites.Toggle(user.ID, articleID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

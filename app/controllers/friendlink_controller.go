package controllers

import (
	"errors"
	"net/http"

	"quill/app/models"
	"quill/app/repositories"
)

// FriendLinkController handles HTTP requests for sidebar friend links
type FriendLinkController struct {
	links repositories.FriendLinkRepository
}

// NewFriendLinkController creates a new FriendLinkController
func NewFriendLinkController(links repositories.FriendLinkRepository) *FriendLinkController {
	return &FriendLinkController{links: links}
}

// Index lists all friend links.
func (fc *FriendLinkController) Index(w http.ResponseWriter, r *http.Request) {
	links, err := fc.links.List()
	if err != nil {
		sendError(w, "failed to fetch friend links: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if links == nil {
		links = []*models.FriendLink{}
	}
	sendJSON(w, http.StatusOK, links)
}

// Create stores a new friend link. Admin only, enforced on the route.
func (fc *FriendLinkController) Create(w http.ResponseWriter, r *http.Request) {
	var link models.FriendLink
	if err := decodeJSON(r, &link); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := link.Validate(); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := fc.links.Create(&link); err != nil {
		sendError(w, "failed to create friend link: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusCreated, link)
}

// Update edits a friend link. Admin only.
func (fc *FriendLinkController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		sendError(w, "invalid friend link ID", http.StatusBadRequest)
		return
	}

	var link models.FriendLink
	if err := decodeJSON(r, &link); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	link.ID = id
	if err := link.Validate(); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := fc.links.Update(&link); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, "friend link not found", http.StatusNotFound)
			return
		}
		sendError(w, "failed to update friend link: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusOK, link)
}

// Delete removes a friend link. Admin only.
func (fc *FriendLinkController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		sendError(w, "invalid friend link ID", http.StatusBadRequest)
		return
	}

	if err := fc.links.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, "friend link not found", http.StatusNotFound)
			return
		}
		sendError(w, "failed to delete friend link: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

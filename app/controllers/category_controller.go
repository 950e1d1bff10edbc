package controllers

import (
	"errors"
	"net/http"

	"quill/app/models"
	"quill/app/repositories"
)

// CategoryController handles HTTP requests for article categories
type CategoryController struct {
	categories repositories.CategoryRepository
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categories repositories.CategoryRepository) *CategoryController {
	return &CategoryController{categories: categories}
}

// Index lists all categories in display order.
func (cc *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := cc.categories.List()
	if err != nil {
		sendError(w, "failed to fetch categories: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	sendJSON(w, http.StatusOK, categories)
}

// Create stores a new category. Admin only, enforced on the route.
func (cc *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := decodeJSON(r, &category); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := category.Validate(); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := cc.categories.Create(&category); err != nil {
		sendError(w, "failed to create category: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusCreated, category)
}

// Update renames or reorders a category. Admin only.
func (cc *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		sendError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	var category models.Category
	if err := decodeJSON(r, &category); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	category.ID = id
	if err := category.Validate(); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := cc.categories.Update(&category); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, "category not found", http.StatusNotFound)
			return
		}
		sendError(w, "failed to update category: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusOK, category)
}

// Delete removes a category. Admin only.
func (cc *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		sendError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	if err := cc.categories.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, "category not found", http.StatusNotFound)
			return
		}
		sendError(w, "failed to delete category: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

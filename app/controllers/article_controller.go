package controllers

import (
	"net/http"

	"quill/app/models"
	"quill/app/pagination"
	"quill/app/services"
)

// ArticleController handles HTTP requests for articles
type ArticleController struct {
	articles *services.ArticleService
}

// NewArticleController creates a new ArticleController
func NewArticleController(articles *services.ArticleService) *ArticleController {
	return &ArticleController{articles: articles}
}

type articlePage struct {
	Articles   []*models.Article `json:"articles"`
	Pagination pagination.Meta   `json:"pagination"`
}

// Index lists public articles, optionally filtered by category.
func (ac *ArticleController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", pagination.DefaultPageSize)
	categoryID := queryInt(r, "categoryId", 0)

	articles, meta, err := ac.articles.ListArticles(page, limit, categoryID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	if articles == nil {
		articles = []*models.Article{}
	}
	sendJSON(w, http.StatusOK, articlePage{Articles: articles, Pagination: meta})
}

// Show returns one article with its markdown rendered to HTML. Each
// fetch bumps the view counter.
func (ac *ArticleController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		sendError(w, "invalid article ID", http.StatusBadRequest)
		return
	}

	article, err := ac.articles.GetArticle(id)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, article)
}

// Create stores a new article. Admin only, enforced on the route.
func (ac *ArticleController) Create(w http.ResponseWriter, r *http.Request) {
	var article models.Article
	if err := decodeJSON(r, &article); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := ac.articles.CreateArticle(&article); err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, article)
}

// Update replaces an article's editable fields. Admin only.
func (ac *ArticleController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		sendError(w, "invalid article ID", http.StatusBadRequest)
		return
	}

	var article models.Article
	if err := decodeJSON(r, &article); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	article.ID = id

	if err := ac.articles.UpdateArticle(&article); err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, article)
}

// Delete removes an article and its comments. Admin only.
func (ac *ArticleController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		sendError(w, "invalid article ID", http.StatusBadRequest)
		return
	}

	if err := ac.articles.DeleteArticle(id); err != nil {
		sendServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

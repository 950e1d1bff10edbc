package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"quill/app/models"
	"quill/app/pagination"
	"quill/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	comments *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// commentPage is the response body for a page of comments.
type commentPage struct {
	Comments   []*models.Comment `json:"comments"`
	Pagination pagination.Meta   `json:"pagination"`
}

// Index lists one page of an article's comments, newest first.
// Out-of-range page numbers clamp instead of erroring.
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathInt(r, "articleId")
	if err != nil {
		sendError(w, "invalid article ID", http.StatusBadRequest)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", pagination.DefaultPageSize)

	comments, meta, err := cc.comments.ListArticleComments(articleID, page, limit)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	if comments == nil {
		comments = []*models.Comment{}
	}
	sendJSON(w, http.StatusOK, commentPage{Comments: comments, Pagination: meta})
}

// Counts returns comment counts for a batch of articles, keyed by
// article ID. Unknown IDs come back with a zero count.
func (cc *CommentController) Counts(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("articleIds")
	if raw == "" {
		sendError(w, "articleIds is required", http.StatusBadRequest)
		return
	}

	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			sendError(w, "invalid article ID: "+part, http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	counts, err := cc.comments.CountsFor(ids)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]map[int]int{"counts": counts})
}

// Delete removes a comment. Admin only, enforced on the route.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		sendError(w, "invalid comment ID", http.StatusBadRequest)
		return
	}

	if err := cc.comments.DeleteComment(id); err != nil {
		sendServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

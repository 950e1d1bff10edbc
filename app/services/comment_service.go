package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"quill/app/models"
	"quill/app/pagination"
	"quill/app/repositories"

	"github.com/rs/zerolog"
)

// AttachmentBinder binds pre-uploaded image references at submission time.
type AttachmentBinder interface {
	Resolve(refs []models.CommentImage) ([]models.CommentImage, error)
}

// CommentDraft is a not-yet-persisted comment submission.
type CommentDraft struct {
	ArticleID  int                   `json:"articleId"`
	AuthorID   int                   `json:"authorId"`
	AuthorName string                `json:"authorName"`
	Body       string                `json:"body"`
	Images     []models.CommentImage `json:"images"`
}

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	articleRepo repositories.ArticleRepository
	attachments AttachmentBinder
	log         zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, articleRepo repositories.ArticleRepository, attachments AttachmentBinder, log zerolog.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		attachments: attachments,
		log:         log,
	}
}

// CreateComment validates a draft, binds its attachments and persists
// it. The returned comment carries the store-assigned ID and creation
// time; readers never see it before this call returns.
func (s *CommentService) CreateComment(draft CommentDraft) (*models.Comment, error) {
	comment := &models.Comment{
		ArticleID:  draft.ArticleID,
		AuthorID:   draft.AuthorID,
		AuthorName: strings.TrimSpace(draft.AuthorName),
		Body:       strings.TrimSpace(draft.Body),
		Images:     draft.Images,
	}

	if _, err := s.articleRepo.GetByID(comment.ArticleID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: article %d", ErrNotFound, comment.ArticleID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	images, err := s.attachments.Resolve(comment.Images)
	if err != nil {
		return nil, err
	}
	comment.Images = images

	// Validation runs after attachment binding so a body-less draft
	// whose images all resolved still passes.
	if err := validateDraft(comment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.log.Info().Int("comment", comment.ID).Int("article", comment.ArticleID).Msg("comment created")
	return comment, nil
}

// ListArticleComments returns one page of an article's comments,
// newest first, with pagination metadata. Out-of-range pages clamp to
// the nearest valid page.
func (s *CommentService) ListArticleComments(articleID, page, pageSize int) ([]*models.Comment, pagination.Meta, error) {
	if _, err := s.articleRepo.GetByID(articleID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, pagination.Meta{}, fmt.Errorf("%w: article %d", ErrNotFound, articleID)
		}
		return nil, pagination.Meta{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	comments, err := s.commentRepo.ListByArticle(articleID)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	meta := pagination.Paginate(len(comments), page, pageSize)
	start, end := meta.Slice()
	return comments[start:end], meta, nil
}

// CountByArticle returns the number of comments on one article.
func (s *CommentService) CountByArticle(articleID int) (int, error) {
	count, err := s.commentRepo.CountByArticle(articleID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return count, nil
}

// CountsFor returns comment counts for a batch of articles.
func (s *CommentService) CountsFor(articleIDs []int) (map[int]int, error) {
	counts := make(map[int]int, len(articleIDs))
	for _, id := range articleIDs {
		count, err := s.commentRepo.CountByArticle(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		counts[id] = count
	}
	return counts, nil
}

// DeleteComment deletes a comment, surfacing NotFound for missing IDs.
func (s *CommentService) DeleteComment(id int) error {
	err := s.commentRepo.Delete(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: comment %d", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// validateDraft checks the comment fields the store refuses to persist.
func validateDraft(comment *models.Comment) error {
	if comment.AuthorName == "" {
		return errors.New("author name is required")
	}
	if utf8.RuneCountInString(comment.Body) > models.MaxCommentBodyLength {
		return fmt.Errorf("body is too long (maximum %d characters)", models.MaxCommentBodyLength)
	}
	if len(comment.Images) > models.MaxCommentImages {
		return fmt.Errorf("too many images (maximum %d)", models.MaxCommentImages)
	}
	if comment.Body == "" && len(comment.Images) == 0 {
		return errors.New("comment must have a body or at least one image")
	}
	if comment.ArticleID <= 0 {
		return errors.New("invalid article ID")
	}
	return nil
}

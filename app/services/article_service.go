package services

import (
	"bytes"
	"errors"
	"fmt"

	"quill/app/models"
	"quill/app/pagination"
	"quill/app/repositories"

	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
)

// RenderedArticle is an article together with its markdown body
// rendered to HTML.
type RenderedArticle struct {
	*models.Article
	HTML string `json:"html"`
}

// ArticleService handles business logic for articles
type ArticleService struct {
	articleRepo  repositories.ArticleRepository
	categoryRepo repositories.CategoryRepository
	markdown     goldmark.Markdown
	log          zerolog.Logger
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo repositories.ArticleRepository, categoryRepo repositories.CategoryRepository, log zerolog.Logger) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		markdown:     goldmark.New(),
		log:          log,
	}
}

// CreateArticle creates a new article with validation
func (s *ArticleService) CreateArticle(article *models.Article) error {
	article.BeforeCreate()
	if err := article.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if article.CategoryID > 0 {
		if _, err := s.categoryRepo.GetByID(article.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: category %d", ErrNotFound, article.CategoryID)
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	if err := s.articleRepo.Create(article); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// GetArticle retrieves an article with its markdown rendered, bumping
// the view counter.
func (s *ArticleService) GetArticle(id int) (*RenderedArticle, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: article %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	article.Views++
	if err := s.articleRepo.Update(article); err != nil {
		s.log.Warn().Err(err).Int("article", id).Msg("failed to bump view counter")
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(article.Content), &buf); err != nil {
		return nil, fmt.Errorf("failed to render article: %w", err)
	}

	return &RenderedArticle{Article: article, HTML: buf.String()}, nil
}

// ListArticles returns one page of public articles, pinned first.
func (s *ArticleService) ListArticles(page, pageSize int, categoryID int) ([]*models.Article, pagination.Meta, error) {
	all, err := s.articleRepo.List()
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	visible := make([]*models.Article, 0, len(all))
	for _, a := range all {
		if !a.IsPublic {
			continue
		}
		if categoryID > 0 && a.CategoryID != categoryID {
			continue
		}
		visible = append(visible, a)
	}

	meta := pagination.Paginate(len(visible), page, pageSize)
	start, end := meta.Slice()
	return visible[start:end], meta, nil
}

// UpdateArticle updates an existing article with validation
func (s *ArticleService) UpdateArticle(article *models.Article) error {
	existing, err := s.articleRepo.GetByID(article.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: article %d", ErrNotFound, article.ID)
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	article.CreatedAt = existing.CreatedAt
	article.Views = existing.Views
	if err := article.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.articleRepo.Update(article); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// DeleteArticle deletes an article and its comments
func (s *ArticleService) DeleteArticle(id int) error {
	err := s.articleRepo.Delete(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: article %d", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

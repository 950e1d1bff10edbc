package models

import (
	"errors"
	"strings"
	"time"
)

const (
	// MaxCommentBodyLength is the longest accepted comment body.
	MaxCommentBodyLength = 500
	// MaxCommentImages is the most images one comment may carry.
	MaxCommentImages = 3
)

// Validate checks if the comment meets all validation requirements.
// A comment must carry a non-empty body (after trimming) or at least
// one image.
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if strings.TrimSpace(c.Body) == "" && len(c.Images) == 0 {
		return errors.New("comment must have a body or at least one image")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation.
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}

// SetArticle sets the parent article and updates the ArticleID.
func (c *Comment) SetArticle(article *Article) error {
	if article == nil {
		return errors.New("article cannot be nil")
	}

	c.ArticleID = article.ID
	return nil
}

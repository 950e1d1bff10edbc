package models

import (
	"errors"
	"time"
)

// Validate checks if the article meets all validation requirements.
func (a *Article) Validate() error {
	if err := validate.Struct(a); err != nil {
		return err
	}

	if a.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation.
func (a *Article) BeforeCreate() {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
}

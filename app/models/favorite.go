package models

import "time"

// Validate checks if the favorite meets all validation requirements.
func (f *Favorite) Validate() error {
	return validate.Struct(f)
}

// BeforeCreate sets up any necessary fields before creation.
func (f *Favorite) BeforeCreate() {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
}

package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.PubDate.IsZero() {
		p.PubDate = p.CreatedAt
	}
}

// Scheduled reports whether the post's publication date is still in the
// future relative to now.
func (p *Post) Scheduled(now time.Time) bool {
	return p.PubDate.After(now)
}

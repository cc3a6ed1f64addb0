package models

import "time"

// Validate checks if the category meets all validation requirements
func (c *Category) Validate() error {
	return validate.Struct(c)
}

// BeforeCreate sets up any necessary fields before creation
func (c *Category) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}

// Validate checks if the location meets all validation requirements
func (l *Location) Validate() error {
	return validate.Struct(l)
}

// BeforeCreate sets up any necessary fields before creation
func (l *Location) BeforeCreate() {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
}

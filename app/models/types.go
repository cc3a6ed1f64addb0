package models

import "time"

// User represents a registered author of posts and comments.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=3,max=150,slug"`
	Email        string    `json:"email" validate:"omitempty,email"`
	FirstName    string    `json:"first_name" validate:"max=150"`
	LastName     string    `json:"last_name" validate:"max=150"`
	PasswordHash string    `json:"-" validate:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category groups posts under a unique URL slug. Unpublishing a category
// hides every post attached to it.
type Category struct {
	ID          int       `json:"id" validate:"gte=0"`
	Title       string    `json:"title" validate:"required,max=256"`
	Description string    `json:"description" validate:"required"`
	Slug        string    `json:"slug" validate:"required,max=64,slug"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// Location is an optional place tag on a post.
type Location struct {
	ID          int       `json:"id" validate:"gte=0"`
	Name        string    `json:"name" validate:"required,max=256"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// Post is a publication. CategoryID and LocationID are pointers because
// deleting a category or location nulls the reference instead of removing
// the post.
type Post struct {
	ID          int       `json:"id" validate:"gte=0"`
	Title       string    `json:"title" validate:"required,max=256"`
	Text        string    `json:"text" validate:"required"`
	Image       string    `json:"image,omitempty" validate:"-"`
	PubDate     time.Time `json:"pub_date" validate:"required"`
	IsPublished bool      `json:"is_published"`
	AuthorID    int       `json:"author_id" validate:"required,gt=0"`
	CategoryID  *int      `json:"category_id"`
	LocationID  *int      `json:"location_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Comment belongs to exactly one post and one author.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	Text      string    `json:"text" validate:"required,max=1000"`
	CreatedAt time.Time `json:"created_at"`
}

// Session maps an opaque cookie token to a user for its lifetime.
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

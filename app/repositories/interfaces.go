package repositories

import (
	"time"

	"quill/app/models"
)

// PostFilter narrows a post listing. Nil pointer fields are ignored.
// PublishedOnly keeps posts with IsPublished set; MaxPubDate drops posts
// whose publication date is after the given instant.
type PostFilter struct {
	AuthorID      *int
	CategoryID    *int
	LocationID    *int
	PublishedOnly bool
	MaxPubDate    *time.Time
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	Delete(id int) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id int) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	List() ([]*models.Category, error)
	Update(category *models.Category) error
	Delete(id int) error
}

// LocationRepository defines the interface for location data access
type LocationRepository interface {
	Create(location *models.Location) error
	GetByID(id int) (*models.Location, error)
	List() ([]*models.Location, error)
	Update(location *models.Location) error
	Delete(id int) error
}

// PostRepository defines the interface for post data access. List returns
// posts ordered by publication date descending; posts sharing a
// publication date keep their insertion order.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List(filter PostFilter) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access.
// GetScoped resolves a comment only within its claimed parent post and
// reports ErrNotFound on a mismatch.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	GetScoped(id, postID int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	ListByAuthor(authorID int) ([]*models.Comment, error)
	CountByPost(postID int) (int, error)
	Update(comment *models.Comment) error
	Delete(id int) error
}

// SessionRepository defines the interface for session token storage
type SessionRepository interface {
	Create(session *models.Session) error
	Get(token string) (*models.Session, error)
	Delete(token string) error
	DeleteExpired(now time.Time) (int, error)
}

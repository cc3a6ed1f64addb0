package services

import (
	"errors"

	"quill/app/models"
	"quill/app/repositories"
)

// Visibility decides whether a post can be seen by a given viewer. A post
// is live when it is published, its publication date has passed, and it
// sits in a category that exists and is itself published. Non-live posts
// are visible to their author only.
type Visibility struct {
	categories repositories.CategoryRepository
	clock      Clock
}

// NewVisibility creates a new Visibility policy
func NewVisibility(categories repositories.CategoryRepository, clock Clock) *Visibility {
	return &Visibility{categories: categories, clock: clock}
}

// IsLive reports whether the post is publicly visible right now.
func (v *Visibility) IsLive(post *models.Post) (bool, error) {
	if !post.IsPublished || post.Scheduled(v.clock.Now()) {
		return false, nil
	}
	if post.CategoryID == nil {
		return false, nil
	}

	category, err := v.categories.GetByID(*post.CategoryID)
	if errors.Is(err, repositories.ErrNotFound) {
		// The category was deleted out from under the post.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return category.IsPublished, nil
}

// IsVisible reports whether the viewer may see the post. The author sees
// their own posts regardless of publish state.
func (v *Visibility) IsVisible(post *models.Post, viewer *models.User) (bool, error) {
	if viewer != nil && viewer.ID == post.AuthorID {
		return true, nil
	}
	return v.IsLive(post)
}

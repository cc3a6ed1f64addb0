package services

import (
	"errors"

	"quill/app/models"
	"quill/app/repositories"
)

// PostService handles the post lifecycle: creation, the visibility-gated
// detail view, and owner-only edits and deletes.
type PostService struct {
	posts      repositories.PostRepository
	comments   repositories.CommentRepository
	visibility *Visibility
	clock      Clock
}

// NewPostService creates a new PostService
func NewPostService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	visibility *Visibility,
	clock Clock,
) *PostService {
	return &PostService{
		posts:      posts,
		comments:   comments,
		visibility: visibility,
		clock:      clock,
	}
}

// PostDetail is a post with its comments attached for the single-post view.
type PostDetail struct {
	*models.Post
	Comments []*models.Comment `json:"comments"`
}

// Create persists a new post on behalf of the viewer. The author is fixed
// to the viewer and the creation time is set exactly once.
func (s *PostService) Create(viewer *models.User, post *models.Post) error {
	if viewer == nil {
		return ErrUnauthenticated
	}
	if post.CategoryID == nil {
		return &ValidationError{Input: post, Err: errors.New("category is required")}
	}

	post.AuthorID = viewer.ID
	post.CreatedAt = s.clock.Now()
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return &ValidationError{Input: post, Err: err}
	}
	return s.posts.Create(post)
}

// Get returns the post with its comments. A post that exists but is not
// visible to the viewer is reported as not found, so hidden content is
// indistinguishable from absent content.
func (s *PostService) Get(viewer *models.User, id int) (*PostDetail, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}

	visible, err := s.visibility.IsVisible(post, viewer)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, repositories.ErrNotFound
	}

	comments, err := s.comments.ListByPost(id)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments}, nil
}

// Edit applies the submitted fields to an existing post. Only the owner
// may edit; everyone else gets a Denied no-op. The author and creation
// time never change.
func (s *PostService) Edit(viewer *models.User, id int, submitted *models.Post) (*models.Post, Outcome, error) {
	existing, err := s.posts.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound, nil
	}
	if err != nil {
		return nil, NotFound, err
	}

	if !CanMutate(existing.AuthorID, viewer) {
		return nil, Denied, nil
	}

	submitted.ID = existing.ID
	submitted.AuthorID = existing.AuthorID
	submitted.CreatedAt = existing.CreatedAt
	if submitted.PubDate.IsZero() {
		submitted.PubDate = existing.PubDate
	}

	if err := submitted.Validate(); err != nil {
		return nil, Applied, &ValidationError{Input: submitted, Err: err}
	}
	if err := s.posts.Update(submitted); err != nil {
		return nil, Applied, err
	}
	return submitted, Applied, nil
}

// Delete removes a post and, with it, all of its comments. Only the owner
// may delete.
func (s *PostService) Delete(viewer *models.User, id int) (Outcome, error) {
	existing, err := s.posts.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return NotFound, nil
	}
	if err != nil {
		return NotFound, err
	}

	if !CanMutate(existing.AuthorID, viewer) {
		return Denied, nil
	}

	comments, err := s.comments.ListByPost(id)
	if err != nil {
		return Applied, err
	}
	for _, comment := range comments {
		if err := s.comments.Delete(comment.ID); err != nil {
			return Applied, err
		}
	}

	if err := s.posts.Delete(id); err != nil {
		return Applied, err
	}
	return Applied, nil
}

package services

import (
	"errors"

	"quill/app/models"
	"quill/app/repositories"
)

// CommentService handles the comment lifecycle, always scoped to the
// comment's parent post.
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	clock    Clock
}

// NewCommentService creates a new CommentService
func NewCommentService(
	comments repositories.CommentRepository,
	posts repositories.PostRepository,
	clock Clock,
) *CommentService {
	return &CommentService{comments: comments, posts: posts, clock: clock}
}

// Add creates a comment on the given post on behalf of the viewer. The
// parent post must exist but does not have to be live: an author may
// collect comments on a post they are still previewing, and the comment
// form is only reachable through the visibility-gated detail view.
func (s *CommentService) Add(viewer *models.User, postID int, text string) (*models.Comment, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	if _, err := s.posts.GetByID(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  viewer.ID,
		Text:      text,
		CreatedAt: s.clock.Now(),
	}
	if err := comment.Validate(); err != nil {
		return nil, &ValidationError{Input: comment, Err: err}
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Edit updates a comment's text. The comment is resolved scoped to its
// claimed parent post; a mismatch is not found. Only the owner may edit.
func (s *CommentService) Edit(viewer *models.User, postID, commentID int, text string) (*models.Comment, Outcome, error) {
	comment, err := s.comments.GetScoped(commentID, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound, nil
	}
	if err != nil {
		return nil, NotFound, err
	}

	if !CanMutate(comment.AuthorID, viewer) {
		return nil, Denied, nil
	}

	comment.Text = text
	if err := comment.Validate(); err != nil {
		return nil, Applied, &ValidationError{Input: comment, Err: err}
	}
	if err := s.comments.Update(comment); err != nil {
		return nil, Applied, err
	}
	return comment, Applied, nil
}

// Delete removes a comment, scoped to its parent post like Edit.
func (s *CommentService) Delete(viewer *models.User, postID, commentID int) (Outcome, error) {
	comment, err := s.comments.GetScoped(commentID, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return NotFound, nil
	}
	if err != nil {
		return NotFound, err
	}

	if !CanMutate(comment.AuthorID, viewer) {
		return Denied, nil
	}

	if err := s.comments.Delete(comment.ID); err != nil {
		return Applied, err
	}
	return Applied, nil
}

package services

import (
	"errors"
	"time"

	"quill/app/models"
	"quill/app/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSessionTTL is how long a login session stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// UserService handles registration, login sessions, profile edits, and
// the cascade that removes a user's content with the user.
type UserService struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	sessions repositories.SessionRepository
	clock    Clock
}

// NewUserService creates a new UserService
func NewUserService(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	sessions repositories.SessionRepository,
	clock Clock,
) *UserService {
	return &UserService{
		users:    users,
		posts:    posts,
		comments: comments,
		sessions: sessions,
		clock:    clock,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	if len(password) < 8 {
		return nil, &ValidationError{Input: username, Err: errors.New("password must be at least 8 characters")}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := user.Validate(); err != nil {
		return nil, &ValidationError{Input: user, Err: err}
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair. Failures are reported
// uniformly as ErrInvalidCredentials.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// StartSession issues a fresh session token for the user.
func (s *UserService) StartSession(user *models.User, ttl time.Duration) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.clock.Now().Add(ttl),
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession invalidates a session token.
func (s *UserService) EndSession(token string) error {
	return s.sessions.Delete(token)
}

// CurrentUser resolves a session token to its user. Expired or unknown
// tokens yield no viewer identity.
func (s *UserService) CurrentUser(token string) (*models.User, error) {
	session, err := s.sessions.Get(token)
	if err != nil {
		return nil, err
	}
	if session.ExpiresAt.Before(s.clock.Now()) {
		// Lazy cleanup; the maintenance sweep catches the rest.
		_ = s.sessions.Delete(token)
		return nil, repositories.ErrNotFound
	}
	return s.users.GetByID(session.UserID)
}

// UpdateProfile edits the viewer's own display fields. The username and
// password are managed elsewhere and never touched here.
func (s *UserService) UpdateProfile(viewer *models.User, firstName, lastName, email string) (*models.User, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetByID(viewer.ID)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email
	if err := user.Validate(); err != nil {
		return nil, &ValidationError{Input: user, Err: err}
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername resolves a user profile by username.
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	return s.users.GetByUsername(username)
}

// Delete removes a user together with their posts, the comments on those
// posts, and the comments the user left elsewhere.
func (s *UserService) Delete(id int) error {
	if _, err := s.users.GetByID(id); err != nil {
		return err
	}

	posts, err := s.posts.List(repositories.PostFilter{AuthorID: &id})
	if err != nil {
		return err
	}
	for _, post := range posts {
		comments, err := s.comments.ListByPost(post.ID)
		if err != nil {
			return err
		}
		for _, comment := range comments {
			if err := s.comments.Delete(comment.ID); err != nil {
				return err
			}
		}
		if err := s.posts.Delete(post.ID); err != nil {
			return err
		}
	}

	comments, err := s.comments.ListByAuthor(id)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		if err := s.comments.Delete(comment.ID); err != nil {
			return err
		}
	}

	return s.users.Delete(id)
}

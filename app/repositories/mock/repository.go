// Package mock provides in-memory repository implementations for tests.
package mock

import (
	"sort"
	"sync"
	"time"

	"quill/app/models"
	"quill/app/repositories"
)

type UserRepository struct {
	users  map[int]*models.User
	nextID int
	mutex  sync.RWMutex
}

type CategoryRepository struct {
	categories map[int]*models.Category
	nextID     int
	mutex      sync.RWMutex
}

type LocationRepository struct {
	locations map[int]*models.Location
	nextID    int
	mutex     sync.RWMutex
}

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

type SessionRepository struct {
	sessions map[string]*models.Session
	mutex    sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int]*models.User), nextID: 1}
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[int]*models.Category), nextID: 1}
}

func NewLocationRepository() *LocationRepository {
	return &LocationRepository{locations: make(map[int]*models.Location), nextID: 1}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[int]*models.Post), nextID: 1}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[int]*models.Comment), nextID: 1}
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*models.Session)}
}

// UserRepository implementation

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username {
			return repositories.ErrConflict
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) GetByUsername(username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) Update(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return repositories.ErrNotFound
	}
	for _, existing := range m.users {
		if existing.Username == user.Username && existing.ID != user.ID {
			return repositories.ErrConflict
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// CategoryRepository implementation

func (m *CategoryRepository) Create(category *models.Category) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.categories {
		if existing.Slug == category.Slug {
			return repositories.ErrConflict
		}
	}
	category.ID = m.nextID
	m.nextID++
	m.categories[category.ID] = category
	return nil
}

func (m *CategoryRepository) GetByID(id int) (*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	category, exists := m.categories[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return category, nil
}

func (m *CategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, category := range m.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *CategoryRepository) List() ([]*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var categories []*models.Category
	for _, category := range m.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

func (m *CategoryRepository) Update(category *models.Category) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.categories[category.ID]; !exists {
		return repositories.ErrNotFound
	}
	for _, existing := range m.categories {
		if existing.Slug == category.Slug && existing.ID != category.ID {
			return repositories.ErrConflict
		}
	}
	m.categories[category.ID] = category
	return nil
}

func (m *CategoryRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.categories[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

// LocationRepository implementation

func (m *LocationRepository) Create(location *models.Location) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	location.ID = m.nextID
	m.nextID++
	m.locations[location.ID] = location
	return nil
}

func (m *LocationRepository) GetByID(id int) (*models.Location, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	location, exists := m.locations[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return location, nil
}

func (m *LocationRepository) List() ([]*models.Location, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var locations []*models.Location
	for _, location := range m.locations {
		locations = append(locations, location)
	}
	sort.Slice(locations, func(i, j int) bool {
		return locations[i].ID < locations[j].ID
	})
	return locations, nil
}

func (m *LocationRepository) Update(location *models.Location) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.locations[location.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.locations[location.ID] = location
	return nil
}

func (m *LocationRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.locations[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.locations, id)
	return nil
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) List(filter repositories.PostFilter) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var posts []*models.Post
	for _, post := range m.posts {
		if matches(post, filter) {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PubDate.After(posts[j].PubDate)
	})
	return posts, nil
}

func matches(post *models.Post, filter repositories.PostFilter) bool {
	if filter.AuthorID != nil && post.AuthorID != *filter.AuthorID {
		return false
	}
	if filter.CategoryID != nil {
		if post.CategoryID == nil || *post.CategoryID != *filter.CategoryID {
			return false
		}
	}
	if filter.LocationID != nil {
		if post.LocationID == nil || *post.LocationID != *filter.LocationID {
			return false
		}
	}
	if filter.PublishedOnly && !post.IsPublished {
		return false
	}
	if filter.MaxPubDate != nil && post.PubDate.After(*filter.MaxPubDate) {
		return false
	}
	return true
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *CommentRepository) GetScoped(id, postID int) (*models.Comment, error) {
	comment, err := m.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *CommentRepository) ListByAuthor(authorID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.AuthorID == authorID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (m *CommentRepository) CountByPost(postID int) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	count := 0
	for _, comment := range m.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (m *CommentRepository) Update(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[comment.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

// SessionRepository implementation

func (m *SessionRepository) Create(session *models.Session) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessions[session.Token] = session
	return nil
}

func (m *SessionRepository) Get(token string) (*models.Session, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	session, exists := m.sessions[token]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return session, nil
}

func (m *SessionRepository) Delete(token string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.sessions, token)
	return nil
}

func (m *SessionRepository) DeleteExpired(now time.Time) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	count := 0
	for token, session := range m.sessions {
		if session.ExpiresAt.Before(now) {
			delete(m.sessions, token)
			count++
		}
	}
	return count, nil
}

package services

import (
	"errors"

	"quill/app/models"
	"quill/app/repositories"
)

// PageSize is the fixed number of posts per listing page. It does not
// vary per feed or per call.
const PageSize = 10

// PostSummary is a post enriched for listings: its comment count plus the
// resolved category and location, when still present.
type PostSummary struct {
	*models.Post
	CommentCount int              `json:"comment_count"`
	Category     *models.Category `json:"category,omitempty"`
	Location     *models.Location `json:"location,omitempty"`
}

// Page is one window of a listing. Numbers are 1-based; an empty listing
// is a single empty page.
type Page struct {
	Posts       []*PostSummary `json:"posts"`
	Number      int            `json:"number"`
	TotalPages  int            `json:"total_pages"`
	TotalCount  int            `json:"total_count"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// CatalogService assembles the home, category and profile feeds. Every
// feed sorts by publication date descending and pages by PageSize.
type CatalogService struct {
	posts      repositories.PostRepository
	comments   repositories.CommentRepository
	categories repositories.CategoryRepository
	locations  repositories.LocationRepository
	users      repositories.UserRepository
	clock      Clock
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	categories repositories.CategoryRepository,
	locations repositories.LocationRepository,
	users repositories.UserRepository,
	clock Clock,
) *CatalogService {
	return &CatalogService{
		posts:      posts,
		comments:   comments,
		categories: categories,
		locations:  locations,
		users:      users,
		clock:      clock,
	}
}

// ListHome returns the public home feed: live posts only.
func (s *CatalogService) ListHome(page int) (*Page, error) {
	now := s.clock.Now()
	posts, err := s.posts.List(repositories.PostFilter{
		PublishedOnly: true,
		MaxPubDate:    &now,
	})
	if err != nil {
		return nil, err
	}

	live, err := s.dropHiddenCategories(posts)
	if err != nil {
		return nil, err
	}
	return s.paginate(live, page)
}

// ListCategory returns the feed for a category slug. A missing or
// unpublished category makes the whole feed not found.
func (s *CatalogService) ListCategory(slug string, page int) (*Page, error) {
	category, err := s.categories.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !category.IsPublished {
		return nil, repositories.ErrNotFound
	}

	now := s.clock.Now()
	posts, err := s.posts.List(repositories.PostFilter{
		CategoryID:    &category.ID,
		PublishedOnly: true,
		MaxPubDate:    &now,
	})
	if err != nil {
		return nil, err
	}
	return s.paginate(posts, page)
}

// ListProfile returns a user's feed. The owner sees all of their posts,
// including unpublished and future-dated ones; everyone else sees only
// the live ones.
func (s *CatalogService) ListProfile(username string, viewer *models.User, page int) (*Page, error) {
	profile, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	filter := repositories.PostFilter{AuthorID: &profile.ID}
	owner := viewer != nil && viewer.ID == profile.ID
	if !owner {
		now := s.clock.Now()
		filter.PublishedOnly = true
		filter.MaxPubDate = &now
	}

	posts, err := s.posts.List(filter)
	if err != nil {
		return nil, err
	}
	if !owner {
		posts, err = s.dropHiddenCategories(posts)
		if err != nil {
			return nil, err
		}
	}
	return s.paginate(posts, page)
}

// dropHiddenCategories removes posts whose category is absent, deleted or
// unpublished. The date and publish checks have already been applied by
// the repository filter.
func (s *CatalogService) dropHiddenCategories(posts []*models.Post) ([]*models.Post, error) {
	published := make(map[int]bool)
	var kept []*models.Post
	for _, post := range posts {
		if post.CategoryID == nil {
			continue
		}
		id := *post.CategoryID
		ok, seen := published[id]
		if !seen {
			category, err := s.categories.GetByID(id)
			switch {
			case errors.Is(err, repositories.ErrNotFound):
				ok = false
			case err != nil:
				return nil, err
			default:
				ok = category.IsPublished
			}
			published[id] = ok
		}
		if ok {
			kept = append(kept, post)
		}
	}
	return kept, nil
}

// paginate clamps the page number to the valid range and builds the
// summaries for the selected window.
func (s *CatalogService) paginate(posts []*models.Post, page int) (*Page, error) {
	total := len(posts)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	summaries := make([]*PostSummary, 0, end-start)
	for _, post := range posts[start:end] {
		summary, err := s.summarize(post)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return &Page{
		Posts:       summaries,
		Number:      page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

func (s *CatalogService) summarize(post *models.Post) (*PostSummary, error) {
	count, err := s.comments.CountByPost(post.ID)
	if err != nil {
		return nil, err
	}

	summary := &PostSummary{Post: post, CommentCount: count}
	if post.CategoryID != nil {
		category, err := s.categories.GetByID(*post.CategoryID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		summary.Category = category
	}
	if post.LocationID != nil {
		location, err := s.locations.GetByID(*post.LocationID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		summary.Location = location
	}
	return summary, nil
}

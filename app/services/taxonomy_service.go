package services

import (
	"quill/app/models"
	"quill/app/repositories"
)

// TaxonomyService manages categories and locations. Deleting either does
// not cascade to posts: the reference on each post is nulled instead, so
// the posts survive with the tag removed.
type TaxonomyService struct {
	categories repositories.CategoryRepository
	locations  repositories.LocationRepository
	posts      repositories.PostRepository
	clock      Clock
}

// NewTaxonomyService creates a new TaxonomyService
func NewTaxonomyService(
	categories repositories.CategoryRepository,
	locations repositories.LocationRepository,
	posts repositories.PostRepository,
	clock Clock,
) *TaxonomyService {
	return &TaxonomyService{
		categories: categories,
		locations:  locations,
		posts:      posts,
		clock:      clock,
	}
}

// CreateCategory validates and persists a new category. A duplicate slug
// surfaces as repositories.ErrConflict.
func (s *TaxonomyService) CreateCategory(category *models.Category) error {
	category.CreatedAt = s.clock.Now()
	category.BeforeCreate()
	if err := category.Validate(); err != nil {
		return &ValidationError{Input: category, Err: err}
	}
	return s.categories.Create(category)
}

// UpdateCategory applies changes to an existing category.
func (s *TaxonomyService) UpdateCategory(category *models.Category) error {
	existing, err := s.categories.GetByID(category.ID)
	if err != nil {
		return err
	}
	category.CreatedAt = existing.CreatedAt
	if err := category.Validate(); err != nil {
		return &ValidationError{Input: category, Err: err}
	}
	return s.categories.Update(category)
}

// DeleteCategory removes a category and nulls the category reference on
// every post that pointed at it.
func (s *TaxonomyService) DeleteCategory(id int) error {
	if _, err := s.categories.GetByID(id); err != nil {
		return err
	}

	posts, err := s.posts.List(repositories.PostFilter{CategoryID: &id})
	if err != nil {
		return err
	}
	for _, post := range posts {
		post.CategoryID = nil
		if err := s.posts.Update(post); err != nil {
			return err
		}
	}

	return s.categories.Delete(id)
}

// ListCategories returns all categories.
func (s *TaxonomyService) ListCategories() ([]*models.Category, error) {
	return s.categories.List()
}

// CreateLocation validates and persists a new location.
func (s *TaxonomyService) CreateLocation(location *models.Location) error {
	location.CreatedAt = s.clock.Now()
	location.BeforeCreate()
	if err := location.Validate(); err != nil {
		return &ValidationError{Input: location, Err: err}
	}
	return s.locations.Create(location)
}

// UpdateLocation applies changes to an existing location.
func (s *TaxonomyService) UpdateLocation(location *models.Location) error {
	existing, err := s.locations.GetByID(location.ID)
	if err != nil {
		return err
	}
	location.CreatedAt = existing.CreatedAt
	if err := location.Validate(); err != nil {
		return &ValidationError{Input: location, Err: err}
	}
	return s.locations.Update(location)
}

// DeleteLocation removes a location and nulls the location reference on
// every post that pointed at it.
func (s *TaxonomyService) DeleteLocation(id int) error {
	if _, err := s.locations.GetByID(id); err != nil {
		return err
	}

	posts, err := s.posts.List(repositories.PostFilter{LocationID: &id})
	if err != nil {
		return err
	}
	for _, post := range posts {
		post.LocationID = nil
		if err := s.posts.Update(post); err != nil {
			return err
		}
	}

	return s.locations.Delete(id)
}

// ListLocations returns all locations.
func (s *TaxonomyService) ListLocations() ([]*models.Location, error) {
	return s.locations.List()
}

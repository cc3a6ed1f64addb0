package services

import (
	"errors"
	"testing"
	"time"

	"quill/app/models"
	"quill/app/repositories"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyCategories(t *testing.T) {
	env := newTestEnv()

	t.Run("create and duplicate slug", func(t *testing.T) {
		err := env.taxonomy.CreateCategory(&models.Category{
			Title:       "Travel",
			Description: "Trips",
			Slug:        "travel",
			IsPublished: true,
		})
		assert.NoError(t, err)

		err = env.taxonomy.CreateCategory(&models.Category{
			Title:       "Also travel",
			Description: "Duplicate",
			Slug:        "travel",
			IsPublished: true,
		})
		assert.True(t, errors.Is(err, repositories.ErrConflict))
	})

	t.Run("bad slug fails validation", func(t *testing.T) {
		err := env.taxonomy.CreateCategory(&models.Category{
			Title:       "Bad",
			Description: "Bad slug",
			Slug:        "no spaces allowed",
		})
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestTaxonomyDeleteNullsReferences(t *testing.T) {
	env := newTestEnv()
	author := env.addUser("author")

	t.Run("category delete keeps posts, nulls the reference", func(t *testing.T) {
		category := env.addCategory("travel", true)
		post := env.addPost(author, category, env.now.Add(-time.Hour), true)

		assert.NoError(t, env.taxonomy.DeleteCategory(category.ID))

		stored, err := env.posts.GetByID(post.ID)
		assert.NoError(t, err)
		assert.Nil(t, stored.CategoryID)

		_, err = env.categories.GetByID(category.ID)
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})

	t.Run("location delete keeps posts, nulls the reference", func(t *testing.T) {
		location := &models.Location{Name: "Lisbon", IsPublished: true}
		assert.NoError(t, env.taxonomy.CreateLocation(location))

		category := env.addCategory("food", true)
		post := env.addPost(author, category, env.now.Add(-time.Hour), true)
		post.LocationID = &location.ID
		assert.NoError(t, env.posts.Update(post))

		assert.NoError(t, env.taxonomy.DeleteLocation(location.ID))

		stored, err := env.posts.GetByID(post.ID)
		assert.NoError(t, err)
		assert.Nil(t, stored.LocationID)
		assert.NotNil(t, stored.CategoryID)
	})

	t.Run("deleting a missing category is not found", func(t *testing.T) {
		err := env.taxonomy.DeleteCategory(9999)
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})
}

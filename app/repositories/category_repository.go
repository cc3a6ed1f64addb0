package repositories

import (
	"fmt"
	"sort"

	"quill/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCategoryRepository implements CategoryRepository using BadgerDB
type BadgerCategoryRepository struct {
	db *badger.DB
}

// NewBadgerCategoryRepository creates a new BadgerCategoryRepository
func NewBadgerCategoryRepository(db *badger.DB) *BadgerCategoryRepository {
	return &BadgerCategoryRepository{db: db}
}

// Create creates a new category. The slug must be globally unique.
func (r *BadgerCategoryRepository) Create(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		taken, err := slugTaken(txn, category.Slug, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrConflict
		}

		id, err := getNextID(txn, CategorySeqKey)
		if err != nil {
			return err
		}
		category.ID = id

		data, err := marshalEntity(category)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", CategoryKeyPrefix, category.ID))
		return txn.Set(key, data)
	})
}

// GetByID retrieves a category by ID
func (r *BadgerCategoryRepository) GetByID(id int) (*models.Category, error) {
	var category models.Category

	err := r.db.View(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", CategoryKeyPrefix, id))
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &category)
		})
	})

	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBySlug retrieves a category by its unique slug
func (r *BadgerCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var found *models.Category

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CategoryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var category models.Category
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &category)
			})
			if err != nil {
				return err
			}
			if category.Slug == slug {
				found = &category
				return nil
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// List retrieves all categories ordered by ID
func (r *BadgerCategoryRepository) List() ([]*models.Category, error) {
	var categories []*models.Category

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CategoryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var category models.Category
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &category)
			})
			if err != nil {
				return err
			}
			categories = append(categories, &category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

// Update updates an existing category, keeping the slug unique
func (r *BadgerCategoryRepository) Update(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", CategoryKeyPrefix, category.ID))

		// Verify category exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		taken, err := slugTaken(txn, category.Slug, category.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrConflict
		}

		data, err := marshalEntity(category)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a category by ID
func (r *BadgerCategoryRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", CategoryKeyPrefix, id))

		// Verify category exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(key)
	})
}

// slugTaken reports whether another category already holds the slug.
func slugTaken(txn *badger.Txn, slug string, selfID int) (bool, error) {
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(CategoryKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var category models.Category
		err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &category)
		})
		if err != nil {
			return false, err
		}
		if category.Slug == slug && category.ID != selfID {
			return true, nil
		}
	}
	return false, nil
}

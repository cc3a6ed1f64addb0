package repositories

import (
	"time"

	"quill/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSessionRepository implements SessionRepository using BadgerDB
type BadgerSessionRepository struct {
	db *badger.DB
}

// NewBadgerSessionRepository creates a new BadgerSessionRepository
func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db}
}

// Create stores a session keyed by its token
func (r *BadgerSessionRepository) Create(session *models.Session) error {
	return r.db.Update(func(txn *badger.Txn) error {
		data, err := marshalEntity(session)
		if err != nil {
			return err
		}
		return txn.Set([]byte(SessionKeyPrefix+session.Token), data)
	})
}

// Get retrieves a session by token
func (r *BadgerSessionRepository) Get(token string) (*models.Session, error) {
	var session models.Session

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(SessionKeyPrefix + token))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &session)
		})
	})

	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session by token
func (r *BadgerSessionRepository) Delete(token string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(SessionKeyPrefix + token))
	})
}

// DeleteExpired removes every session that expired before now and returns
// how many were dropped.
func (r *BadgerSessionRepository) DeleteExpired(now time.Time) (int, error) {
	var expired []string

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(SessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var session models.Session
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &session)
			})
			if err != nil {
				return err
			}
			if session.ExpiresAt.Before(now) {
				expired = append(expired, session.Token)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, token := range expired {
		if err := r.Delete(token); err != nil {
			return 0, err
		}
	}
	return len(expired), nil
}

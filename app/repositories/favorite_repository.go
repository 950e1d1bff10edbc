package repositories

import (
	"fmt"
	"sort"

	"quill/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerFavoriteRepository implements FavoriteRepository using BadgerDB
type BadgerFavoriteRepository struct {
	db *badger.DB
}

// NewBadgerFavoriteRepository creates a new BadgerFavoriteRepository
func NewBadgerFavoriteRepository(db *badger.DB) *BadgerFavoriteRepository {
	return &BadgerFavoriteRepository{db: db}
}

// favoriteKey embeds user and article IDs so the (user, article) pair
// is naturally unique.
func favoriteKey(userID, articleID int) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", FavoriteKeyPrefix, userID, articleID))
}

// Create creates a favorite; re-favoriting the same article overwrites
// the existing record rather than duplicating it.
func (r *BadgerFavoriteRepository) Create(favorite *models.Favorite) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, FavoriteSeqKey)
		if err != nil {
			return err
		}
		favorite.ID = id
		favorite.BeforeCreate()

		data, err := marshalEntity(favorite)
		if err != nil {
			return err
		}

		return txn.Set(favoriteKey(favorite.UserID, favorite.ArticleID), data)
	})
}

// Delete removes a favorite by (user, article)
func (r *BadgerFavoriteRepository) Delete(userID, articleID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := favoriteKey(userID, articleID)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// Exists reports whether the user has favorited the article
func (r *BadgerFavoriteRepository) Exists(userID, articleID int) (bool, error) {
	var exists bool
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(favoriteKey(userID, articleID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// ListByUser retrieves all favorites for a user, newest first
func (r *BadgerFavoriteRepository) ListByUser(userID int) ([]*models.Favorite, error) {
	var favorites []*models.Favorite

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%d:", FavoriteKeyPrefix, userID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var favorite models.Favorite
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &favorite)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal favorite: %v", err)
			}
			favorites = append(favorites, &favorite)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].CreatedAt.After(favorites[j].CreatedAt)
	})
	return favorites, nil
}

package repositories

import (
	"fmt"
	"sort"

	"quill/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerFriendLinkRepository implements FriendLinkRepository using BadgerDB
type BadgerFriendLinkRepository struct {
	db *badger.DB
}

// NewBadgerFriendLinkRepository creates a new BadgerFriendLinkRepository
func NewBadgerFriendLinkRepository(db *badger.DB) *BadgerFriendLinkRepository {
	return &BadgerFriendLinkRepository{db: db}
}

// Create creates a new friend link
func (r *BadgerFriendLinkRepository) Create(link *models.FriendLink) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, FriendLinkSeqKey)
		if err != nil {
			return err
		}
		link.ID = id

		data, err := marshalEntity(link)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", FriendLinkKeyPrefix, link.ID))
		return txn.Set(key, data)
	})
}

// List retrieves all friend links ordered by ID
func (r *BadgerFriendLinkRepository) List() ([]*models.FriendLink, error) {
	var links []*models.FriendLink

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(FriendLinkKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var link models.FriendLink
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &link)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal friend link: %v", err)
			}
			links = append(links, &link)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })
	return links, nil
}

// Update updates an existing friend link
func (r *BadgerFriendLinkRepository) Update(link *models.FriendLink) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", FriendLinkKeyPrefix, link.ID))
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		data, err := marshalEntity(link)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a friend link by ID
func (r *BadgerFriendLinkRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", FriendLinkKeyPrefix, id))
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

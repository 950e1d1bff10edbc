package repositories

import (
	"fmt"
	"sort"

	"quill/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerArticleRepository implements ArticleRepository using BadgerDB
type BadgerArticleRepository struct {
	db *badger.DB
}

// NewBadgerArticleRepository creates a new BadgerArticleRepository
func NewBadgerArticleRepository(db *badger.DB) *BadgerArticleRepository {
	return &BadgerArticleRepository{db: db}
}

// Create creates a new article
func (r *BadgerArticleRepository) Create(article *models.Article) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, ArticleSeqKey)
		if err != nil {
			return err
		}
		article.ID = id
		article.BeforeCreate()

		data, err := marshalEntity(article)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", ArticleKeyPrefix, article.ID))
		return txn.Set(key, data)
	})
}

// GetByID retrieves an article by ID
func (r *BadgerArticleRepository) GetByID(id int) (*models.Article, error) {
	var article models.Article

	err := r.db.View(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", ArticleKeyPrefix, id))
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &article)
		})
	})

	if err != nil {
		return nil, err
	}
	return &article, nil
}

// List retrieves all articles, pinned articles first, then newest first.
func (r *BadgerArticleRepository) List() ([]*models.Article, error) {
	var articles []*models.Article

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ArticleKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var article models.Article
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &article)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal article: %v", err)
			}
			articles = append(articles, &article)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(articles, func(i, j int) bool {
		if articles[i].IsTop != articles[j].IsTop {
			return articles[i].IsTop
		}
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})

	return articles, nil
}

// Update updates an existing article
func (r *BadgerArticleRepository) Update(article *models.Article) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", ArticleKeyPrefix, article.ID))
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		data, err := marshalEntity(article)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes an article and all of its comments
func (r *BadgerArticleRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", ArticleKeyPrefix, id))
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		// Collect comment keys first; deleting while iterating is unsafe.
		var commentKeys [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := commentArticlePrefix(id)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			commentKeys = append(commentKeys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, ck := range commentKeys {
			if err := txn.Delete(ck); err != nil {
				return err
			}
		}

		return txn.Delete(key)
	})
}

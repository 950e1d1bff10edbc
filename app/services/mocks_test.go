package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"quill/app/models"
	"quill/app/repositories"
)

// In-memory repository fakes for service tests.

type mockCommentRepo struct {
	comments map[int]*models.Comment
	nextID   int
	failing  bool
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int]*models.Comment), nextID: 1}
}

func (m *mockCommentRepo) Create(comment *models.Comment) error {
	if m.failing {
		return errors.New("store unavailable")
	}
	comment.ID = m.nextID
	m.nextID++
	comment.CreatedAt = time.Now()
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *mockCommentRepo) GetByID(id int) (*models.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return c, nil
}

func (m *mockCommentRepo) ListByArticle(articleID int) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range m.comments {
		if c.ArticleID == articleID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *mockCommentRepo) CountByArticle(articleID int) (int, error) {
	count := 0
	for _, c := range m.comments {
		if c.ArticleID == articleID {
			count++
		}
	}
	return count, nil
}

func (m *mockCommentRepo) Update(comment *models.Comment) error {
	existing, ok := m.comments[comment.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	comment.CreatedAt = existing.CreatedAt
	comment.ArticleID = existing.ArticleID
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *mockCommentRepo) Delete(id int) error {
	if _, ok := m.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

type mockArticleRepo struct {
	articles map[int]*models.Article
	nextID   int
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{articles: make(map[int]*models.Article), nextID: 1}
}

func (m *mockArticleRepo) Create(article *models.Article) error {
	article.ID = m.nextID
	m.nextID++
	article.BeforeCreate()
	stored := *article
	m.articles[article.ID] = &stored
	return nil
}

func (m *mockArticleRepo) GetByID(id int) (*models.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return a, nil
}

func (m *mockArticleRepo) List() ([]*models.Article, error) {
	var out []*models.Article
	for _, a := range m.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsTop != out[j].IsTop {
			return out[i].IsTop
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockArticleRepo) Update(article *models.Article) error {
	if _, ok := m.articles[article.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *article
	m.articles[article.ID] = &stored
	return nil
}

func (m *mockArticleRepo) Delete(id int) error {
	if _, ok := m.articles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.articles, id)
	return nil
}

type mockUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (m *mockUserRepo) Create(user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	user.BeforeCreate()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepo) List() ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUserRepo) Update(user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// passthroughBinder accepts every image reference unchanged.
type passthroughBinder struct{}

func (passthroughBinder) Resolve(refs []models.CommentImage) ([]models.CommentImage, error) {
	if len(refs) > models.MaxCommentImages {
		return nil, fmt.Errorf("%w: too many images", ErrValidation)
	}
	return refs, nil
}

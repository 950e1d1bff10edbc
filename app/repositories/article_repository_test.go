package repositories

import (
	"testing"

	"quill/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewBadgerArticleRepository(db)

	t.Run("create and get article", func(t *testing.T) {
		article := &models.Article{
			Title:    "Test Article",
			Content:  "Test article content",
			IsPublic: true,
		}

		err := repo.Create(article)
		assert.NoError(t, err)
		assert.Greater(t, article.ID, 0)

		retrieved, err := repo.GetByID(article.ID)
		assert.NoError(t, err)
		assert.Equal(t, article.Title, retrieved.Title)
	})

	t.Run("get missing article", func(t *testing.T) {
		_, err := repo.GetByID(9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("pinned articles list first", func(t *testing.T) {
		pinned := &models.Article{Title: "Pinned", Content: "c", IsTop: true, IsPublic: true}
		err := repo.Create(pinned)
		assert.NoError(t, err)

		articles, err := repo.List()
		assert.NoError(t, err)
		require.NotEmpty(t, articles)
		assert.Equal(t, pinned.ID, articles[0].ID)
	})

	t.Run("delete removes article comments", func(t *testing.T) {
		article := &models.Article{Title: "Doomed", Content: "c", IsPublic: true}
		err := repo.Create(article)
		assert.NoError(t, err)

		comments := NewBadgerCommentRepository(db)
		err = comments.Create(&models.Comment{ArticleID: article.ID, AuthorName: "a", Body: "b"})
		assert.NoError(t, err)

		err = repo.Delete(article.ID)
		assert.NoError(t, err)

		_, err = repo.GetByID(article.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		count, err := comments.CountByArticle(article.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewBadgerUserRepository(db)

	user := &models.User{Username: "tester"}
	require.NoError(t, user.SetPassword("hunter22"))

	err := repo.Create(user)
	assert.NoError(t, err)
	assert.Greater(t, user.ID, 0)

	byName, err := repo.GetByUsername("tester")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.True(t, byName.CheckPassword("hunter22"))
	assert.False(t, byName.CheckPassword("wrong"))

	_, err = repo.GetByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	byName.IsFrozen = true
	err = repo.Update(byName)
	assert.NoError(t, err)

	frozen, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.True(t, frozen.IsFrozen)
}

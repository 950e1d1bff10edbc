package repositories

import "quill/app/models"

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByArticle(articleID int) ([]*models.Comment, error)
	CountByArticle(articleID int) (int, error)
	Update(comment *models.Comment) error
	Delete(id int) error
}

// ArticleRepository defines the interface for article data access
type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id int) (*models.Article, error)
	List() ([]*models.Article, error)
	Update(article *models.Article) error
	Delete(id int) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List() ([]*models.User, error)
	Update(user *models.User) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id int) (*models.Category, error)
	List() ([]*models.Category, error)
	Update(category *models.Category) error
	Delete(id int) error
}

// FriendLinkRepository defines the interface for friend link data access
type FriendLinkRepository interface {
	Create(link *models.FriendLink) error
	List() ([]*models.FriendLink, error)
	Update(link *models.FriendLink) error
	Delete(id int) error
}

// FavoriteRepository defines the interface for favorite data access
type FavoriteRepository interface {
	Create(favorite *models.Favorite) error
	Delete(userID, articleID int) error
	Exists(userID, articleID int) (bool, error)
	ListByUser(userID int) ([]*models.Favorite, error)
}

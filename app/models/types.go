package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Article represents a blog article.
type Article struct {
	ID         int       `json:"id" validate:"gte=0"`
	Title      string    `json:"title" validate:"required,min=1,max=100"`
	CategoryID int       `json:"categoryId" validate:"gte=0"`
	Content    string    `json:"content" validate:"required"`
	IsTop      bool      `json:"isTop"`
	IsPublic   bool      `json:"isPublic"`
	Views      int       `json:"views" validate:"gte=0"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Comment represents one user message attached to one article.
type Comment struct {
	ID         int            `json:"id" validate:"gte=0"`
	ArticleID  int            `json:"articleId" validate:"required,gte=1"`
	AuthorID   int            `json:"authorId" validate:"gte=0"`
	AuthorName string         `json:"authorName" validate:"required,min=1,max=50"`
	Body       string         `json:"body" validate:"max=500"`
	Images     []CommentImage `json:"images" validate:"max=3,dive"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// CommentImage is a reference to an uploaded file bound to a comment.
type CommentImage struct {
	Filename     string `json:"filename" validate:"required"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path"`
	Size         int64  `json:"size" validate:"gte=0"`
	MimeType     string `json:"mimetype"`
}

// User represents a registered account.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=2,max=50"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	IsFrozen     bool      `json:"isFrozen"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Category groups articles.
type Category struct {
	ID   int    `json:"id" validate:"gte=0"`
	Name string `json:"name" validate:"required,min=1,max=50"`
	Sort int    `json:"sort"`
}

// FriendLink is an external site shown in the sidebar.
type FriendLink struct {
	ID   int    `json:"id" validate:"gte=0"`
	Name string `json:"name" validate:"required,min=1,max=50"`
	URL  string `json:"url" validate:"required,url"`
}

// Favorite marks an article bookmarked by a user.
type Favorite struct {
	ID        int       `json:"id" validate:"gte=0"`
	UserID    int       `json:"userId" validate:"required,gte=1"`
	ArticleID int       `json:"articleId" validate:"required,gte=1"`
	CreatedAt time.Time `json:"createdAt"`
}

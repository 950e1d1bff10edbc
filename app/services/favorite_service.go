package services

import (
	"errors"
	"fmt"

	"quill/app/models"
	"quill/app/repositories"

	"github.com/rs/zerolog"
)

// FavoriteService handles article bookmarking and the notification
// mail that accompanies it.
type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	articleRepo  repositories.ArticleRepository
	mailer       Mailer
	log          zerolog.Logger
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, articleRepo repositories.ArticleRepository, mailer Mailer, log zerolog.Logger) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		articleRepo:  articleRepo,
		mailer:       mailer,
		log:          log,
	}
}

// Toggle favorites the article for the user, or removes the favorite
// if one already exists. Returns whether the article is now favorited.
func (s *FavoriteService) Toggle(userID, articleID int) (bool, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, fmt.Errorf("%w: article %d", ErrNotFound, articleID)
		}
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	exists, err := s.favoriteRepo.Exists(userID, articleID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if exists {
		if err := s.favoriteRepo.Delete(userID, articleID); err != nil {
			return false, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return false, nil
	}

	favorite := &models.Favorite{UserID: userID, ArticleID: articleID}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Notification delivery is best-effort; a mail failure never
	// rolls back the favorite.
	if err := s.mailer.Send(userID, "Article favorited", article.Title); err != nil {
		s.log.Warn().Err(err).Int("user", userID).Msg("favorite notification failed")
	}

	return true, nil
}

// ListByUser retrieves a user's favorites, newest first.
func (s *FavoriteService) ListByUser(userID int) ([]*models.Favorite, error) {
	favorites, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return favorites, nil
}

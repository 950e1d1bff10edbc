package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quill/app/models"
	"quill/app/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// UserService handles registration, login and account state.
type UserService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, jwtSecret []byte, tokenTTL time.Duration, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates a new account after checking username uniqueness.
func (s *UserService) Register(username, password, repassword string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", ErrValidation)
	}
	if password != repassword {
		return nil, fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	_, err := s.userRepo.GetByUsername(username)
	if err == nil {
		return nil, fmt.Errorf("%w: username already exists", ErrValidation)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	user := &models.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.log.Info().Str("username", username).Int("user", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies credentials and issues a session token. Frozen
// accounts are rejected even with a correct password.
func (s *UserService) Login(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid username or password", ErrValidation)
		}
		return nil, "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid username or password", ErrValidation)
	}
	if user.IsFrozen {
		return nil, "", fmt.Errorf("%w: account is frozen", ErrValidation)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}

// ListUsers retrieves all users, for the admin panel.
func (s *UserService) ListUsers() ([]*models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return users, nil
}

// SetFrozen freezes or unfreezes an account.
func (s *UserService) SetFrozen(id int, frozen bool) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	user.IsFrozen = frozen
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// ResetPassword replaces a user's password, for the admin panel.
func (s *UserService) ResetPassword(id int, password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrValidation)
	}
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// generateToken issues a signed JWT for the user.
func (s *UserService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Username,
		"admin": user.IsAdmin,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken checks a session token and returns the user it names.
// A frozen or deleted account invalidates an otherwise valid token.
func (s *UserService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrValidation)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrValidation)
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token subject", ErrValidation)
	}

	user, err := s.GetUser(int(sub))
	if err != nil {
		return nil, fmt.Errorf("%w: unknown user", ErrValidation)
	}
	if user.IsFrozen {
		return nil, fmt.Errorf("%w: account is frozen", ErrValidation)
	}
	return user, nil
}

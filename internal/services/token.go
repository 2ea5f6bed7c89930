package services

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/zachricha/medium-clone-api/internal/config"
	"github.com/zachricha/medium-clone-api/internal/models"
	"github.com/zachricha/medium-clone-api/pkg/utils"
)

// ErrInvalidToken is returned for any token that cannot resolve a user:
// bad signature, wrong scope, or a token no longer in the stored list.
var ErrInvalidToken = errors.New("invalid token")

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so callers cannot tell which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

type TokenService struct {
	db        *gorm.DB
	jwtSecret []byte
}

type Claims struct {
	UserID string `json:"_id"`
	Access string `json:"access"`
	jwt.RegisteredClaims
}

func NewTokenService(db *gorm.DB, cfg *config.Config) *TokenService {
	return &TokenService{
		db:        db,
		jwtSecret: []byte(cfg.JWT.Secret),
	}
}

// Issue signs an auth token for the user and appends it to the user's
// stored token list. Tokens carry no expiry; they stay valid until
// revoked.
func (s *TokenService) Issue(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Access: models.AccessAuth,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	record := models.Token{
		UserID: user.ID,
		Access: models.AccessAuth,
		Token:  tokenString,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", err
	}
	return tokenString, nil
}

// Revoke removes the matching entry from the user's token list. Removing
// a token that is not stored is a no-op, not an error.
func (s *TokenService) Revoke(user *models.User, tokenString string) error {
	return s.db.
		Where("user_id = ? AND token = ?", user.ID, tokenString).
		Delete(&models.Token{}).Error
}

// ResolveUser verifies the token signature and scope, then looks up the
// user that both matches the embedded id and still holds this exact token
// in its stored list. A token revoked by logout fails here even though
// its signature verifies.
func (s *TokenService) ResolveUser(tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Access != models.AccessAuth {
		return nil, ErrInvalidToken
	}

	var record models.Token
	err = s.db.
		Where("user_id = ? AND token = ? AND access = ?", claims.UserID, tokenString, models.AccessAuth).
		First(&record).Error
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.Preload("Likes").First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, ErrInvalidToken
	}
	return &user, nil
}

// FindByCredentials resolves a user by email and password. Both failure
// modes collapse into the same rejection.
func (s *TokenService) FindByCredentials(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

package stores

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zachricha/medium-clone-api/internal/models"
)

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// Create validates and inserts a post owned by user. The owner reference
// is fixed here and never updated afterwards.
func (s *PostStore) Create(user *models.User, header, body string) (*models.Post, error) {
	header = strings.TrimSpace(header)
	body = strings.TrimSpace(body)
	if header == "" {
		return nil, invalid("header", "is required")
	}
	if body == "" {
		return nil, invalid("post", "is required")
	}

	post := &models.Post{
		ID:     uuid.NewString(),
		Header: header,
		Body:   body,
		UserID: user.ID,
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostStore) FindByID(id string) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Likes").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByIDWithOwner loads the post with its owner resolved.
func (s *PostStore) FindByIDWithOwner(id string) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Likes").Preload("User").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// All returns every post with its owner resolved, newest first.
func (s *PostStore) All() ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Preload("Likes").Preload("User").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Update replaces header and body after validation.
func (s *PostStore) Update(post *models.Post, header, body string) error {
	header = strings.TrimSpace(header)
	body = strings.TrimSpace(body)
	if header == "" {
		return invalid("header", "is required")
	}
	if body == "" {
		return invalid("post", "is required")
	}

	post.Header = header
	post.Body = body
	return s.db.Model(post).Updates(map[string]any{
		"header": header,
		"body":   body,
	}).Error
}

// Delete removes the post and every like reference to it, on both the
// post side and the user side, in one transaction.
func (s *PostStore) Delete(post *models.Post) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.UserLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", post.ID).Error
	})
}

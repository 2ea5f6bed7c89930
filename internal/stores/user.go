package stores

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zachricha/medium-clone-api/internal/models"
	"github.com/zachricha/medium-clone-api/pkg/utils"
)

const minPasswordLength = 6

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create validates the user, hashes the plaintext password and inserts the
// record. Email and username must be unique; bio defaults to "Bio".
func (s *UserStore) Create(user *models.User) error {
	user.FullName = strings.TrimSpace(user.FullName)
	user.Email = strings.TrimSpace(user.Email)
	user.Username = strings.TrimSpace(user.Username)

	if user.FullName == "" {
		return invalid("fullName", "is required")
	}
	if user.Email == "" {
		return invalid("email", "is required")
	}
	if user.Username == "" {
		return invalid("username", "is required")
	}
	if len(user.Password) < minPasswordLength {
		return invalid("password", "is too short")
	}
	if taken, err := s.taken("email", user.Email, ""); err != nil {
		return err
	} else if taken {
		return invalid("email", "is already taken")
	}
	if taken, err := s.taken("username", user.Username, ""); err != nil {
		return err
	} else if taken {
		return invalid("username", "is already taken")
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Bio == "" {
		user.Bio = "Bio"
	}

	return s.db.Create(user).Error
}

func (s *UserStore) FindByID(id string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Likes").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Likes").First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateEmail changes the user's email after trimming and a uniqueness
// check against other users.
func (s *UserStore) UpdateEmail(user *models.User, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email", "is required")
	}
	if taken, err := s.taken("email", email, user.ID); err != nil {
		return err
	} else if taken {
		return invalid("email", "is already taken")
	}

	user.Email = email
	return s.db.Model(user).Update("email", email).Error
}

// UpdateBio sets the user's bio; an empty bio is coerced back to the
// default "Bio".
func (s *UserStore) UpdateBio(user *models.User, bio string) error {
	if bio == "" {
		bio = "Bio"
	}
	user.Bio = bio
	return s.db.Model(user).Update("bio", bio).Error
}

// UpdatePassword rehashes and stores a new plaintext password.
func (s *UserStore) UpdatePassword(user *models.User, password string) error {
	if len(password) < minPasswordLength {
		return invalid("password", "is too short")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.db.Model(user).Update("password", hashed).Error
}

// Delete removes the user and cascades: every post the user owns is
// deleted along with its like rows, the user's id is removed from the
// like lists of surviving posts, and the user's tokens and own like list
// go with it. Runs in one transaction so no partial cascade is visible.
func (s *UserStore) Delete(user *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ownedIDs []string
		if err := tx.Model(&models.Post{}).Where("user_id = ?", user.ID).
			Pluck("id", &ownedIDs).Error; err != nil {
			return err
		}

		if len(ownedIDs) > 0 {
			// owned posts disappear entirely, including likes other
			// users put on them
			if err := tx.Where("post_id IN ?", ownedIDs).Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", ownedIDs).Delete(&models.UserLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ownedIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		// pull this user's id out of the like lists of posts it did not own
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Token{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, "id = ?", user.ID).Error
	})
}

// OwnedPosts resolves the user's owned-post relation, oldest first.
func (s *UserStore) OwnedPosts(user *models.User) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Preload("Likes").
		Where("user_id = ?", user.ID).
		Order("created_at").
		Find(&posts).Error
	return posts, err
}

// LikedPosts resolves the user's liked posts in like order, with each
// post's owner resolved as well.
func (s *UserStore) LikedPosts(user *models.User) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.
		Joins("JOIN user_likes ON user_likes.post_id = posts.id").
		Where("user_likes.user_id = ?", user.ID).
		Order("user_likes.id").
		Preload("User").
		Preload("Likes").
		Find(&posts).Error
	return posts, err
}

func (s *UserStore) taken(column, value, excludeID string) (bool, error) {
	q := s.db.Model(&models.User{}).Where(column+" = ?", value)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

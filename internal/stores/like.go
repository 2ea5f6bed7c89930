package stores

import (
	"gorm.io/gorm"

	"github.com/zachricha/medium-clone-api/internal/models"
)

// LikeStore keeps the two denormalized like collections in sync: the
// users liking a post (post_likes) and the posts a user likes
// (user_likes). Every toggle touches both inside one transaction.
type LikeStore struct {
	db *gorm.DB
}

func NewLikeStore(db *gorm.DB) *LikeStore {
	return &LikeStore{db: db}
}

// Toggle likes the post for user, or unlikes it when the user's id is
// already in the post's like list. A user contributes at most one like.
// Returns whether the post is liked after the call.
func (s *LikeStore) Toggle(user *models.User, post *models.Post) (bool, error) {
	liked := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PostLike{}).
			Where("post_id = ? AND user_id = ?", post.ID, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		alreadyLiked := count > 0

		if alreadyLiked {
			if err := tx.Where("post_id = ? AND user_id = ?", post.ID, user.ID).
				Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
			return tx.Where("user_id = ? AND post_id = ?", user.ID, post.ID).
				Delete(&models.UserLike{}).Error
		}

		liked = true
		if err := tx.Create(&models.PostLike{PostID: post.ID, UserID: user.ID}).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserLike{UserID: user.ID, PostID: post.ID}).Error
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

package models

import "time"

// AccessAuth is the only token scope the API issues.
const AccessAuth = "auth"

// User model
type User struct {
	ID        string     `gorm:"primaryKey;size:36" json:"_id"`
	FullName  string     `gorm:"size:255" json:"fullName"`
	Email     string     `gorm:"size:255;uniqueIndex" json:"email"`
	Username  string     `gorm:"size:255;uniqueIndex" json:"username"`
	Password  string     `gorm:"size:255" json:"-"` // bcrypt hash, never serialized
	IsAdmin   bool       `gorm:"default:false" json:"-"`
	Bio       string     `gorm:"size:255" json:"bio"`
	Tokens    []Token    `gorm:"foreignKey:UserID" json:"-"`
	Likes     []UserLike `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// View is the public representation of a user. Password, token list and
// the admin flag never leave the server.
func (u *User) View() map[string]any {
	return map[string]any{
		"_id":      u.ID,
		"fullName": u.FullName,
		"email":    u.Email,
		"username": u.Username,
		"bio":      u.Bio,
	}
}

// LikeIDs returns the ids of the posts this user likes, in like order.
func (u *User) LikeIDs() []string {
	ids := make([]string, 0, len(u.Likes))
	for _, l := range u.Likes {
		ids = append(ids, l.PostID)
	}
	return ids
}

// Token model - a signed credential recorded server-side so a single
// session can be revoked on logout.
type Token struct {
	ID     uint   `gorm:"primaryKey"`
	UserID string `gorm:"size:36;index"`
	Access string `gorm:"size:32"`
	Token  string `gorm:"size:512;index"`
}

// Post model
type Post struct {
	ID        string     `gorm:"primaryKey;size:36"`
	Header    string     `gorm:"size:255"`
	Body      string     `gorm:"type:text"`
	UserID    string     `gorm:"size:36;index"` // owner, immutable after create
	User      *User      `gorm:"foreignKey:UserID"`
	Likes     []PostLike `gorm:"foreignKey:PostID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View serializes the post with the owner as a bare id.
func (p *Post) View() map[string]any {
	return map[string]any{
		"_id":    p.ID,
		"header": p.Header,
		"post":   p.Body,
		"likes":  p.LikeIDs(),
		"user":   p.UserID,
	}
}

// ViewWithOwner serializes the post with the owner resolved to its public
// view. Falls back to the bare id when the owner was not loaded.
func (p *Post) ViewWithOwner() map[string]any {
	v := p.View()
	if p.User != nil {
		v["user"] = p.User.View()
	}
	return v
}

// LikeIDs returns the ids of the users liking this post, in like order.
func (p *Post) LikeIDs() []string {
	ids := make([]string, 0, len(p.Likes))
	for _, l := range p.Likes {
		ids = append(ids, l.UserID)
	}
	return ids
}

// LikedBy reports whether userID is in the post's like list.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// UserLike and PostLike are the two sides of the denormalized like
// relation: the posts a user likes and the users liking a post. The like
// toggle keeps both in sync; autoincrement ids preserve like order.
type UserLike struct {
	ID     uint   `gorm:"primaryKey"`
	UserID string `gorm:"size:36;index"`
	PostID string `gorm:"size:36"`
}

type PostLike struct {
	ID     uint   `gorm:"primaryKey"`
	PostID string `gorm:"size:36;index"`
	UserID string `gorm:"size:36"`
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zachricha/medium-clone-api/internal/middleware"
	"github.com/zachricha/medium-clone-api/internal/models"
	"github.com/zachricha/medium-clone-api/internal/stores"
	"github.com/zachricha/medium-clone-api/pkg/utils"
)

type UserHandler struct {
	users *stores.UserStore
	posts *stores.PostStore
}

func NewUserHandler(users *stores.UserStore, posts *stores.PostStore) *UserHandler {
	return &UserHandler{users: users, posts: posts}
}

// Me returns the acting user's public view.
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c).View())
}

// CreatePost creates a post owned by the acting user.
func (h *UserHandler) CreatePost(c *gin.Context) {
	var req struct {
		Header string `json:"header" binding:"required"`
		Body   string `json:"post" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	user := middleware.CurrentUser(c)
	post, err := h.posts.Create(user, req.Header, req.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post.View())
}

// DeleteUser removes the acting user with full cascade and returns the
// deleted user's view.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.users.Delete(user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user.View())
}

// UpdateEmail changes the acting user's email.
func (h *UserHandler) UpdateEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.users.UpdateEmail(user, req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user.View())
}

// UpdateBio changes the acting user's bio; an empty bio falls back to the
// default.
func (h *UserHandler) UpdateBio(c *gin.Context) {
	var req struct {
		Bio string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.users.UpdateBio(user, req.Bio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user.View())
}

// UpdatePassword requires the retyped password to match and the old
// password to verify; either failure is a 406.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		Password       string `json:"password"`
		RetypePassword string `json:"retypePassword"`
		OldPassword    string `json:"oldPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if req.Password != req.RetypePassword {
		c.Status(http.StatusNotAcceptable)
		return
	}

	user := middleware.CurrentUser(c)
	if !utils.CheckPasswordHash(req.OldPassword, user.Password) {
		c.Status(http.StatusNotAcceptable)
		return
	}

	if err := h.users.UpdatePassword(user, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

// Posts shows a user's profile and owned posts. sameUser tells the client
// whether it is looking at its own profile.
func (h *UserHandler) Posts(c *gin.Context) {
	user, ok := h.findByUsername(c)
	if !ok {
		return
	}

	posts, err := h.users.OwnedPosts(user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views := make([]map[string]any, 0, len(posts))
	for i := range posts {
		views = append(views, posts[i].View())
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user.View(),
		"posts":    views,
		"sameUser": h.sameUser(c, user.ID),
	})
}

// Likes shows a user's profile and liked posts, each with its owner
// resolved.
func (h *UserHandler) Likes(c *gin.Context) {
	user, ok := h.findByUsername(c)
	if !ok {
		return
	}

	likes, err := h.users.LikedPosts(user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views := make([]map[string]any, 0, len(likes))
	for i := range likes {
		views = append(views, likes[i].ViewWithOwner())
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user.View(),
		"likes":    views,
		"sameUser": h.sameUser(c, user.ID),
	})
}

func (h *UserHandler) findByUsername(c *gin.Context) (*models.User, bool) {
	user, err := h.users.FindByUsername(c.Param("username"))
	if errors.Is(err, stores.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return user, true
}

func (h *UserHandler) sameUser(c *gin.Context, id string) bool {
	current := middleware.CurrentUser(c)
	return current != nil && current.ID == id
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zachricha/medium-clone-api/internal/middleware"
	"github.com/zachricha/medium-clone-api/internal/models"
	"github.com/zachricha/medium-clone-api/internal/stores"
)

type PostHandler struct {
	posts *stores.PostStore
	likes *stores.LikeStore
}

func NewPostHandler(posts *stores.PostStore, likes *stores.LikeStore) *PostHandler {
	return &PostHandler{posts: posts, likes: likes}
}

// List returns every post with its owner resolved.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.All()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views := make([]map[string]any, 0, len(posts))
	for i := range posts {
		views = append(views, posts[i].ViewWithOwner())
	}
	c.JSON(http.StatusOK, gin.H{"posts": views})
}

// Get returns a single post. loggedIn reflects optional-auth resolution
// and usersPost is true only when the viewer owns the post.
func (h *PostHandler) Get(c *gin.Context) {
	post, ok := h.findWithOwner(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	loggedIn := user != nil
	usersPost := loggedIn && user.ID == post.UserID

	c.JSON(http.StatusOK, gin.H{
		"post":      post.ViewWithOwner(),
		"loggedIn":  loggedIn,
		"usersPost": usersPost,
	})
}

// Update edits a post's header and body. Only the owner may edit, and the
// 404 check runs before the ownership check.
func (h *PostHandler) Update(c *gin.Context) {
	post, ok := h.find(c)
	if !ok {
		return
	}
	if !h.requireOwner(c, post) {
		return
	}

	var req struct {
		Header string `json:"header" binding:"required"`
		Body   string `json:"post" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if err := h.posts.Update(post, req.Header, req.Body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post.View())
}

// Delete removes a post (owner only) and returns the deleted post.
func (h *PostHandler) Delete(c *gin.Context) {
	post, ok := h.find(c)
	if !ok {
		return
	}
	if !h.requireOwner(c, post) {
		return
	}

	if err := h.posts.Delete(post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post.View())
}

// Like toggles the acting user's like on the post.
func (h *PostHandler) Like(c *gin.Context) {
	post, ok := h.find(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.likes.Toggle(user, post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

func (h *PostHandler) find(c *gin.Context) (*models.Post, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return nil, false
	}

	post, err := h.posts.FindByID(id)
	if errors.Is(err, stores.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return post, true
}

func (h *PostHandler) findWithOwner(c *gin.Context) (*models.Post, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return nil, false
	}

	post, err := h.posts.FindByIDWithOwner(id)
	if errors.Is(err, stores.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return post, true
}

func (h *PostHandler) requireOwner(c *gin.Context, post *models.Post) bool {
	user := middleware.CurrentUser(c)
	if user.ID != post.UserID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not the owner"})
		return false
	}
	return true
}

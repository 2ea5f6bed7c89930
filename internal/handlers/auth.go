package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zachricha/medium-clone-api/internal/middleware"
	"github.com/zachricha/medium-clone-api/internal/models"
	"github.com/zachricha/medium-clone-api/internal/services"
	"github.com/zachricha/medium-clone-api/internal/stores"
)

type AuthHandler struct {
	users  *stores.UserStore
	tokens *services.TokenService
}

func NewAuthHandler(users *stores.UserStore, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Signup creates a user and logs it straight in: the new token is echoed
// in the x-auth response header.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		FullName string `json:"fullName" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	user := models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}
	if err := h.users.Create(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not issue token"})
		return
	}

	c.Header(middleware.TokenHeader, token)
	c.JSON(http.StatusOK, user.View())
}

// Login verifies credentials and issues a fresh token. Bad email and bad
// password produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	user, err := h.tokens.FindByCredentials(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not issue token"})
		return
	}

	c.Header(middleware.TokenHeader, token)
	c.JSON(http.StatusOK, user.View())
}

// Logout revokes exactly the token the request authenticated with; other
// sessions stay valid.
func (h *AuthHandler) Logout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	token := middleware.CurrentToken(c)

	if err := h.tokens.Revoke(user, token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zachricha/medium-clone-api/internal/config"
	"github.com/zachricha/medium-clone-api/internal/database"
	"github.com/zachricha/medium-clone-api/internal/models"
	"github.com/zachricha/medium-clone-api/internal/routes"
	"github.com/zachricha/medium-clone-api/internal/services"
	"github.com/zachricha/medium-clone-api/internal/stores"
)

const seedPassword = "password"

var dbSeq atomic.Int64

type fixture struct {
	router *gin.Engine
	db     *gorm.DB
	users  *stores.UserStore
	posts  *stores.PostStore
	likes  *stores.LikeStore
	tokens *services.TokenService

	userOne   *models.User
	userTwo   *models.User
	userThree *models.User
	postOne   *models.Post
	postTwo   *models.Post
	tokenOne  string
	tokenTwo  string
}

// newFixture spins up the full router over a fresh in-memory database
// seeded with three users and two posts; the first two users hold a
// token and like their own post.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Init("sqlite", dsn)
	if err != nil {
		t.Fatalf("database init: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test_secret"}}

	f := &fixture{
		router: routes.SetupRoutes(db.DB, cfg),
		db:     db.DB,
		users:  stores.NewUserStore(db.DB),
		posts:  stores.NewPostStore(db.DB),
		likes:  stores.NewLikeStore(db.DB),
		tokens: services.NewTokenService(db.DB, cfg),
	}

	f.userOne = f.createUser(t, "example1 example", "example@example.com", "example1")
	f.userTwo = f.createUser(t, "example2 example", "example2@example.com", "example2")
	f.userThree = f.createUser(t, "example3 example", "example3@example.com", "example3")

	f.postOne = f.createPost(t, f.userOne, "example header1", "example post1")
	f.postTwo = f.createPost(t, f.userTwo, "example header2", "example post2")

	f.toggle(t, f.userOne, f.postOne)
	f.toggle(t, f.userTwo, f.postTwo)

	f.tokenOne = f.issue(t, f.userOne)
	f.tokenTwo = f.issue(t, f.userTwo)

	return f
}

func (f *fixture) createUser(t *testing.T, fullName, email, username string) *models.User {
	t.Helper()
	user := &models.User{
		FullName: fullName,
		Email:    email,
		Username: username,
		Password: seedPassword,
	}
	if err := f.users.Create(user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func (f *fixture) createPost(t *testing.T, owner *models.User, header, body string) *models.Post {
	t.Helper()
	post, err := f.posts.Create(owner, header, body)
	if err != nil {
		t.Fatalf("seed post %s: %v", header, err)
	}
	return post
}

func (f *fixture) toggle(t *testing.T, user *models.User, post *models.Post) {
	t.Helper()
	if _, err := f.likes.Toggle(user, post); err != nil {
		t.Fatalf("seed like: %v", err)
	}
}

func (f *fixture) issue(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := f.tokens.Issue(user)
	if err != nil {
		t.Fatalf("seed token: %v", err)
	}
	return token
}

// do runs a request through the router. An empty token leaves the x-auth
// header unset.
func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth", token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func (f *fixture) tokenCount(t *testing.T, userID string) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(&models.Token{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count tokens: %v", err)
	}
	return count
}

// postLikeIDs reads post.likes straight from the table, in like order.
func (f *fixture) postLikeIDs(t *testing.T, postID string) []string {
	t.Helper()
	var ids []string
	if err := f.db.Model(&models.PostLike{}).Where("post_id = ?", postID).
		Order("id").Pluck("user_id", &ids).Error; err != nil {
		t.Fatalf("post likes: %v", err)
	}
	return ids
}

// userLikeIDs reads user.likes straight from the table, in like order.
func (f *fixture) userLikeIDs(t *testing.T, userID string) []string {
	t.Helper()
	var ids []string
	if err := f.db.Model(&models.UserLike{}).Where("user_id = ?", userID).
		Order("id").Pluck("post_id", &ids).Error; err != nil {
		t.Fatalf("user likes: %v", err)
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

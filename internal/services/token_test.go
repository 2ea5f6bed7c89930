package services_test

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/zachricha/medium-clone-api/internal/config"
	"github.com/zachricha/medium-clone-api/internal/database"
	"github.com/zachricha/medium-clone-api/internal/models"
	"github.com/zachricha/medium-clone-api/internal/services"
	"github.com/zachricha/medium-clone-api/internal/stores"
)

const testSecret = "test_secret"

var dbSeq atomic.Int64

func newService(t *testing.T) (*services.TokenService, *gorm.DB, *models.User) {
	t.Helper()

	dsn := fmt.Sprintf("file:token_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Init("sqlite", dsn)
	if err != nil {
		t.Fatalf("database init: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	svc := services.NewTokenService(db.DB, cfg)

	user := &models.User{
		FullName: "example example",
		Email:    "example@example.com",
		Username: "example",
		Password: "password",
	}
	if err := stores.NewUserStore(db.DB).Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return svc, db.DB, user
}

func TestIssueAndResolve(t *testing.T) {
	svc, db, user := newService(t)

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var count int64
	db.Model(&models.Token{}).Where("user_id = ? AND token = ?", user.ID, token).Count(&count)
	if count != 1 {
		t.Fatalf("stored token count = %d, want 1", count)
	}

	resolved, err := svc.ResolveUser(token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("resolved id = %s, want %s", resolved.ID, user.ID)
	}
}

func TestResolveRevoked(t *testing.T) {
	svc, _, user := newService(t)

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := svc.Revoke(user, token); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if _, err := svc.ResolveUser(token); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("resolve revoked token: err = %v, want ErrInvalidToken", err)
	}

	// revoking an absent token is a no-op
	if err := svc.Revoke(user, token); err != nil {
		t.Errorf("second revoke: %v", err)
	}
}

func TestResolveBadSignature(t *testing.T) {
	svc, _, user := newService(t)

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.ResolveUser(token + "x"); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("tampered token: err = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.ResolveUser("not even a jwt"); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("garbage token: err = %v, want ErrInvalidToken", err)
	}

	forged := signToken(t, "some_other_secret", user.ID, models.AccessAuth)
	if _, err := svc.ResolveUser(forged); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("wrong secret: err = %v, want ErrInvalidToken", err)
	}
}

func TestResolveWrongScope(t *testing.T) {
	svc, db, user := newService(t)

	// a well-signed token with a foreign scope must not authenticate,
	// even when a matching row is stored
	forged := signToken(t, testSecret, user.ID, "activation")
	db.Create(&models.Token{UserID: user.ID, Access: "activation", Token: forged})

	if _, err := svc.ResolveUser(forged); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("wrong scope: err = %v, want ErrInvalidToken", err)
	}
}

func TestResolveNotStored(t *testing.T) {
	svc, db, user := newService(t)

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// simulate a logout that raced ahead: signature is fine, row is gone
	db.Where("token = ?", token).Delete(&models.Token{})

	if _, err := svc.ResolveUser(token); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("unstored token: err = %v, want ErrInvalidToken", err)
	}
}

func TestFindByCredentials(t *testing.T) {
	svc, _, user := newService(t)

	found, err := svc.FindByCredentials("example@example.com", "password")
	if err != nil {
		t.Fatalf("find by credentials: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("found id = %s, want %s", found.ID, user.ID)
	}

	// wrong password and unknown email collapse into the same error
	if _, err := svc.FindByCredentials("example@example.com", "wrong"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.FindByCredentials("nobody@example.com", "password"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func signToken(t *testing.T, secret, userID, access string) string {
	t.Helper()
	claims := jwt.MapClaims{"_id": userID, "access": access}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

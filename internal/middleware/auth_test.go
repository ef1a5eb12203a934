package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecommerce-api/internal/user/model"
	appErrors "ecommerce-api/pkg/errors"
	"ecommerce-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type stubUserFinder struct {
	users map[string]*model.User
}

func (f *stubUserFinder) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, appErrors.ErrUserNotFound
}

func newAuthRouter(t *testing.T, secret string, finder UserFinder) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	called := false
	router := gin.New()
	router.GET("/protected", AuthMiddleware(secret, finder), func(c *gin.Context) {
		called = true
		user, ok := CurrentUser(c)
		if !ok {
			t.Fatalf("current user not set")
		}
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return router, &called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	finder := &stubUserFinder{users: map[string]*model.User{
		"ana": {Username: "ana", Email: "ana@x.com", IsActive: true},
	}}
	router, called := newAuthRouter(t, "secret", finder)

	token, err := utils.GenerateToken("ana", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !*called {
		t.Fatalf("next handler not called")
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, called := newAuthRouter(t, "secret", &stubUserFinder{users: map[string]*model.User{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if *called {
		t.Fatalf("next handler must not run")
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router, _ := newAuthRouter(t, "secret", &stubUserFinder{users: map[string]*model.User{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	finder := &stubUserFinder{users: map[string]*model.User{
		"ana": {Username: "ana"},
	}}
	router, _ := newAuthRouter(t, "secret", finder)

	token, err := utils.GenerateToken("ana", "secret", -1*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestAuthMiddleware_UserNoLongerExists(t *testing.T) {
	router, called := newAuthRouter(t, "secret", &stubUserFinder{users: map[string]*model.User{}})

	token, err := utils.GenerateToken("ghost", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown subject, got %d", rec.Code)
	}
	if *called {
		t.Fatalf("next handler must not run")
	}
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ecommerce-api/internal/config"
	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/user/model"
	"ecommerce-api/internal/user/service"
	appErrors "ecommerce-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return appErrors.ErrUserAlreadyExists
		}
	}
	user.ID = uuid.New()
	user.IsActive = true
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *stubUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	if user, ok := r.users[username]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, appErrors.ErrUserNotFound
}

func (r *stubUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, appErrors.ErrUserNotFound
}

// newAuthRouter wires the real service and auth middleware over a stub store,
// mirroring the production route layout.
func newAuthRouter(t *testing.T) (*gin.Engine, *stubUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if logger.Logger == nil {
		if err := logger.Init("development"); err != nil {
			t.Fatalf("logger init: %v", err)
		}
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:                "test-secret",
			AccessTokenTTLMinutes: 30,
		},
	}

	repo := newStubUserRepo()
	h := NewHandler(service.NewService(repo, cfg))

	router := gin.New()
	root := router.Group("")
	h.RegisterRoutes(root)

	protected := root.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, repo))
	h.RegisterProtectedRoutes(protected)

	return router, repo
}

func doSignup(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doLogin(t *testing.T, router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSignupLoginMe_Scenario(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := doSignup(t, router, `{"username":"ana","email":"ana@x.com","password":"pw123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var signupToken model.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &signupToken); err != nil {
		t.Fatalf("signup body: %v", err)
	}
	if signupToken.AccessToken == "" || signupToken.TokenType != "bearer" {
		t.Fatalf("unexpected signup token: %+v", signupToken)
	}

	rec = doLogin(t, router, "ana", "pw123456")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var loginToken model.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &loginToken); err != nil {
		t.Fatalf("login body: %v", err)
	}
	if loginToken.AccessToken == "" {
		t.Fatalf("expected login access token")
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginToken.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var me map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("me body: %v", err)
	}
	if me["username"] != "ana" || me["email"] != "ana@x.com" {
		t.Fatalf("unexpected me body: %v", me)
	}
	if _, exists := me["password"]; exists {
		t.Fatalf("password field must not appear in /auth/me response")
	}
	if strings.Contains(rec.Body.String(), "pw123456") {
		t.Fatalf("response leaks the password")
	}
}

func TestSignup_Conflict(t *testing.T) {
	router, _ := newAuthRouter(t)

	if rec := doSignup(t, router, `{"username":"ana","email":"ana@x.com","password":"pw123456"}`); rec.Code != http.StatusOK {
		t.Fatalf("first signup failed: %d", rec.Code)
	}

	rec := doSignup(t, router, `{"username":"ana","email":"other@x.com","password":"pw123456"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username: expected 409, got %d", rec.Code)
	}

	rec = doSignup(t, router, `{"username":"bob","email":"ana@x.com","password":"pw123456"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d", rec.Code)
	}
}

func TestSignup_InvalidEmail(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := doSignup(t, router, `{"username":"ana","email":"not-an-email","password":"pw123456"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_SameResponseForBadUserAndBadPassword(t *testing.T) {
	router, _ := newAuthRouter(t)

	if rec := doSignup(t, router, `{"username":"ana","email":"ana@x.com","password":"pw123456"}`); rec.Code != http.StatusOK {
		t.Fatalf("signup failed: %d", rec.Code)
	}

	wrongPassword := doLogin(t, router, "ana", "bad-password")
	unknownUser := doLogin(t, router, "ghost", "bad-password")

	if wrongPassword.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownUser.Code)
	}
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", wrongPassword.Body.String(), unknownUser.Body.String())
	}
}

func TestMe_WithoutToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	router, _ := newAuthRouter(t)

	if rec := doSignup(t, router, `{"username":"ana","email":"ana@x.com","password":"pw123456"}`); rec.Code != http.StatusOK {
		t.Fatalf("signup failed: %d", rec.Code)
	}
	login := doLogin(t, router, "ana", "pw123456")

	var token model.TokenResponse
	if err := json.Unmarshal(login.Body.Bytes(), &token); err != nil {
		t.Fatalf("login body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "message") {
		t.Fatalf("expected acknowledgement message, got %s", rec.Body.String())
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/apperrors"
	"github.com/solemate-shop/solemate-api/internal/config"
	"github.com/solemate-shop/solemate-api/internal/models"
	"github.com/solemate-shop/solemate-api/internal/service"
)

type stubUserRepo struct {
	user *models.User
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	r.user = user
	return nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, apperrors.ErrNotFound
}

func testRouter(auth *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c)})
	})
	r.GET("/admin", RequireAuth(auth), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func issueToken(t *testing.T, auth *service.AuthService) string {
	t.Helper()
	resp, err := auth.Register(context.Background(), &models.RegisterRequest{
		Email:    "olena@example.com",
		Name:     "Olena",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return resp.Token
}

func newAuthService(repo *stubUserRepo) *service.AuthService {
	cfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	return service.NewAuthService(repo, cfg, zap.NewNop())
}

func TestRequireAuth_MissingToken(t *testing.T) {
	router := testRouter(newAuthService(&stubUserRepo{}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_BadToken(t *testing.T) {
	router := testRouter(newAuthService(&stubUserRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	repo := &stubUserRepo{}
	auth := newAuthService(repo)
	router := testRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, auth))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAdmin_ForbidsRegularUser(t *testing.T) {
	repo := &stubUserRepo{}
	auth := newAuthService(repo)
	router := testRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, auth))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	repo := &stubUserRepo{}
	auth := newAuthService(repo)
	router := testRouter(auth)

	issueToken(t, auth)
	repo.user.Role = models.RoleAdmin

	// Re-login so the token carries the admin role claim.
	resp, err := auth.Login(context.Background(), &models.LoginRequest{
		Email:    "olena@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/caribelotto/results-backend/internal/authz"
	"github.com/caribelotto/results-backend/internal/config"
	"github.com/caribelotto/results-backend/internal/services"
	"github.com/caribelotto/results-backend/internal/utils"
	"github.com/caribelotto/results-backend/pkg/identity"
)

type nullProvider struct{}

func (nullProvider) SignInWithPassword(ctx context.Context, email, password string) (*identity.Identity, error) {
	return nil, identity.ErrInvalidCredentials
}

func (nullProvider) SignInWithFederated(ctx context.Context) (*identity.Identity, error) {
	return nil, identity.ErrFederatedUnavailable
}

func (nullProvider) SignOut(ctx context.Context) error { return nil }

func (nullProvider) OnSessionChange(callback func(*identity.Identity)) { callback(nil) }

func testRouter() (*gin.Engine, *config.Config) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600

	auth := services.NewAuthService(nullProvider{}, []string{"admin@example.com"})

	router := gin.New()
	router.Use(SessionMiddleware(cfg, auth))

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }
	router.GET("/open", ok)
	router.GET("/user", Gate(authz.RequireAuthenticated), ok)
	router.GET("/admin", Gate(authz.RequireAdmin), ok)

	return router, cfg
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGuestAccess(t *testing.T) {
	router, _ := testRouter()

	if rec := doRequest(router, "/open", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /open = %d, want 200", rec.Code)
	}

	rec := doRequest(router, "/user", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /user = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"/login"`) {
		t.Errorf("body %q missing login redirect", rec.Body.String())
	}

	if rec := doRequest(router, "/admin", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /admin = %d, want 401", rec.Code)
	}
}

func TestClientToken(t *testing.T) {
	router, cfg := testRouter()

	token, err := utils.GenerateJWT("client@example.com", "CLIENT", cfg)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if rec := doRequest(router, "/user", token); rec.Code != http.StatusOK {
		t.Errorf("GET /user = %d, want 200", rec.Code)
	}

	rec := doRequest(router, "/admin", token)
	if rec.Code != http.StatusForbidden {
		t.Errorf("GET /admin = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"/"`) {
		t.Errorf("body %q missing client home redirect", rec.Body.String())
	}
}

func TestAdminToken(t *testing.T) {
	router, cfg := testRouter()

	token, err := utils.GenerateJWT("admin@example.com", "ADMIN", cfg)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if rec := doRequest(router, "/admin", token); rec.Code != http.StatusOK {
		t.Errorf("GET /admin = %d, want 200", rec.Code)
	}
}

// Roles come from the allow-list on every request; a forged role claim
// inside an otherwise valid token must not grant admin access.
func TestRoleClaimIgnored(t *testing.T) {
	router, cfg := testRouter()

	token, err := utils.GenerateJWT("client@example.com", "ADMIN", cfg)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if rec := doRequest(router, "/admin", token); rec.Code != http.StatusForbidden {
		t.Errorf("GET /admin = %d, want 403", rec.Code)
	}
}

func TestTamperedToken(t *testing.T) {
	router, cfg := testRouter()

	token, err := utils.GenerateJWT("admin@example.com", "ADMIN", cfg)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"

	if rec := doRequest(router, "/admin", tampered); rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /admin with tampered token = %d, want 401", rec.Code)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caribelotto/results-backend/internal/config"
	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/services"
	"github.com/caribelotto/results-backend/internal/utils"
)

// AuthHandler handles authentication related HTTP requests
type AuthHandler struct {
	auth     *services.AuthService
	accounts *services.AccountService
	cfg      *config.Config
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService, accounts *services.AccountService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		accounts: accounts,
		cfg:      cfg,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.auth.SignInWithCredentials(c.Request.Context(), req.Email, req.Password, req.AdminScoped)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(session.Email, string(session.Role), h.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, Session: session})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// Session handles GET /auth/session; it reports the session the request
// token resolves to, so the SPA can restore state after a reload.
func (h *AuthHandler) Session(c *gin.Context) {
	value, ok := c.Get("session")
	if !ok {
		c.JSON(http.StatusOK, models.GuestSession())
		return
	}
	c.JSON(http.StatusOK, value)
}

// Register handles POST /accounts (admin only, enforced by the route gate)
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// ListAccounts handles GET /accounts (admin only)
func (h *AuthHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

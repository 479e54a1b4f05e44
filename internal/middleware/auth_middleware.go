package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caribelotto/results-backend/internal/authz"
	"github.com/caribelotto/results-backend/internal/config"
	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/services"
	"github.com/caribelotto/results-backend/internal/utils"
)

const sessionKey = "session"

// SessionMiddleware rebuilds the session for each request from the
// bearer token, if any. The role is recomputed from the allow-list on
// every request, never trusted from the token. It never aborts; access
// decisions belong to the gate middleware.
func SessionMiddleware(cfg *config.Config, auth *services.AuthService) gin.HandlerFunc {
	const bearerSchema = "Bearer "

	return func(c *gin.Context) {
		session := models.GuestSession()

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, bearerSchema) {
			claims, err := utils.ValidateJWT(authHeader[len(bearerSchema):], cfg)
			if err == nil {
				if email, ok := claims["email"].(string); ok && email != "" {
					session = models.IdentifiedSession(email, auth.ResolveRole(email))
				}
			}
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// SessionFromContext returns the session placed by SessionMiddleware.
// Without the middleware the request counts as a guest.
func SessionFromContext(c *gin.Context) models.Session {
	if value, ok := c.Get(sessionKey); ok {
		if session, ok := value.(models.Session); ok {
			return session
		}
	}
	return models.GuestSession()
}

// Gate enforces a route requirement by consulting the shared
// authorization table. Redirect actions become JSON responses carrying
// the redirect target for the SPA shell.
func Gate(requirement authz.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFromContext(c)

		switch authz.Decide(session, requirement) {
		case authz.Render:
			c.Next()
		case authz.RedirectToLogin:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": "/login",
			})
		case authz.RedirectToClientHome:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "admin access required",
				"redirect": "/",
			})
		case authz.RedirectToAdminHome:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "this page is for client accounts",
				"redirect": "/admin",
			})
		case authz.ShowLoadingIndicator:
			// Token-derived sessions are never Loading; this arm exists
			// so the gate stays total over the decision table.
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "session still resolving",
			})
		}
	}
}

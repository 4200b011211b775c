package middleware

import (
	"errors"
	"net/http"

	"casa_arbol_gateway/internal/session"
	"casa_arbol_gateway/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionGuard resolves the gateway session cookie and injects the auth
// context for downstream backend calls. Unauthenticated requests get a 401
// carrying the path they were after, so the frontend can return the user
// there after login.
func SessionGuard(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil {
			respondUnauthenticated(c, "Authentication required.")
			return
		}

		s, err := manager.Resolve(cookie)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrSessionExpired):
				respondUnauthenticated(c, "Your session has expired. Log in again.")
			case errors.Is(err, session.ErrInvalidCookie):
				respondUnauthenticated(c, "Authentication required.")
			default:
				utils.LogError(err, "Session resolution failed")
				utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal error.", ""))
			}
			return
		}

		orgID := ""
		if s.OrganizationID != nil {
			orgID = *s.OrganizationID
		}
		sc := session.NewContext(s.ID, s.AccessToken, orgID)

		c.Request = c.Request.WithContext(session.WithContext(c.Request.Context(), sc))
		c.Set("user_email", s.UserEmail)
		c.Next()
	}
}

// RequireOrganization rejects requests on organization-scoped routes before
// any backend I/O when the session has no active organization.
func RequireOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := session.FromContext(c.Request.Context())
		if sc == nil || sc.OrganizationID() == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Select an organization first.", ""))
			return
		}
		c.Next()
	}
}

func respondUnauthenticated(c *gin.Context, message string) {
	apiErr := utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, message, "")
	apiErr.Next = c.Request.URL.Path
	utils.RespondWithError(c, apiErr)
}

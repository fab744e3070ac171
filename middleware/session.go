package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Kingezdev/GreenGrass/models"
	"github.com/Kingezdev/GreenGrass/utils"
)

// SessionKey is the echo context key holding the caller's models.Session.
const SessionKey = "session"

// Session decodes the bearer token into an explicit session object and
// attaches it to the request context. Handlers read one value, the
// session struct, instead of picking loose claims out of ambient state.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Authorization header is required",
				})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Invalid authorization header format",
				})
			}

			session, err := utils.ParseSessionToken(tokenParts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Invalid token",
				})
			}

			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

// CallerSession returns the session placed on the context by Session.
func CallerSession(c echo.Context) (models.Session, bool) {
	session, ok := c.Get(SessionKey).(models.Session)
	return session, ok
}

// RequireLandlord rejects callers whose session lacks the landlord
// capability. Used on catalog-mutating routes.
func RequireLandlord(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, ok := CallerSession(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
		}
		if !session.IsLandlord() {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Landlord role required"})
		}
		return next(c)
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/confstay/booking-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userId"

// Auth validates a Bearer access token and the session behind it. The token
// must be an HS256 JWT carrying a userId claim, and the exact token string
// must still have a session row: a signed token whose session was revoked
// is rejected. On success the resolved user id is stored in the context.
func Auth(secret string, sessions repository.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid claims")
			}
			sub, ok := claims[userIDKey].(float64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid claims")
			}

			if _, err := sessions.FindByToken(c.Request().Context(), raw); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
			}

			c.Set(userIDKey, int(sub))
			return next(c)
		}
	}
}

// UserID returns the authenticated user id stored by Auth, or 0 when the
// request never passed through it.
func UserID(c echo.Context) int {
	if id, ok := c.Get(userIDKey).(int); ok {
		return id
	}
	return 0
}

package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/blast-tracker/pkg/response"
)

const (
	APIKeyHeader = "x-api-key"

	bearerPrefix = "Bearer "
)

func keysMatch(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// presentedKey reads the key from x-api-key, falling back to a bearer token.
func presentedKey(c echo.Context) string {
	if key := c.Request().Header.Get(APIKeyHeader); key != "" {
		return key
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimSpace(auth[len(bearerPrefix):])
	}
	return ""
}

// DashboardAuth guards the API group with a shared key. An empty key leaves
// the group open, which is the local debugging setup.
func DashboardAuth(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if apiKey == "" {
			return next
		}

		return func(c echo.Context) error {
			key := presentedKey(c)
			if key == "" || !keysMatch(key, apiKey) {
				return response.Unauthorized(c)
			}
			return next(c)
		}
	}
}

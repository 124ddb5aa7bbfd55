package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizdir/business-listing-api/internal/access"
)

// RequireRole enforces that the authenticated caller holds one of the
// given roles, as extracted into the context by JWTAuth under "role".
// Requests with a missing or unlisted role are rejected with 403. Routes
// restricted to administrators simply wrap with
// RequireRole(access.RoleAdmin).
func RequireRole(roles ...access.Role) echo.MiddlewareFunc {
	allowed := make(map[access.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, ok := c.Get("role").(string)
			if !ok || !allowed[access.Role(v)] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

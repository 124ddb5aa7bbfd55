// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/bizdir/business-listing-api/internal/access"
	"github.com/bizdir/business-listing-api/internal/handler"
	"github.com/bizdir/business-listing-api/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication. Currently
// that is only the health check used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Token issuance and
// exchange live under /v1/auth without middleware; /v1/me sits behind the
// JWT check so it always reflects a verified identity. Logout is left
// open because it authenticates via the refresh token or bearer itself.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(access.RoleUser, access.RoleAdmin))
	auth.GET("/me", a.Me)
}

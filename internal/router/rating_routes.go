package router

import (
	"github.com/labstack/echo/v4"

	"github.com/bizdir/business-listing-api/internal/access"
	"github.com/bizdir/business-listing-api/internal/handler"
	"github.com/bizdir/business-listing-api/internal/middleware"
)

// RegisterRatingRoutes mounts the rating ledger under /v1/ratings.
// Reading a listing's ratings is public; submitting or removing one
// requires a verified user. The ratings read is deliberately uncached so
// a rater always sees their own write reflected in the aggregate.
func RegisterRatingRoutes(e *echo.Echo, rh *handler.RatingHandler, jwtSecret string) {
	e.GET("/v1/ratings/:listingId", rh.List)

	g := e.Group("/v1/ratings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(access.RoleUser, access.RoleAdmin))
	g.POST("/:listingId", rh.Submit)
	g.DELETE("/:listingId", rh.Remove)
}

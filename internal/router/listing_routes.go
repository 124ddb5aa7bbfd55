package router

import (
	"github.com/labstack/echo/v4"

	"github.com/bizdir/business-listing-api/internal/access"
	"github.com/bizdir/business-listing-api/internal/handler"
	"github.com/bizdir/business-listing-api/internal/middleware"
)

// RegisterListingRoutes mounts the listing surface under /v1/listings.
// Echo matches static segments before :id, so the /admin subtree never
// collides with the parameterized owner routes. cache, when non-nil,
// wraps the public read endpoints with the Redis response cache.
func RegisterListingRoutes(e *echo.Echo, lh *handler.ListingHandler, ah *handler.AdminListingHandler, bh *handler.BrowseHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	public := []echo.MiddlewareFunc{}
	if cache != nil {
		public = append(public, cache)
	}
	e.GET("/v1/listings", bh.Search, public...)
	e.GET("/v1/listings/admin/public-listings", bh.Curated, public...)

	user := e.Group("/v1/listings")
	user.Use(middleware.JWTAuth(jwtSecret))
	user.Use(middleware.RequireRole(access.RoleUser, access.RoleAdmin))
	user.POST("", lh.Create)
	user.GET("/my-listing", lh.MyListing)
	user.PUT("/:id", lh.Update)
	user.DELETE("/:id", lh.Delete)

	admin := e.Group("/v1/listings/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(access.RoleAdmin))
	admin.POST("", ah.Create)
	admin.GET("/listings", ah.Curated)
	admin.GET("/all", ah.All)
	admin.PUT("/:id", lh.Update)
	admin.DELETE("/:id", lh.Delete)
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bizdir/business-listing-api/internal/repository"
)

// BrowseHandler serves the unauthenticated read endpoints.
type BrowseHandler struct {
	Listings ListingStore
}

func NewBrowseHandler(l ListingStore) *BrowseHandler {
	return &BrowseHandler{Listings: l}
}

// Search returns listings matching the optional search/category/city
// query parameters, newest first. With no parameters it lists everything.
func (h *BrowseHandler) Search(c echo.Context) error {
	f := repository.SearchFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		City:     c.QueryParam("city"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listings, err := h.Listings.Search(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, listings)
}

// Curated exposes the curated listings without authentication, for the
// public landing page.
func (h *BrowseHandler) Curated(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listings, err := h.Listings.ListCurated(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, listings)
}

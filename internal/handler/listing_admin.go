package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bizdir/business-listing-api/internal/model"
	"github.com/bizdir/business-listing-api/internal/queue"
	queue_publisher "github.com/bizdir/business-listing-api/internal/service"
	"github.com/bizdir/business-listing-api/internal/slug"
)

// AdminListingHandler serves the moderation endpoints. Routes using it
// sit behind RequireRole(ADMIN); Update and Delete reuse ListingHandler,
// whose access check already lets admins through on any listing.
type AdminListingHandler struct {
	Listings ListingStore
}

func NewAdminListingHandler(l ListingStore) *AdminListingHandler {
	return &AdminListingHandler{Listings: l}
}

// Create publishes a curated listing on behalf of the platform. Admins
// may publish any number of these; the one-per-owner rule does not apply.
func (h *AdminListingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var body listingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body.trim()
	if !body.complete() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "all fields are required"})
	}

	l := &model.Listing{
		OwnerID:      uid,
		Kind:         model.KindCurated,
		BusinessName: body.BusinessName,
		Category:     body.Category,
		Description:  body.Description,
		Email:        body.Email,
		Phone:        body.Phone,
		Address:      body.Address,
		City:         body.City,
		Image:        body.Image,
		Slug:         slug.ForListing(body.City, body.Category, body.BusinessName),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Listings.Create(ctx, l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}

	go func(ev queue.ListingCreatedEvent) {
		pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pcancel()
		_ = queue_publisher.PublishListingCreated(pctx, ev)
	}(queue.ListingCreatedEvent{
		ListingID:    l.ID,
		OwnerID:      l.OwnerID,
		Kind:         string(l.Kind),
		BusinessName: l.BusinessName,
		Slug:         l.Slug,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "listing created", "listing": l})
}

// Curated lists the platform's curated listings, newest first.
func (h *AdminListingHandler) Curated(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listings, err := h.Listings.ListCurated(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, listings)
}

// All returns every listing joined with its owner's name and email for
// the moderation view.
func (h *AdminListingHandler) All(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listings, err := h.Listings.ListAllWithOwners(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, listings)
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bizdir/business-listing-api/internal/access"
	"github.com/bizdir/business-listing-api/internal/model"
	"github.com/bizdir/business-listing-api/internal/queue"
	"github.com/bizdir/business-listing-api/internal/repository"
	queue_publisher "github.com/bizdir/business-listing-api/internal/service"
	"github.com/bizdir/business-listing-api/internal/slug"
)

// ListingHandler serves the user-facing listing endpoints.
type ListingHandler struct {
	Listings ListingStore
}

func NewListingHandler(l ListingStore) *ListingHandler {
	return &ListingHandler{Listings: l}
}

// Create registers the caller's own listing. Every field is required; a
// user may hold at most one listing of their own.
func (h *ListingHandler) Create(c echo.Context) error {
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
		Kind:         model.KindSelf,
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
		if err == repository.ErrDuplicateOwnership {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you have already added a business"})
		}
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

// MyListing returns the caller's own listing, or null when they have not
// created one yet.
func (h *ListingHandler) MyListing(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.GetOwn(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, l) // nil marshals as null
}

// Update applies a partial edit to a listing the caller is allowed to
// mutate. Empty fields keep their prior values; the slug never changes.
func (h *ListingHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")

	var body listingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body.trim()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !access.CanMutate(uid, getRole(c), l.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
	}

	body.applyTo(l)
	if err := h.Listings.Update(ctx, l); err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "listing updated", "listing": l})
}

// Delete removes a listing the caller may mutate, along with its ratings.
func (h *ListingHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !access.CanMutate(uid, getRole(c), l.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
	}

	if err := h.Listings.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "listing deleted"})
}

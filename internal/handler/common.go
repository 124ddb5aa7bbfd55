package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bizdir/business-listing-api/internal/access"
	"github.com/bizdir/business-listing-api/internal/model"
	"github.com/bizdir/business-listing-api/internal/repository"
)

// ListingStore is the slice of the listing repository the handlers
// depend on. *repository.ListingRepo satisfies it; tests substitute an
// in-memory store.
type ListingStore interface {
	Create(ctx context.Context, l *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	GetOwn(ctx context.Context, ownerID uint64) (*model.Listing, error)
	Update(ctx context.Context, l *model.Listing) error
	Delete(ctx context.Context, id string) error
	ListCurated(ctx context.Context) ([]*model.Listing, error)
	ListAllWithOwners(ctx context.Context) ([]*model.ListingWithOwner, error)
	Search(ctx context.Context, f repository.SearchFilter) ([]*model.Listing, error)
}

// getUserID extracts the authenticated user's id from echo.Context. The
// JWT middleware stores claim values as decoded JSON, so the subject may
// arrive as a float64 or string.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the caller's verified role from context.
func getRole(c echo.Context) access.Role {
	if s, ok := c.Get("role").(string); ok {
		return access.Role(s)
	}
	return ""
}

// getUserName returns the caller's display name from context, defaulting
// to "Anonymous" when the claim is absent.
func getUserName(c echo.Context) string {
	if s, ok := c.Get("user_name").(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return "Anonymous"
}

// listingBody is the JSON payload shared by listing creation and update.
// On update, empty fields mean "leave the prior value unchanged".
type listingBody struct {
	BusinessName string `json:"businessName"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Image        string `json:"image"`
}

func (b *listingBody) trim() {
	b.BusinessName = strings.TrimSpace(b.BusinessName)
	b.Category = strings.TrimSpace(b.Category)
	b.Description = strings.TrimSpace(b.Description)
	b.Email = strings.TrimSpace(b.Email)
	b.Phone = strings.TrimSpace(b.Phone)
	b.Address = strings.TrimSpace(b.Address)
	b.City = strings.TrimSpace(b.City)
	b.Image = strings.TrimSpace(b.Image)
}

// complete reports whether every required creation field is present.
func (b *listingBody) complete() bool {
	return b.BusinessName != "" && b.Category != "" && b.Description != "" &&
		b.Email != "" && b.Phone != "" && b.Address != "" && b.City != "" && b.Image != ""
}

// applyTo merges the body's present fields into the listing, leaving
// absent fields untouched. The slug is deliberately not re-derived so the
// listing keeps a stable address.
func (b *listingBody) applyTo(l *model.Listing) {
	if b.BusinessName != "" {
		l.BusinessName = b.BusinessName
	}
	if b.Category != "" {
		l.Category = b.Category
	}
	if b.Description != "" {
		l.Description = b.Description
	}
	if b.Email != "" {
		l.Email = b.Email
	}
	if b.Phone != "" {
		l.Phone = b.Phone
	}
	if b.Address != "" {
		l.Address = b.Address
	}
	if b.City != "" {
		l.City = b.City
	}
	if b.Image != "" {
		l.Image = b.Image
	}
}

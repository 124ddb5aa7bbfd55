package model

import "time"

// ListingKind tags the two kinds of listing the directory knows about.
// A SELF listing is authored by a regular user, who may have at most one.
// A CURATED listing is published by an administrator on behalf of the
// platform; admins may publish any number of them. The kind is fixed at
// creation and never changes.
type ListingKind string

const (
	KindSelf    ListingKind = "SELF"    // listings.kind = 'SELF'
	KindCurated ListingKind = "CURATED" // listings.kind = 'CURATED'
)

// Curated reports whether the listing was published by an administrator.
func (k ListingKind) Curated() bool { return k == KindCurated }

// SoleOwnership reports whether the kind is subject to the
// one-listing-per-owner rule. Only SELF listings are; administrators may
// publish any number of CURATED listings.
func (k ListingKind) SoleOwnership() bool { return k == KindSelf }

// Listing represents a business record as stored in the `listings` table.
// ID is an opaque UUID assigned at creation; ID, OwnerID and Kind are
// immutable afterwards. Slug is derived from city/category/business name at
// creation and is deliberately not re-derived on later edits so that a
// listing keeps a stable address (the backfill job is the only writer that
// recomputes it). AverageRating and TotalRatings are cached projections of
// the ratings collection and are rewritten from ComputeAggregate after
// every ledger mutation.
type Listing struct {
	ID            string      `json:"id"`            // listings.id (UUID)
	OwnerID       uint64      `json:"ownerId"`       // listings.owner_id -> users.id
	Kind          ListingKind `json:"kind"`          // listings.kind
	BusinessName  string      `json:"businessName"`  // listings.business_name
	Category      string      `json:"category"`      // listings.category
	Description   string      `json:"description"`   // listings.description
	Email         string      `json:"email"`         // listings.email
	Phone         string      `json:"phone"`         // listings.phone
	Address       string      `json:"address"`       // listings.address
	City          string      `json:"city"`          // listings.city
	Image         string      `json:"image"`         // listings.image
	Slug          string      `json:"slug"`          // listings.slug
	AverageRating float64     `json:"averageRating"` // listings.average_rating
	TotalRatings  int         `json:"totalRatings"`  // listings.total_ratings
	CreatedAt     time.Time   `json:"createdAt"`     // listings.created_at
	UpdatedAt     time.Time   `json:"updatedAt"`     // listings.updated_at
}

// ListingWithOwner joins a listing with minimal identity of its owner for
// the admin moderation view. Only name and contact email are exposed.
type ListingWithOwner struct {
	Listing
	OwnerName  string `json:"ownerName"`
	OwnerEmail string `json:"ownerEmail"`
}

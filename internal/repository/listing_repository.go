package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bizdir/business-listing-api/internal/model"
)

// ErrListingNotFound is returned when a listing cannot be found.
var ErrListingNotFound = errors.New("listing not found")

// ErrDuplicateOwnership is returned when a regular user who already has a
// self-authored listing attempts to create a second one. Administrators
// never hit this; curated listings are unbounded.
var ErrDuplicateOwnership = errors.New("owner already has a listing")

const listingColumns = `id, owner_id, kind, business_name, category, description,
	email, phone, address, city, image, slug, average_rating, total_ratings,
	created_at, updated_at`

// ListingRepo encapsulates all database queries on the 'listings' table.
type ListingRepo struct{ DB *sql.DB }

func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{DB: db} }

type rowScanner interface{ Scan(dest ...any) error }

func scanListing(row rowScanner) (*model.Listing, error) {
	var l model.Listing
	err := row.Scan(&l.ID, &l.OwnerID, &l.Kind, &l.BusinessName, &l.Category,
		&l.Description, &l.Email, &l.Phone, &l.Address, &l.City, &l.Image,
		&l.Slug, &l.AverageRating, &l.TotalRatings, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persists a new listing, assigning its UUID and timestamps. For a
// SELF listing the one-listing-per-owner invariant is checked inside the
// same transaction as the insert, so two concurrent creations by the same
// owner cannot both pass the check.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if l.Kind.SoleOwnership() {
		var existing string
		err = tx.QueryRowContext(ctx,
			"SELECT id FROM listings WHERE owner_id = ? AND kind = ? LIMIT 1 FOR UPDATE",
			l.OwnerID, model.KindSelf).Scan(&existing)
		if err == nil {
			err = ErrDuplicateOwnership
			return err
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		err = nil
	}

	l.ID = uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	l.CreatedAt = now
	l.UpdatedAt = now
	_, err = tx.ExecContext(ctx,
		`INSERT INTO listings (id, owner_id, kind, business_name, category, description,
		 email, phone, address, city, image, slug, average_rating, total_ratings,
		 created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,0,0,?,?)`,
		l.ID, l.OwnerID, l.Kind, l.BusinessName, l.Category, l.Description,
		l.Email, l.Phone, l.Address, l.City, l.Image, l.Slug, l.CreatedAt, l.UpdatedAt)
	return err
}

// GetByID fetches a listing by id, returning ErrListingNotFound when absent.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id = ?", id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	return l, err
}

// GetOwn returns the owner's self-authored listing, or (nil, nil) when the
// owner has none. Curated listings are never returned here.
func (r *ListingRepo) GetOwn(ctx context.Context, ownerID uint64) (*model.Listing, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE owner_id = ? AND kind = ? LIMIT 1",
		ownerID, model.KindSelf)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

// ListCurated returns all administrator-curated listings, newest first.
// The result is identical for public and admin callers.
func (r *ListingRepo) ListCurated(ctx context.Context) ([]*model.Listing, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE kind = ? ORDER BY created_at DESC",
		model.KindCurated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

// ListAllWithOwners returns every listing joined with minimal owner
// identity for the admin moderation view, newest first.
func (r *ListingRepo) ListAllWithOwners(ctx context.Context) ([]*model.ListingWithOwner, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT l.id, l.owner_id, l.kind, l.business_name, l.category, l.description,
		 l.email, l.phone, l.address, l.city, l.image, l.slug, l.average_rating,
		 l.total_ratings, l.created_at, l.updated_at,
		 COALESCE(u.name, ''), COALESCE(u.email, '')
		 FROM listings l
		 LEFT JOIN users u ON u.id = l.owner_id
		 ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ListingWithOwner
	for rows.Next() {
		var lo model.ListingWithOwner
		if err := rows.Scan(&lo.ID, &lo.OwnerID, &lo.Kind, &lo.BusinessName,
			&lo.Category, &lo.Description, &lo.Email, &lo.Phone, &lo.Address,
			&lo.City, &lo.Image, &lo.Slug, &lo.AverageRating, &lo.TotalRatings,
			&lo.CreatedAt, &lo.UpdatedAt, &lo.OwnerName, &lo.OwnerEmail); err != nil {
			return nil, err
		}
		out = append(out, &lo)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a listing and refreshes
// updated_at. ID, owner_id, kind and slug never appear in the SET clause.
// Callers merge the request's present fields into the loaded listing
// before calling; absent fields therefore keep their prior values.
func (r *ListingRepo) Update(ctx context.Context, l *model.Listing) error {
	l.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		`UPDATE listings SET business_name=?, category=?, description=?, email=?,
		 phone=?, address=?, city=?, image=?, updated_at=?
		 WHERE id=?`,
		l.BusinessName, l.Category, l.Description, l.Email, l.Phone,
		l.Address, l.City, l.Image, l.UpdatedAt, l.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op update,
		// so confirm existence before reporting not found.
		var id string
		if qerr := r.DB.QueryRowContext(ctx,
			"SELECT id FROM listings WHERE id=?", l.ID).Scan(&id); qerr != nil {
			if errors.Is(qerr, sql.ErrNoRows) {
				return ErrListingNotFound
			}
			return qerr
		}
	}
	return nil
}

// Delete removes a listing and its embedded ratings in one transaction.
// Returns ErrListingNotFound when the listing does not exist.
func (r *ListingRepo) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM ratings WHERE listing_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrListingNotFound
	}
	return err
}

// UpdateSlug persists a derived slug for one listing without touching any
// other field. Used by the backfill job; updated_at is left alone so the
// migration does not masquerade as a content edit.
func (r *ListingRepo) UpdateSlug(ctx context.Context, id, slug string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE listings SET slug = ? WHERE id = ?", slug, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var got string
		if qerr := r.DB.QueryRowContext(ctx,
			"SELECT id FROM listings WHERE id=?", id).Scan(&got); errors.Is(qerr, sql.ErrNoRows) {
			return ErrListingNotFound
		}
	}
	return nil
}

// ListAfter returns up to limit listings with id greater than the cursor,
// ordered by id. It backs the backfill job's resumable scan.
func (r *ListingRepo) ListAfter(ctx context.Context, afterID string, limit int) ([]*model.Listing, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id > ? ORDER BY id LIMIT ?",
		afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func collectListings(rows *sql.Rows) ([]*model.Listing, error) {
	var out []*model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bizdir/business-listing-api/internal/model"
)

// ErrRatingNotFound is returned when a rater has no rating on the listing.
var ErrRatingNotFound = errors.New("rating not found")

// ErrInvalidScore is returned when a submitted score is outside 1..5.
var ErrInvalidScore = errors.New("rating must be between 1 and 5")

// RatingRepo is the rating ledger: the per-listing collection of ratings
// in the 'ratings' table plus the cached aggregate columns on 'listings'.
// Both mutations lock the listing row for the duration of the transaction,
// which serializes concurrent ledger writes per listing id and rules out
// lost updates between overlapping read-modify-write sequences.
type RatingRepo struct{ DB *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{DB: db} }

// Upsert adds the rater's rating to the listing or replaces their existing
// entry in place, then rewrites the aggregate from the full collection.
// It reports whether the call replaced an existing rating and returns the
// refreshed aggregate.
func (r *RatingRepo) Upsert(ctx context.Context, listingID string, rating model.Rating) (bool, model.Aggregate, error) {
	if rating.Score < 1 || rating.Score > 5 {
		return false, model.Aggregate{}, ErrInvalidScore
	}
	rating.ListingID = listingID
	rating.CreatedAt = time.Now().UTC().Truncate(time.Second)

	var (
		replaced bool
		agg      model.Aggregate
	)
	err := r.withListingLock(ctx, listingID, func(tx *sql.Tx) error {
		ratings, err := loadRatings(ctx, tx, listingID)
		if err != nil {
			return err
		}
		ratings, replaced = model.UpsertRating(ratings, rating)
		if replaced {
			// rater_name is a snapshot from the first submission and is
			// deliberately not refreshed on replace.
			if _, err := tx.ExecContext(ctx,
				`UPDATE ratings SET score=?, comment=?, created_at=?
				 WHERE listing_id=? AND rater_user_id=?`,
				rating.Score, rating.Comment, rating.CreatedAt,
				listingID, rating.RaterUserID); err != nil {
				return err
			}
		} else {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO ratings (listing_id, rater_user_id, rater_name, score, comment, created_at)
				 VALUES (?,?,?,?,?,?)`,
				listingID, rating.RaterUserID, rating.RaterName,
				rating.Score, rating.Comment, rating.CreatedAt); err != nil {
				return err
			}
		}
		agg = model.ComputeAggregate(ratings)
		return writeAggregate(ctx, tx, listingID, agg)
	})
	return replaced, agg, err
}

// Remove deletes the rater's rating and rewrites the aggregate; an empty
// collection resets it to 0/0. Returns ErrRatingNotFound when the rater
// has no entry on this listing.
func (r *RatingRepo) Remove(ctx context.Context, listingID string, raterUserID uint64) (model.Aggregate, error) {
	var agg model.Aggregate
	err := r.withListingLock(ctx, listingID, func(tx *sql.Tx) error {
		ratings, err := loadRatings(ctx, tx, listingID)
		if err != nil {
			return err
		}
		ratings, found := model.RemoveRating(ratings, raterUserID)
		if !found {
			return ErrRatingNotFound
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM ratings WHERE listing_id=? AND rater_user_id=?",
			listingID, raterUserID); err != nil {
			return err
		}
		agg = model.ComputeAggregate(ratings)
		return writeAggregate(ctx, tx, listingID, agg)
	})
	return agg, err
}

// ListByListing returns the listing's ratings ordered most recent first
// together with the stored aggregate. Read-only.
func (r *RatingRepo) ListByListing(ctx context.Context, listingID string) ([]model.Rating, model.Aggregate, error) {
	var agg model.Aggregate
	err := r.DB.QueryRowContext(ctx,
		"SELECT average_rating, total_ratings FROM listings WHERE id=?",
		listingID).Scan(&agg.AverageRating, &agg.TotalRatings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, agg, ErrListingNotFound
	}
	if err != nil {
		return nil, agg, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT listing_id, rater_user_id, rater_name, score, comment, created_at
		 FROM ratings WHERE listing_id=? ORDER BY created_at DESC`, listingID)
	if err != nil {
		return nil, agg, err
	}
	defer rows.Close()

	ratings := []model.Rating{}
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.ListingID, &rt.RaterUserID, &rt.RaterName,
			&rt.Score, &rt.Comment, &rt.CreatedAt); err != nil {
			return nil, agg, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, agg, rows.Err()
}

// withListingLock runs fn inside a transaction holding a row lock on the
// listing, or returns ErrListingNotFound when the listing does not exist.
func (r *RatingRepo) withListingLock(ctx context.Context, listingID string, fn func(tx *sql.Tx) error) (err error) {
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

	var id string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM listings WHERE id=? FOR UPDATE", listingID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrListingNotFound
		return err
	}
	if err != nil {
		return err
	}
	err = fn(tx)
	return err
}

func loadRatings(ctx context.Context, tx *sql.Tx, listingID string) ([]model.Rating, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT listing_id, rater_user_id, rater_name, score, comment, created_at
		 FROM ratings WHERE listing_id=?`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []model.Rating
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.ListingID, &rt.RaterUserID, &rt.RaterName,
			&rt.Score, &rt.Comment, &rt.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

// writeAggregate overwrites the cached projection columns from a freshly
// recomputed aggregate. updated_at is refreshed because the listing
// document visibly changed.
func writeAggregate(ctx context.Context, tx *sql.Tx, listingID string, agg model.Aggregate) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE listings SET average_rating=?, total_ratings=?, updated_at=? WHERE id=?",
		agg.AverageRating, agg.TotalRatings, time.Now().UTC().Truncate(time.Second), listingID)
	return err
}

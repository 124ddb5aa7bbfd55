package repository

import (
	"context"
	"strings"

	"github.com/bizdir/business-listing-api/internal/model"
)

// SearchFilter carries the optional terms of a public listing search.
// Absent terms impose no constraint.
type SearchFilter struct {
	Search   string // matched against business name OR description
	Category string
	City     string
}

// BuildPredicate composes a case-insensitive substring predicate from the
// filter. Present terms are joined with AND; the free-text term ORs over
// its two target columns. The function is pure: it returns the WHERE
// condition and its arguments and performs no query itself.
func BuildPredicate(f SearchFilter) (string, []any) {
	where := []string{}
	args := []any{}

	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "(LOWER(business_name) LIKE ? OR LOWER(description) LIKE ?)")
		term := "%" + strings.ToLower(s) + "%"
		args = append(args, term, term)
	}
	if s := strings.TrimSpace(f.Category); s != "" {
		where = append(where, "LOWER(category) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(f.City); s != "" {
		where = append(where, "LOWER(city) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}

	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

// Search returns all listings matching the filter, newest first.
func (r *ListingRepo) Search(ctx context.Context, f SearchFilter) ([]*model.Listing, error) {
	cond, args := BuildPredicate(f)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE "+cond+" ORDER BY created_at DESC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

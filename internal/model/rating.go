package model

import (
	"math"
	"time"
)

// Rating is one user's score of a listing, stored in the `ratings` table.
// A rater has at most one rating per listing; resubmitting replaces the
// existing entry in place. RaterName is a display-name snapshot taken when
// the rating was written and is not re-synced if the user later renames.
type Rating struct {
	ListingID   string    `json:"-"`           // ratings.listing_id
	RaterUserID uint64    `json:"raterUserId"` // ratings.rater_user_id
	RaterName   string    `json:"raterName"`   // ratings.rater_name
	Score       int       `json:"score"`       // ratings.score, 1..5
	Comment     string    `json:"comment"`     // ratings.comment, may be empty
	CreatedAt   time.Time `json:"createdAt"`   // ratings.created_at, refreshed on replace
}

// Aggregate is the (averageRating, totalRatings) pair summarizing a
// listing's ratings collection.
type Aggregate struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}

// ComputeAggregate is the single source of truth for the cached aggregate
// columns. It always recomputes from the full collection rather than
// adjusting a running value, so the projection can never drift from its
// source. The average is the arithmetic mean rounded to one decimal, or 0
// when the collection is empty.
func ComputeAggregate(ratings []Rating) Aggregate {
	if len(ratings) == 0 {
		return Aggregate{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	mean := float64(sum) / float64(len(ratings))
	return Aggregate{
		AverageRating: math.Round(mean*10) / 10,
		TotalRatings:  len(ratings),
	}
}

// UpsertRating replaces the rater's existing entry in place (preserving its
// position) or appends a new one. It returns the updated collection and
// whether an existing entry was replaced.
func UpsertRating(ratings []Rating, r Rating) ([]Rating, bool) {
	for i := range ratings {
		if ratings[i].RaterUserID == r.RaterUserID {
			ratings[i].Score = r.Score
			ratings[i].Comment = r.Comment
			ratings[i].CreatedAt = r.CreatedAt
			return ratings, true
		}
	}
	return append(ratings, r), false
}

// RemoveRating deletes the rater's entry from the collection. It returns
// the updated collection and whether an entry was found.
func RemoveRating(ratings []Rating, raterUserID uint64) ([]Rating, bool) {
	for i := range ratings {
		if ratings[i].RaterUserID == raterUserID {
			return append(ratings[:i], ratings[i+1:]...), true
		}
	}
	return ratings, false
}

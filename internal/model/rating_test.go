package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeAggregateEmpty(t *testing.T) {
	agg := ComputeAggregate(nil)
	assert.Equal(t, 0.0, agg.AverageRating)
	assert.Equal(t, 0, agg.TotalRatings)
}

func TestComputeAggregateRounding(t *testing.T) {
	cases := []struct {
		scores []int
		want   float64
	}{
		{[]int{4, 2}, 3.0},
		{[]int{5, 2}, 3.5},
		{[]int{5}, 5.0},
		{[]int{1, 1, 2}, 1.3}, // 1.333... rounds down
		{[]int{5, 5, 4}, 4.7}, // 4.666... rounds up
		{[]int{1, 2, 3, 4, 5}, 3.0},
	}
	for _, tc := range cases {
		ratings := make([]Rating, 0, len(tc.scores))
		for i, s := range tc.scores {
			ratings = append(ratings, Rating{RaterUserID: uint64(i + 1), Score: s})
		}
		agg := ComputeAggregate(ratings)
		assert.Equal(t, tc.want, agg.AverageRating, "scores %v", tc.scores)
		assert.Equal(t, len(tc.scores), agg.TotalRatings)
	}
}

func TestUpsertRatingAppendsNewRater(t *testing.T) {
	var ratings []Rating
	var replaced bool

	ratings, replaced = UpsertRating(ratings, Rating{RaterUserID: 2, Score: 4})
	assert.False(t, replaced)
	ratings, replaced = UpsertRating(ratings, Rating{RaterUserID: 3, Score: 2})
	assert.False(t, replaced)

	assert.Len(t, ratings, 2)
	agg := ComputeAggregate(ratings)
	assert.Equal(t, 3.0, agg.AverageRating)
	assert.Equal(t, 2, agg.TotalRatings)
}

func TestUpsertRatingReplacesInPlace(t *testing.T) {
	now := time.Now()
	ratings := []Rating{
		{RaterUserID: 2, Score: 4, Comment: "ok"},
		{RaterUserID: 3, Score: 2},
	}
	ratings, replaced := UpsertRating(ratings, Rating{
		RaterUserID: 2, Score: 5, Comment: "better", CreatedAt: now,
	})
	assert.True(t, replaced)
	assert.Len(t, ratings, 2, "replace must never duplicate the rater's entry")
	// Position preserved, fields replaced.
	assert.Equal(t, uint64(2), ratings[0].RaterUserID)
	assert.Equal(t, 5, ratings[0].Score)
	assert.Equal(t, "better", ratings[0].Comment)
	assert.Equal(t, now, ratings[0].CreatedAt)

	agg := ComputeAggregate(ratings)
	assert.Equal(t, 3.5, agg.AverageRating)
	assert.Equal(t, 2, agg.TotalRatings)
}

func TestRemoveRating(t *testing.T) {
	ratings := []Rating{
		{RaterUserID: 2, Score: 5},
		{RaterUserID: 3, Score: 2},
	}
	ratings, found := RemoveRating(ratings, 3)
	assert.True(t, found)
	assert.Len(t, ratings, 1)

	agg := ComputeAggregate(ratings)
	assert.Equal(t, 5.0, agg.AverageRating)
	assert.Equal(t, 1, agg.TotalRatings)

	_, found = RemoveRating(ratings, 3)
	assert.False(t, found, "removing an absent rater must report not found")
}

func TestRemoveLastRatingResetsAggregate(t *testing.T) {
	ratings := []Rating{{RaterUserID: 2, Score: 4}}
	ratings, found := RemoveRating(ratings, 2)
	assert.True(t, found)
	assert.Empty(t, ratings)

	agg := ComputeAggregate(ratings)
	assert.Equal(t, 0.0, agg.AverageRating)
	assert.Equal(t, 0, agg.TotalRatings)
}

// Full ledger walk from the product scenario: B rates 4, C rates 2, B
// resubmits 5, C removes. The aggregate must be consistent at every step.
func TestRatingLedgerScenario(t *testing.T) {
	var ratings []Rating

	ratings, _ = UpsertRating(ratings, Rating{RaterUserID: 2, RaterName: "B", Score: 4})
	ratings, _ = UpsertRating(ratings, Rating{RaterUserID: 3, RaterName: "C", Score: 2})
	assert.Equal(t, Aggregate{AverageRating: 3.0, TotalRatings: 2}, ComputeAggregate(ratings))

	ratings, replaced := UpsertRating(ratings, Rating{RaterUserID: 2, RaterName: "B", Score: 5})
	assert.True(t, replaced)
	assert.Equal(t, Aggregate{AverageRating: 3.5, TotalRatings: 2}, ComputeAggregate(ratings))

	ratings, found := RemoveRating(ratings, 3)
	assert.True(t, found)
	assert.Equal(t, Aggregate{AverageRating: 5.0, TotalRatings: 1}, ComputeAggregate(ratings))
}

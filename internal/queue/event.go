// Package queue defines message payloads exchanged over the message
// broker, plus the background consumer for rating activity.
package queue

// ListingCreatedEvent is published when a listing is successfully
// created. Downstream consumers can index or announce new listings
// without querying the primary database.
type ListingCreatedEvent struct {
	ListingID    string `json:"listing_id"`
	OwnerID      uint64 `json:"owner_id"`
	Kind         string `json:"kind"`
	BusinessName string `json:"business_name"`
	Slug         string `json:"slug"`
	CreatedAt    string `json:"created_at"`
}

// RatingRecordedEvent is published after every committed rating-ledger
// mutation. Action is "insert", "replace" or "remove". The aggregate
// fields carry the refreshed projection so consumers need no follow-up
// read.
type RatingRecordedEvent struct {
	ListingID     string  `json:"listing_id"`
	RaterUserID   uint64  `json:"rater_user_id"`
	Action        string  `json:"action"`
	Score         int     `json:"score,omitempty"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
	RecordedAt    string  `json:"recorded_at"`
}

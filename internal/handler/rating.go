package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bizdir/business-listing-api/internal/model"
	"github.com/bizdir/business-listing-api/internal/queue"
	"github.com/bizdir/business-listing-api/internal/repository"
	queue_publisher "github.com/bizdir/business-listing-api/internal/service"
)

// RatingHandler serves the rating ledger endpoints.
type RatingHandler struct {
	Ratings *repository.RatingRepo
}

func NewRatingHandler(r *repository.RatingRepo) *RatingHandler {
	return &RatingHandler{Ratings: r}
}

type ratingBody struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Submit records or replaces the caller's rating on a listing and returns
// the refreshed aggregate.
func (h *RatingHandler) Submit(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listingID := c.Param("listingId")

	var body ratingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	replaced, agg, err := h.Ratings.Upsert(ctx, listingID, model.Rating{
		RaterUserID: uid,
		RaterName:   getUserName(c),
		Score:       body.Score,
		Comment:     body.Comment,
	})
	if err != nil {
		switch err {
		case repository.ErrInvalidScore:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case repository.ErrListingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save rating failed"})
	}

	action := "insert"
	msg := "rating added"
	if replaced {
		action = "replace"
		msg = "rating updated"
	}
	publishRating(listingID, uid, action, body.Score, agg)

	return c.JSON(http.StatusOK, echo.Map{
		"message":       msg,
		"averageRating": agg.AverageRating,
		"totalRatings":  agg.TotalRatings,
	})
}

// List returns a listing's ratings, newest first, plus the aggregate.
func (h *RatingHandler) List(c echo.Context) error {
	listingID := c.Param("listingId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ratings, agg, err := h.Ratings.ListByListing(ctx, listingID)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ratings":       ratings,
		"averageRating": agg.AverageRating,
		"totalRatings":  agg.TotalRatings,
	})
}

// Remove deletes the caller's own rating and returns the refreshed
// aggregate.
func (h *RatingHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listingID := c.Param("listingId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	agg, err := h.Ratings.Remove(ctx, listingID, uid)
	if err != nil {
		switch err {
		case repository.ErrListingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case repository.ErrRatingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rating not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove rating failed"})
	}

	publishRating(listingID, uid, "remove", 0, agg)

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "rating removed",
		"averageRating": agg.AverageRating,
		"totalRatings":  agg.TotalRatings,
	})
}

// publishRating emits a rating.recorded event in the background. Failures
// only log; the HTTP response never waits on the broker.
func publishRating(listingID string, raterID uint64, action string, score int, agg model.Aggregate) {
	ev := queue.RatingRecordedEvent{
		ListingID:     listingID,
		RaterUserID:   raterID,
		Action:        action,
		Score:         score,
		AverageRating: agg.AverageRating,
		TotalRatings:  agg.TotalRatings,
		RecordedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishRatingRecorded(ctx, ev)
	}()
}

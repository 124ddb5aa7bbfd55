package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizdir/business-listing-api/internal/model"
)

func fullBody() listingBody {
	return listingBody{
		BusinessName: "Joe's Diner",
		Category:     "Cafe & Bar",
		Description:  "comfort food",
		Email:        "joe@example.com",
		Phone:        "555-0101",
		Address:      "1 Main St",
		City:         "Austin",
		Image:        "joes.jpg",
	}
}

func TestListingBodyComplete(t *testing.T) {
	b := fullBody()
	assert.True(t, b.complete())

	b.City = ""
	assert.False(t, b.complete(), "a missing required field must fail validation")

	b = fullBody()
	b.Image = "   "
	b.trim()
	assert.False(t, b.complete(), "whitespace-only fields count as missing")
}

func TestListingBodyApplyToMergesPresentFieldsOnly(t *testing.T) {
	l := model.Listing{
		BusinessName: "Old Name",
		Category:     "Food",
		Description:  "old",
		Email:        "old@example.com",
		Phone:        "555-0000",
		Address:      "Old St",
		City:         "Lisbon",
		Image:        "old.jpg",
		Slug:         "lisbon/food/old-name",
	}
	b := listingBody{BusinessName: "New Name", City: "Porto"}
	b.applyTo(&l)

	assert.Equal(t, "New Name", l.BusinessName)
	assert.Equal(t, "Porto", l.City)
	// Absent fields keep their prior values.
	assert.Equal(t, "Food", l.Category)
	assert.Equal(t, "old@example.com", l.Email)
	// The slug is never re-derived on edit.
	assert.Equal(t, "lisbon/food/old-name", l.Slug)
}

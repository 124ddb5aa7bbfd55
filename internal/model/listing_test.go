package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingKindOwnershipRule(t *testing.T) {
	assert.True(t, KindSelf.SoleOwnership(), "a user holds at most one listing of their own")
	assert.False(t, KindCurated.SoleOwnership(), "curated listings are unlimited")

	assert.True(t, KindCurated.Curated())
	assert.False(t, KindSelf.Curated())
}

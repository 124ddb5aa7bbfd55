package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPredicateNoTerms(t *testing.T) {
	cond, args := BuildPredicate(SearchFilter{})
	assert.Equal(t, "1=1", cond)
	assert.Empty(t, args)

	// Whitespace-only terms impose no constraint either.
	cond, args = BuildPredicate(SearchFilter{Search: "  ", Category: "\t", City: " "})
	assert.Equal(t, "1=1", cond)
	assert.Empty(t, args)
}

func TestBuildPredicateFreeTextORsOverTwoColumns(t *testing.T) {
	cond, args := BuildPredicate(SearchFilter{Search: "Diner"})
	assert.Equal(t, "(LOWER(business_name) LIKE ? OR LOWER(description) LIKE ?)", cond)
	assert.Equal(t, []any{"%diner%", "%diner%"}, args)
}

func TestBuildPredicateSingleTerms(t *testing.T) {
	cond, args := BuildPredicate(SearchFilter{Category: "Cafe"})
	assert.Equal(t, "LOWER(category) LIKE ?", cond)
	assert.Equal(t, []any{"%cafe%"}, args)

	cond, args = BuildPredicate(SearchFilter{City: "Austin"})
	assert.Equal(t, "LOWER(city) LIKE ?", cond)
	assert.Equal(t, []any{"%austin%"}, args)
}

func TestBuildPredicateCombinesWithAND(t *testing.T) {
	cond, args := BuildPredicate(SearchFilter{Search: "Joe", Category: "Cafe", City: "Austin"})
	assert.Equal(t,
		"(LOWER(business_name) LIKE ? OR LOWER(description) LIKE ?) AND LOWER(category) LIKE ? AND LOWER(city) LIKE ?",
		cond)
	assert.Equal(t, []any{"%joe%", "%joe%", "%cafe%", "%austin%"}, args)
}

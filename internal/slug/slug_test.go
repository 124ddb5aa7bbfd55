package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"New York!", "new-york"},
		{"  --Foo Bar--  ", "foo-bar"},
		{"Cafe & Bar", "cafe-bar"},
		{"Joe's Diner", "joe-s-diner"},
		{"Austin", "austin"},
		{"", ""},
		{"!!!", ""},
		{"a", "a"},
		{"ABC123", "abc123"},
		{"multi   space", "multi-space"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.in), "input %q", tc.in)
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	inputs := []string{"New York!", "Cafe & Bar", "already-a-slug", "  x  "}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "re-deriving %q must not change it", in)
		assert.Equal(t, once, Make(in), "derivation of %q must be deterministic", in)
	}
}

func TestForListing(t *testing.T) {
	got := ForListing("Austin", "Cafe & Bar", "Joe's Diner")
	assert.Equal(t, "austin/cafe-bar/joe-s-diner", got)

	// Empty fields produce empty segments rather than failing.
	assert.Equal(t, "//", ForListing("", "", ""))
}

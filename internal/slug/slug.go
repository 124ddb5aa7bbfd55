// Package slug derives URL-safe path segments from free text. Listings are
// addressed by a slug of the form "<city>/<category>/<business name>" where
// each segment is normalized independently. Derivation is deterministic and
// never fails; identical input always yields an identical slug.
package slug

import "strings"

// Make normalizes free text into a single URL-safe segment: the input is
// lowercased, every run of characters outside [a-z0-9] collapses to one
// hyphen, and leading/trailing hyphens are trimmed. Empty input yields "".
func Make(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pending := false // a separator run is waiting to be written
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// ForListing builds the full listing slug from its city, category and
// business name. No uniqueness is enforced; two listings with the same
// source fields legitimately share a slug.
func ForListing(city, category, businessName string) string {
	return Make(city) + "/" + Make(category) + "/" + Make(businessName)
}

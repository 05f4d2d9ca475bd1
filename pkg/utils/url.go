package utils

import "strings"

// trackingMarkers are query parameters appended by the news search provider
// for click tracking. Everything from the marker onward is dropped.
var trackingMarkers = []string{"&ved=", "?ved=", "&usg=", "?usg="}

// CanonicalizeURL strips known tracking parameters from a result URL.
// Canonicalizing an already-canonical URL returns it unchanged.
func CanonicalizeURL(rawURL string) string {
	for _, marker := range trackingMarkers {
		if idx := strings.Index(rawURL, marker); idx >= 0 {
			rawURL = rawURL[:idx]
		}
	}
	return rawURL
}

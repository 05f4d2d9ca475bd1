package dto

import "time"

// NewsResult is one normalized candidate article from the search provider.
// The URL is already canonicalized; ordering across results is undefined.
type NewsResult struct {
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	PublishedDate time.Time `json:"published_date"`
	Source        string    `json:"source"`
	Description   string    `json:"description"`
}

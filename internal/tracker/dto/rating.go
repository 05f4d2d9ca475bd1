package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatingWithArticle is the read-side join of a rating to its source
// article, consumed by the presentation layer.
type RatingWithArticle struct {
	ID            uint             `json:"id"`
	EntryDate     time.Time        `json:"entry_date"`
	StockName     string           `json:"stock_name"`
	StockTicker   string           `json:"stock_ticker"`
	Rating        string           `json:"rating"`
	Broker        string           `json:"broker"`
	TargetPrice   *decimal.Decimal `json:"target_price,omitempty"`
	Currency      string           `json:"currency"`
	Title         string           `json:"title"`
	Source        string           `json:"source"`
	PublishedDate *time.Time       `json:"published_date,omitempty"`
	URL           string           `json:"url"`
}

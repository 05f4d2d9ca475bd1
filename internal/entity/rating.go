package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RatingValue is the canonical rating taxonomy. Broker-specific variants
// (Outperform, Overweight, Underperform, ...) are normalized into this set.
type RatingValue string

const (
	RatingBuy     RatingValue = "Buy"
	RatingSell    RatingValue = "Sell"
	RatingHold    RatingValue = "Hold"
	RatingUnknown RatingValue = "Unknown"
)

// NormalizeRating maps a raw model-emitted rating onto the canonical set.
func NormalizeRating(raw string) RatingValue {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buy", "outperform", "overweight", "accumulate", "add", "top pick", "upgrade":
		return RatingBuy
	case "sell", "underperform", "underweight", "reduce", "downgrade":
		return RatingSell
	case "hold", "neutral", "market perform", "equal-weight", "equal weight", "maintain":
		return RatingHold
	default:
		return RatingUnknown
	}
}

// Rating is one broker's stance on a stock, tied to the article it was
// extracted from. At most one row exists per (article, stock, broker).
type Rating struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	ArticleID   uint             `gorm:"not null;uniqueIndex:idx_stock_ratings_article_stock_broker" json:"article_id"`
	Article     Article          `gorm:"foreignKey:ArticleID" json:"-"`
	StockName   string           `gorm:"not null;uniqueIndex:idx_stock_ratings_article_stock_broker" json:"stock_name"`
	StockTicker string           `json:"stock_ticker"`
	Rating      RatingValue      `gorm:"not null" json:"rating"`
	Broker      string           `gorm:"not null;uniqueIndex:idx_stock_ratings_article_stock_broker" json:"broker"`
	TargetPrice *decimal.Decimal `gorm:"type:numeric(14,2)" json:"target_price,omitempty"`
	Currency    string           `gorm:"not null;default:INR" json:"currency"`
	EntryDate   time.Time        `gorm:"not null" json:"entry_date"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Rating model.
func (Rating) TableName() string {
	return "stock_ratings"
}

// DeriveTicker builds the compact ticker form from a canonical company name.
func DeriveTicker(stockName string) string {
	return strings.ToUpper(strings.ReplaceAll(stockName, " ", ""))
}

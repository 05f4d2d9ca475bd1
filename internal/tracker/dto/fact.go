package dto

import (
	"golang-broker-tracker/internal/entity"

	"github.com/shopspring/decimal"
)

// RawFact is the untrusted per-item schema the model is asked to emit.
type RawFact struct {
	StockName   string           `json:"stock_name"`
	Rating      string           `json:"rating"`
	TargetPrice *decimal.Decimal `json:"target_price"`
}

// StockRatingFact is one validated extraction: the name is still raw (not
// yet matched against the master list) but the rating is canonical and the
// price, when present, is positive.
type StockRatingFact struct {
	StockName   string             `json:"stock_name"`
	Rating      entity.RatingValue `json:"rating"`
	TargetPrice *decimal.Decimal   `json:"target_price,omitempty"`
}

package repository

import (
	"context"

	"golang-broker-tracker/internal/entity"

	"gorm.io/gorm"
)

// KnownStockRepository defines the interface for the securities master list.
type KnownStockRepository interface {
	Search(ctx context.Context, term string) (*entity.KnownStock, error)
	ReplaceAll(ctx context.Context, stocks []entity.KnownStock) error
	Count(ctx context.Context) (int64, error)
}

type knownStockRepository struct {
	db *gorm.DB
}

// NewKnownStockRepository creates a new instance of KnownStockRepository.
func NewKnownStockRepository(db *gorm.DB) KnownStockRepository {
	return &knownStockRepository{db: db}
}

// Search runs a full-text phrase match over (symbol, company_name) and
// returns the top-ranked entry, or nil when nothing matches. The term must
// already be stripped of punctuation that breaks the tsquery.
func (r *knownStockRepository) Search(ctx context.Context, term string) (*entity.KnownStock, error) {
	var stocks []entity.KnownStock

	err := r.db.WithContext(ctx).Raw(`
	SELECT symbol, company_name, isin
	FROM known_stocks
	WHERE to_tsvector('english', symbol || ' ' || company_name) @@ phraseto_tsquery('english', ?)
	ORDER BY ts_rank(to_tsvector('english', symbol || ' ' || company_name), phraseto_tsquery('english', ?)) DESC
	LIMIT 1
`, term, term).Scan(&stocks).Error
	if err != nil {
		return nil, err
	}

	if len(stocks) == 0 {
		return nil, nil
	}
	return &stocks[0], nil
}

// ReplaceAll swaps the entire master list inside one transaction so readers
// never observe a half-updated table.
func (r *knownStockRepository) ReplaceAll(ctx context.Context, stocks []entity.KnownStock) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.KnownStock{}).Error; err != nil {
			return err
		}
		if len(stocks) == 0 {
			return nil
		}
		return tx.CreateInBatches(stocks, 500).Error
	})
}

// Count reports the number of entries in the master list.
func (r *knownStockRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.KnownStock{}).Count(&count).Error
	return count, err
}
